// Package show provides the runner that prints the routine of one or more days.
package show

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/printers"
	"tableflip.dev/caddr/pkg/timeutil"
)

// Show prints the resolved schedule, goal and journal of Date and the Days
// after it.
type Show struct {
	Service *app.Service
	Date    string
	// Days beyond Date to include.
	Days   int
	ShowID bool
	Out    io.Writer
}

// Views returns the day views Show would print.
func (n *Show) Views() ([]app.DayView, error) {
	if n.Service == nil {
		return nil, errors.New("can not show, no service")
	}
	date := n.Date
	if date == "" {
		date = n.Service.Today()
	}
	if _, err := timeutil.ParseDateKey(date); err != nil {
		return nil, err
	}
	views := make([]app.DayView, 0, n.Days+1)
	for _, d := range timeutil.EachDay(date, timeutil.AddDays(date, n.Days)) {
		views = append(views, n.Service.Day(d))
	}
	return views, nil
}

func (n *Show) Do(ctx context.Context) error {
	views, err := n.Views()
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	for _, v := range views {
		pp.Day(v)
	}
	return nil
}
