package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects the calendar date a command works on.
type OnOptions struct {
	OnString string
	// Day routes structural edits to the date's own layer instead of the
	// global template.
	Day bool
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28", --on="2/28" or --on=yesterday.`)
}

func AddDayScopeArgs(cmd *cobra.Command, o *OnOptions) {
	AddOnArgs(cmd, o)
	cmd.Flags().BoolVar(&o.Day, "day", false,
		"Edit only the selected date, detaching it from the template.")
}

// Date returns the selected date key, today when unset.
func (o *OnOptions) Date(now time.Time) (string, error) {
	return ParseDate(o.OnString, now)
}

// Scope returns the mutation layer for the selected date.
func (o *OnOptions) Scope(now time.Time) (mutate.Scope, error) {
	date, err := o.Date(now)
	if err != nil {
		return mutate.Scope{}, err
	}
	if o.Day {
		return mutate.Day(date), nil
	}
	return mutate.Global(date), nil
}

// ParseDate accepts YYYY-M-D, M/D (current year), today, yesterday and
// tomorrow. Empty means today.
func ParseDate(s string, now time.Time) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "today":
		return timeutil.DateKey(now), nil
	case "yesterday":
		return timeutil.DateKey(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return timeutil.DateKey(now.AddDate(0, 0, 1)), nil
	}
	t, err := time.ParseInLocation(layoutISO, s, time.Local)
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, s, time.Local)
		if err != nil {
			return "", fmt.Errorf("invalid date %q: %w", s, err)
		}
		t = t.AddDate(now.Year(), 0, 0)
	}
	return timeutil.DateKey(t), nil
}
