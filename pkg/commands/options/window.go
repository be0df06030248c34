package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/timeutil"
)

// WindowOptions selects a trailing window of days ending today.
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", timeutil.DefaultWindow,
		"time window to include (for example 3d, 1w)")
}

// Range returns the inclusive date keys of the window and its label.
func (o *WindowOptions) Range(now time.Time) (since, until, label string, err error) {
	days, label, err := timeutil.ParseWindow(o.Last)
	if err != nil {
		return "", "", "", err
	}
	until = timeutil.DateKey(now)
	since = timeutil.AddDays(until, -(days - 1))
	return since, until, label, nil
}
