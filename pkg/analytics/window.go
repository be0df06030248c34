package analytics

import (
	"fmt"
	"time"

	"tableflip.dev/caddr/pkg/timeutil"
)

// Timeframe names a preset stats range ending today.
type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

// Range returns the start and end date keys of tf as seen from now.
func Range(tf Timeframe, now time.Time) (string, string, error) {
	end := timeutil.Midnight(now)
	var start time.Time
	switch tf {
	case TimeframeDay:
		start = end
	case TimeframeWeek:
		start = end.AddDate(0, 0, -7)
	case TimeframeMonth:
		start = end.AddDate(0, -1, 0)
	case TimeframeYear:
		start = end.AddDate(-1, 0, 0)
	default:
		return "", "", fmt.Errorf("analytics: unknown timeframe %q", tf)
	}
	return timeutil.DateKey(start), timeutil.DateKey(end), nil
}
