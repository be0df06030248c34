package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/caddr/pkg/analytics"
	"tableflip.dev/caddr/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints every month touched by history as a heat grid of
// completion percentages.
func (pp *PrettyPrint) Calendar(history []analytics.DayPerf) {
	if len(history) == 0 {
		return
	}
	first, err := timeutil.ParseDateKey(history[0].Date)
	if err != nil {
		return
	}
	last, err := timeutil.ParseDateKey(history[len(history)-1].Date)
	if err != nil {
		return
	}
	byDate := make(map[string]int, len(history))
	for _, h := range history {
		if h.Scheduled > 0 {
			byDate[h.Date] = h.Percent
		} else {
			byDate[h.Date] = -1
		}
	}
	for m := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.Local); !m.After(last); m = NextMonth(m) {
		percent := make([]int, DaysIn(m))
		for i := range percent {
			key := timeutil.DateKey(time.Date(m.Year(), m.Month(), i+1, 0, 0, 0, 0, time.Local))
			if v, ok := byDate[key]; ok {
				percent[i] = v
			} else {
				percent[i] = -1
			}
		}
		pp.PrintMonthPercent(m, percent)
	}
}

// PrintMonthPercent prints one month; negative entries are days with
// nothing scheduled.
func (pp *PrettyPrint) PrintMonthPercent(then time.Time, percent []int) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	empty := color.New(color.Faint, color.FgWhite)
	partial := color.New(color.FgYellow)
	full := color.New(color.Bold, color.FgGreen)
	zero := color.New(color.FgRed)

	days := DaysIn(then)
	for i := 0; i < days; i++ {
		p := empty
		if i < len(percent) {
			switch v := percent[i]; {
			case v >= 100:
				p = full
			case v > 0:
				p = partial
			case v == 0:
				p = zero
			}
		}
		_, _ = p.Fprintf(pp.out(), "%2d ", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
