// Package recurrence decides whether a scheduled item is visible on a date.
package recurrence

import (
	"time"

	"tableflip.dev/caddr/pkg/timeutil"
)

// Kind names a recurrence rule.
type Kind string

const (
	Daily    Kind = "daily"
	Weekdays Kind = "weekdays"
	Weekends Kind = "weekends"
	Specific Kind = "specific"
	Once     Kind = "once"
	Week     Kind = "week"
	Month    Kind = "month"
	Period   Kind = "period"
)

// Kinds lists every kind the evaluator understands, in display order.
var Kinds = []Kind{Daily, Weekdays, Weekends, Specific, Once, Week, Month, Period}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Rule is the recurrence descriptor shared by blocks, tasks and goals.
// It is embedded so the JSON form stays flat.
type Rule struct {
	Recurrence   Kind   `json:"recurrence"`
	SpecificDate string `json:"specificDate,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
}

// Evaluator decides visibility. Now anchors the week and month kinds to the
// real current date rather than the date being queried.
type Evaluator struct {
	Now time.Time
}

// At returns an evaluator anchored at now.
func At(now time.Time) Evaluator {
	return Evaluator{Now: now}
}

// Visible reports whether an item with rule r is scheduled on date.
func (e Evaluator) Visible(date string, r Rule) bool {
	switch r.Recurrence {
	case Daily:
		return true
	case Specific, Once:
		return r.SpecificDate != "" && date == r.SpecificDate
	case Period:
		if r.StartDate == "" || r.EndDate == "" {
			return false
		}
		return r.StartDate <= date && date <= r.EndDate
	}

	d, err := timeutil.ParseDateKey(date)
	if err != nil {
		return false
	}
	switch r.Recurrence {
	case Weekdays:
		wd := d.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case Weekends:
		wd := d.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case Week:
		now := timeutil.Midnight(e.Now.In(time.Local))
		start := now.AddDate(0, 0, -int(now.Weekday()))
		end := start.AddDate(0, 0, 6)
		return !d.Before(start) && !d.After(end)
	case Month:
		now := e.Now.In(time.Local)
		return d.Year() == now.Year() && d.Month() == now.Month()
	default:
		return false
	}
}
