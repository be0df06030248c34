package timeutil

import "time"

// DateLayout is the calendar key format used everywhere a day is addressed.
const DateLayout = "2006-01-02"

// ClockLayout is the minute-resolution wall clock format used by reminders.
const ClockLayout = "15:04"

// DateKey formats t as a local calendar date key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD key at local midnight.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, key, time.Local)
}

// Midnight truncates t to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays shifts a date key by n calendar days. Invalid keys are returned as-is.
func AddDays(key string, n int) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return key
	}
	return DateKey(t.AddDate(0, 0, n))
}

// EachDay returns every date key from start to end inclusive, ascending.
// An inverted or unparseable range yields nil.
func EachDay(start, end string) []string {
	from, err := ParseDateKey(start)
	if err != nil {
		return nil
	}
	to, err := ParseDateKey(end)
	if err != nil || to.Before(from) {
		return nil
	}
	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, DateKey(d))
	}
	return days
}
