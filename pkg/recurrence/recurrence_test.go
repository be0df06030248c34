package recurrence

import (
	"testing"
	"time"

	"tableflip.dev/caddr/pkg/timeutil"
)

func sampleDates() []string {
	return timeutil.EachDay("2024-01-01", "2024-03-31")
}

func fixedNow() time.Time {
	// Wednesday.
	return time.Date(2024, time.March, 13, 15, 30, 0, 0, time.Local)
}

func TestDailyAlwaysVisible(t *testing.T) {
	e := At(fixedNow())
	for _, d := range sampleDates() {
		if !e.Visible(d, Rule{Recurrence: Daily}) {
			t.Fatalf("expected daily visible on %s", d)
		}
	}
}

func TestWeekdaysAndWeekends(t *testing.T) {
	e := At(fixedNow())
	for _, d := range sampleDates() {
		tm, _ := timeutil.ParseDateKey(d)
		wd := tm.Weekday()
		weekday := wd >= time.Monday && wd <= time.Friday
		if got := e.Visible(d, Rule{Recurrence: Weekdays}); got != weekday {
			t.Fatalf("weekdays on %s (%s): expected %v, got %v", d, wd, weekday, got)
		}
		if got := e.Visible(d, Rule{Recurrence: Weekends}); got == weekday {
			t.Fatalf("weekends on %s (%s): expected %v, got %v", d, wd, !weekday, got)
		}
	}
}

func TestSpecificAndOnce(t *testing.T) {
	e := At(fixedNow())
	for _, kind := range []Kind{Specific, Once} {
		for _, d := range sampleDates() {
			want := d == "2024-02-10"
			if got := e.Visible(d, Rule{Recurrence: kind, SpecificDate: "2024-02-10"}); got != want {
				t.Fatalf("%s on %s: expected %v, got %v", kind, d, want, got)
			}
			if e.Visible(d, Rule{Recurrence: kind}) {
				t.Fatalf("%s without a date must never match, matched %s", kind, d)
			}
		}
	}
}

func TestPeriod(t *testing.T) {
	e := At(fixedNow())
	r := Rule{Recurrence: Period, StartDate: "2024-01-30", EndDate: "2024-02-02"}
	for _, d := range sampleDates() {
		want := d >= "2024-01-30" && d <= "2024-02-02"
		if got := e.Visible(d, r); got != want {
			t.Fatalf("period on %s: expected %v, got %v", d, want, got)
		}
		if e.Visible(d, Rule{Recurrence: Period, StartDate: "2024-01-01"}) {
			t.Fatalf("period missing end must not match %s", d)
		}
		if e.Visible(d, Rule{Recurrence: Period, EndDate: "2024-12-31"}) {
			t.Fatalf("period missing start must not match %s", d)
		}
	}
}

func TestPeriodOfOneDayMatchesSpecific(t *testing.T) {
	e := At(fixedNow())
	period := Rule{Recurrence: Period, StartDate: "2024-02-14", EndDate: "2024-02-14"}
	specific := Rule{Recurrence: Specific, SpecificDate: "2024-02-14"}
	for _, d := range sampleDates() {
		if e.Visible(d, period) != e.Visible(d, specific) {
			t.Fatalf("period and specific disagree on %s", d)
		}
	}
}

func TestWeekAnchoredToNow(t *testing.T) {
	e := At(fixedNow())
	r := Rule{Recurrence: Week}
	// Week of 2024-03-13 runs Sunday 10th to Saturday 16th.
	for _, d := range sampleDates() {
		want := d >= "2024-03-10" && d <= "2024-03-16"
		if got := e.Visible(d, r); got != want {
			t.Fatalf("week on %s: expected %v, got %v", d, want, got)
		}
	}
}

func TestMonthAnchoredToNow(t *testing.T) {
	e := At(fixedNow())
	r := Rule{Recurrence: Month}
	for _, d := range sampleDates() {
		want := d >= "2024-03-01"
		if got := e.Visible(d, r); got != want {
			t.Fatalf("month on %s: expected %v, got %v", d, want, got)
		}
	}
	if e.Visible("2023-03-13", r) {
		t.Fatalf("month must also match the year")
	}
}

func TestUnknownKind(t *testing.T) {
	e := At(fixedNow())
	if e.Visible("2024-03-13", Rule{Recurrence: "fortnightly"}) {
		t.Fatalf("unknown kind must not be visible")
	}
	if e.Visible("2024-03-13", Rule{}) {
		t.Fatalf("empty kind must not be visible")
	}
}
