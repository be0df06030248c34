package reminder

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

func at(hh, mm int) time.Time {
	return time.Date(2025, time.March, 12, hh, mm, 5, 0, time.Local)
}

func TestCheckMatchesVisibleGoal(t *testing.T) {
	data := routine.Empty()
	data.RecurringGoals = []routine.RecurringGoal{
		{ID: "weekend", Title: "Repos", Rule: recurrence.Rule{Recurrence: recurrence.Weekends}, ReminderTime: "08:30"},
		{ID: "daily", Title: "Courir", Rule: recurrence.Rule{Recurrence: recurrence.Daily}, ReminderTime: "08:30"},
	}
	var c Checker
	title, ok := c.Check(at(8, 30), data)
	if !ok || title != "Courir" {
		t.Fatalf("expected Courir, got %q %v", title, ok)
	}
	if _, ok := c.Check(at(8, 30).Add(20*time.Second), data); ok {
		t.Fatalf("expected a single fire per minute")
	}
	if _, ok := c.Check(at(8, 31), data); ok {
		t.Fatalf("expected no match at 08:31")
	}
}

func TestCheckDayReminder(t *testing.T) {
	data := routine.Empty()
	data = data.WithDay("2025-03-12", routine.DayRoutine{ReminderTime: "19:00"})
	var c Checker
	title, ok := c.Check(at(19, 0), data)
	if !ok || title != DefaultTitle {
		t.Fatalf("expected %q, got %q %v", DefaultTitle, title, ok)
	}

	data = data.WithDay("2025-03-12", routine.DayRoutine{ReminderTime: "19:05", DailyGoalOverride: "Lire"})
	title, ok = c.Check(at(19, 5), data)
	if !ok || title != "Lire" {
		t.Fatalf("expected Lire, got %q %v", title, ok)
	}
}

func TestCheckUntitledGoalFallsBack(t *testing.T) {
	data := routine.Empty()
	data.RecurringGoals = []routine.RecurringGoal{{ID: "g", Rule: recurrence.Rule{Recurrence: recurrence.Daily}, ReminderTime: "07:00"}}
	var c Checker
	if title, _ := c.Check(at(7, 0), data); title != FallbackTitle {
		t.Fatalf("expected %q, got %q", FallbackTitle, title)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var c Checker
	go func() {
		c.Run(ctx, time.Millisecond, routine.Empty, func(string) {})
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return after cancel")
	}
}
