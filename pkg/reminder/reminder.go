// Package reminder matches goal reminder times against the clock.
package reminder

import (
	"context"
	"sync"
	"time"

	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/timeutil"
)

const (
	// DefaultTitle names a day reminder that has no goal override.
	DefaultTitle = "Objectif Prioritaire"
	// FallbackTitle is used when the matched goal has no title.
	FallbackTitle = "Rappel Caddr."
	// PollInterval is how often Run checks the clock.
	PollInterval = 10 * time.Second
)

// Checker fires at most once per minute.
type Checker struct {
	mu        sync.Mutex
	lastFired string
}

// Check returns the title to announce at now, if any. A visible recurring
// goal whose reminder matches wins over the day's own reminder.
func (c *Checker) Check(now time.Time, data routine.AppData) (string, bool) {
	minute := now.Format(timeutil.ClockLayout)
	stamp := timeutil.DateKey(now) + " " + minute

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastFired == stamp {
		return "", false
	}

	title, ok := match(now, minute, data)
	if !ok {
		return "", false
	}
	c.lastFired = stamp
	if title == "" {
		title = FallbackTitle
	}
	return title, true
}

func match(now time.Time, minute string, data routine.AppData) (string, bool) {
	date := timeutil.DateKey(now)
	res := overlay.New(recurrence.At(now))
	for _, g := range res.GoalsForDate(data, date) {
		if g.ReminderTime == minute {
			return g.Title, true
		}
	}
	day, ok := data.Days[date]
	if ok && day.ReminderTime == minute {
		if day.DailyGoalOverride != "" {
			return day.DailyGoalOverride, true
		}
		return DefaultTitle, true
	}
	return "", false
}

// Run polls every interval until ctx is done, calling notify for each match.
// snapshot returns the current document.
func (c *Checker) Run(ctx context.Context, interval time.Duration, snapshot func() routine.AppData, notify func(string)) {
	if interval <= 0 {
		interval = PollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if title, ok := c.Check(now, snapshot()); ok {
				notify(title)
			}
		}
	}
}
