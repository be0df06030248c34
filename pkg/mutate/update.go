package mutate

import (
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

// TaskUpdate is a field edit that applies to tasks and sub-tasks. date is
// the day being viewed when the edit was made.
type TaskUpdate interface {
	applyTask(t *routine.Task, date string)
}

// BlockUpdate is a field edit that applies to blocks.
type BlockUpdate interface {
	applyBlock(b *routine.Block, date string)
}

// GoalUpdate is a field edit that applies to recurring goals.
type GoalUpdate interface {
	applyGoal(g *routine.RecurringGoal, date string)
}

// Title renames a task, block or goal.
type Title string

func (v Title) applyTask(t *routine.Task, _ string)           { t.Title = string(v) }
func (v Title) applyBlock(b *routine.Block, _ string)         { b.Title = string(v) }
func (v Title) applyGoal(g *routine.RecurringGoal, _ string) { g.Title = string(v) }

// Description sets a task or block description.
type Description string

func (v Description) applyTask(t *routine.Task, _ string)   { t.Description = string(v) }
func (v Description) applyBlock(b *routine.Block, _ string) { b.Description = string(v) }

// StartTime sets a task's "HH:MM" start.
type StartTime string

func (v StartTime) applyTask(t *routine.Task, _ string) { t.StartTime = string(v) }

// Duration sets a task's length in minutes.
type Duration int

func (v Duration) applyTask(t *routine.Task, _ string) { t.Duration = int(v) }

// Priority sets a task's priority.
type Priority routine.Priority

func (v Priority) applyTask(t *routine.Task, _ string) { t.Priority = routine.Priority(v) }

// Recurrence changes the rule kind. Switching to a date-scoped kind fills
// the missing dates with the viewed date.
type Recurrence recurrence.Kind

func (v Recurrence) applyTask(t *routine.Task, date string)           { v.apply(&t.Rule, date) }
func (v Recurrence) applyBlock(b *routine.Block, date string)         { v.apply(&b.Rule, date) }
func (v Recurrence) applyGoal(g *routine.RecurringGoal, date string) { v.apply(&g.Rule, date) }

func (v Recurrence) apply(r *recurrence.Rule, date string) {
	r.Recurrence = recurrence.Kind(v)
	switch r.Recurrence {
	case recurrence.Specific, recurrence.Once:
		if r.SpecificDate == "" {
			r.SpecificDate = date
		}
	case recurrence.Period:
		if r.StartDate == "" {
			r.StartDate = date
		}
		if r.EndDate == "" {
			r.EndDate = date
		}
	}
}

// SpecificDate sets the date used by the specific and once kinds.
type SpecificDate string

func (v SpecificDate) applyTask(t *routine.Task, _ string)           { t.SpecificDate = string(v) }
func (v SpecificDate) applyBlock(b *routine.Block, _ string)         { b.SpecificDate = string(v) }
func (v SpecificDate) applyGoal(g *routine.RecurringGoal, _ string) { g.SpecificDate = string(v) }

// StartDate sets the first day of a period.
type StartDate string

func (v StartDate) applyTask(t *routine.Task, _ string)           { t.StartDate = string(v) }
func (v StartDate) applyBlock(b *routine.Block, _ string)         { b.StartDate = string(v) }
func (v StartDate) applyGoal(g *routine.RecurringGoal, _ string) { g.StartDate = string(v) }

// EndDate sets the last day of a period.
type EndDate string

func (v EndDate) applyTask(t *routine.Task, _ string)           { t.EndDate = string(v) }
func (v EndDate) applyBlock(b *routine.Block, _ string)         { b.EndDate = string(v) }
func (v EndDate) applyGoal(g *routine.RecurringGoal, _ string) { g.EndDate = string(v) }

// ReminderTime sets a goal's "HH:MM" reminder.
type ReminderTime string

func (v ReminderTime) applyGoal(g *routine.RecurringGoal, _ string) { g.ReminderTime = string(v) }

// Collapsed sets a block's collapsed flag.
type Collapsed bool

func (v Collapsed) applyBlock(b *routine.Block, _ string) { b.IsCollapsed = bool(v) }

// Locked sets a block's locked flag.
type Locked bool

func (v Locked) applyBlock(b *routine.Block, _ string) { b.IsLocked = bool(v) }

// ExecutionNote records the log entry of a task for the viewed date.
// An empty text removes the entry.
type ExecutionNote string

func (v ExecutionNote) applyTask(t *routine.Task, date string) {
	if v == "" {
		delete(t.ExecutionNotes, date)
		return
	}
	if t.ExecutionNotes == nil {
		t.ExecutionNotes = map[string]string{}
	}
	t.ExecutionNotes[date] = string(v)
}

// UpdateTask applies updates, in order, to the addressed task or sub-task.
func UpdateTask(blocks []routine.Block, r Ref, date string, updates ...TaskUpdate) []routine.Block {
	if len(updates) == 0 {
		return blocks
	}
	return editTask(blocks, r, func(t *routine.Task) {
		for _, u := range updates {
			u.applyTask(t, date)
		}
	})
}

// UpdateBlock applies updates, in order, to the block with id.
func UpdateBlock(blocks []routine.Block, id, date string, updates ...BlockUpdate) []routine.Block {
	if len(updates) == 0 {
		return blocks
	}
	return editBlock(blocks, id, func(b *routine.Block) {
		for _, u := range updates {
			u.applyBlock(b, date)
		}
	})
}

// UpdateGoal applies updates, in order, to the goal with id.
func UpdateGoal(goals []routine.RecurringGoal, id, date string, updates ...GoalUpdate) []routine.RecurringGoal {
	i := routine.FindGoal(goals, id)
	if i < 0 || len(updates) == 0 {
		return goals
	}
	out := routine.CloneGoals(goals)
	for _, u := range updates {
		u.applyGoal(&out[i], date)
	}
	return out
}

// ToggleDone flips the viewed date in a task's completion set.
type ToggleDone struct{}

func (ToggleDone) applyTask(t *routine.Task, date string) {
	for i, d := range t.CompletedDates {
		if d == date {
			t.CompletedDates = append(t.CompletedDates[:i:i], t.CompletedDates[i+1:]...)
			return
		}
	}
	t.CompletedDates = append(t.CompletedDates, date)
}
