// Package overlay composes the global template with per-day overrides.
package overlay

import (
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

// Resolver computes what is scheduled on a date.
type Resolver struct {
	Eval recurrence.Evaluator
}

// New returns a resolver using eval.
func New(eval recurrence.Evaluator) Resolver {
	return Resolver{Eval: eval}
}

// BlocksForDate returns the override blocks verbatim for a detached day and
// the template blocks whose rule matches date otherwise. The result aliases
// the document; clone it before editing.
func (r Resolver) BlocksForDate(data routine.AppData, date string) []routine.Block {
	if blocks, ok := data.Day(date).Override(); ok {
		return blocks
	}
	out := make([]routine.Block, 0, len(data.Blocks))
	for _, b := range data.Blocks {
		if r.Eval.Visible(date, b.Rule) {
			out = append(out, b)
		}
	}
	return out
}

// TasksForDate filters tasks, or sub-tasks, by their own rule. It applies to
// override blocks as well as template blocks.
func (r Resolver) TasksForDate(tasks []routine.Task, date string) []routine.Task {
	out := make([]routine.Task, 0, len(tasks))
	for _, t := range tasks {
		if r.Eval.Visible(date, t.Rule) {
			out = append(out, t)
		}
	}
	return out
}

// Detach snapshots the resolved view of date into the day as an override.
// Detaching an already detached day re-clones its own blocks.
func (r Resolver) Detach(data routine.AppData, date string) routine.AppData {
	view := routine.CloneBlocks(r.BlocksForDate(data, date))
	return data.WithDay(date, data.Day(date).WithBlocks(view))
}

// Reattach drops the override for date. Days without one are left untouched.
func (r Resolver) Reattach(data routine.AppData, date string) routine.AppData {
	day, ok := data.Days[date]
	if !ok || !day.Detached() {
		return data
	}
	return data.WithDay(date, day.Inherit())
}

// GoalForDate returns the day's goal override or the title of the first
// recurring goal visible on date.
func (r Resolver) GoalForDate(data routine.AppData, date string) string {
	if o := data.Day(date).DailyGoalOverride; o != "" {
		return o
	}
	if g, ok := r.FirstGoal(data, date); ok {
		return g.Title
	}
	return ""
}

// ReminderForDate returns the day's reminder or the first visible goal's.
func (r Resolver) ReminderForDate(data routine.AppData, date string) string {
	if t := data.Day(date).ReminderTime; t != "" {
		return t
	}
	if g, ok := r.FirstGoal(data, date); ok {
		return g.ReminderTime
	}
	return ""
}

// FirstGoal returns the first recurring goal, by insertion order, visible on date.
func (r Resolver) FirstGoal(data routine.AppData, date string) (routine.RecurringGoal, bool) {
	for _, g := range data.RecurringGoals {
		if r.Eval.Visible(date, g.Rule) {
			return g, true
		}
	}
	return routine.RecurringGoal{}, false
}

// GoalsForDate returns every recurring goal visible on date.
func (r Resolver) GoalsForDate(data routine.AppData, date string) []routine.RecurringGoal {
	var out []routine.RecurringGoal
	for _, g := range data.RecurringGoals {
		if r.Eval.Visible(date, g.Rule) {
			out = append(out, g)
		}
	}
	return out
}

// Scheduled is a block as it appears on one date, with its visible tasks and,
// per task, its visible sub-tasks.
type Scheduled struct {
	Block routine.Block   `json:"block"`
	Tasks []ScheduledTask `json:"tasks"`
}

// ScheduledTask is a visible task and its visible sub-tasks.
type ScheduledTask struct {
	Task     routine.Task   `json:"task"`
	SubTasks []routine.Task `json:"subTasks"`
}

// View resolves blocks, tasks and sub-tasks for date in one pass.
func (r Resolver) View(data routine.AppData, date string) []Scheduled {
	blocks := r.BlocksForDate(data, date)
	out := make([]Scheduled, 0, len(blocks))
	for _, b := range blocks {
		s := Scheduled{Block: b}
		for _, t := range r.TasksForDate(b.Tasks, date) {
			s.Tasks = append(s.Tasks, ScheduledTask{Task: t, SubTasks: r.TasksForDate(t.SubTasks, date)})
		}
		out = append(out, s)
	}
	return out
}
