package mutate

import (
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

// AddGoal appends a daily recurring goal and returns its id.
func AddGoal(data routine.AppData, title string) (routine.AppData, string) {
	g := routine.RecurringGoal{
		ID:    routine.NewID(),
		Title: title,
		Rule:  recurrence.Rule{Recurrence: recurrence.Daily},
	}
	goals := routine.CloneGoals(data.RecurringGoals)
	data.RecurringGoals = append(goals, g)
	return data, g.ID
}

// DeleteGoal removes the recurring goal with id.
func DeleteGoal(data routine.AppData, id string) routine.AppData {
	i := routine.FindGoal(data.RecurringGoals, id)
	if i < 0 {
		return data
	}
	goals := make([]routine.RecurringGoal, 0, len(data.RecurringGoals)-1)
	goals = append(goals, data.RecurringGoals[:i]...)
	data.RecurringGoals = append(goals, data.RecurringGoals[i+1:]...)
	return data
}

// DayUpdate is a field edit on a day's journal.
type DayUpdate interface {
	applyDay(d *routine.DayRoutine)
}

// GoalOverride replaces the goal shown for one day.
type GoalOverride string

func (v GoalOverride) applyDay(d *routine.DayRoutine) { d.DailyGoalOverride = string(v) }

// Note sets the day's note.
type Note string

func (v Note) applyDay(d *routine.DayRoutine) { d.Note = string(v) }

// Reflection sets the evening reflection.
type Reflection string

func (v Reflection) applyDay(d *routine.DayRoutine) { d.Reflection = string(v) }

// Mood sets the day's mood.
type Mood string

func (v Mood) applyDay(d *routine.DayRoutine) { d.Mood = string(v) }

// Feedback stores the advisor's evening review.
type Feedback routine.Feedback

func (v Feedback) applyDay(d *routine.DayRoutine) {
	fb := routine.Feedback(v)
	d.AIFeedback = &fb
}

func (v ReminderTime) applyDay(d *routine.DayRoutine) { d.ReminderTime = string(v) }

// UpdateDay applies updates to the journal of date, creating it if needed.
// The block override, if any, is kept.
func UpdateDay(data routine.AppData, date string, updates ...DayUpdate) routine.AppData {
	if len(updates) == 0 {
		return data
	}
	d := data.Day(date).Clone()
	for _, u := range updates {
		u.applyDay(&d)
	}
	return data.WithDay(date, d)
}
