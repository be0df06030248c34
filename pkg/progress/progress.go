// Package progress toggles completion marks and feeds the experience ledger.
package progress

import (
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/xp"
)

// Toggle describes what a completion flip did.
type Toggle struct {
	Found     bool
	Completed bool
	// Points is the signed ledger delta before clamping.
	Points int
}

// ToggleCompletion flips date in the completion set of the addressed task or
// sub-task.
func ToggleCompletion(blocks []routine.Block, r mutate.Ref, date string) ([]routine.Block, Toggle) {
	task, ok := mutate.FindTask(blocks, r)
	if !ok {
		return blocks, Toggle{}
	}
	points := xp.TaskPoints
	if r.IsSubTask() {
		points = xp.SubTaskPoints
	}
	completing := !task.IsDone(date)
	if !completing {
		points = -points
	}

	out := mutate.UpdateTask(blocks, r, date, mutate.ToggleDone{})
	return out, Toggle{Found: true, Completed: completing, Points: points}
}

// ToggleDailyGoal flips goalCompleted and returns the signed delta.
func ToggleDailyGoal(day routine.DayRoutine) (routine.DayRoutine, int) {
	day.GoalCompleted = !day.GoalCompleted
	if day.GoalCompleted {
		return day, xp.GoalPoints
	}
	return day, -xp.GoalPoints
}

// Award applies delta to the document's profile.
func Award(data routine.AppData, delta int) (routine.AppData, xp.Result) {
	p := data.Profile()
	res := xp.Award(p.XP, p.Level, delta)
	data.UserProfile = &routine.UserProfile{XP: res.Points, Level: res.LevelAfter}
	return data, res
}

// Result is the outcome of a routed completion toggle.
type Result struct {
	Toggle
	XP xp.Result
}

// Complete toggles the addressed task on date and awards the points. A
// detached day keeps its completions in the override, whatever the scope;
// otherwise the template copy is edited. Toggling never detaches a day.
func Complete(data routine.AppData, s mutate.Scope, r mutate.Ref) (routine.AppData, Result) {
	var t Toggle
	if local, ok := data.Day(s.Date).Override(); ok {
		var blocks []routine.Block
		blocks, t = ToggleCompletion(local, r, s.Date)
		if !t.Found {
			return data, Result{}
		}
		data = data.WithDay(s.Date, data.Day(s.Date).WithBlocks(blocks))
	} else {
		data.Blocks, t = ToggleCompletion(data.Blocks, r, s.Date)
		if !t.Found {
			return data, Result{}
		}
	}
	data, res := Award(data, t.Points)
	return data, Result{Toggle: t, XP: res}
}

// CompleteGoal toggles the daily goal of date and awards the points.
func CompleteGoal(data routine.AppData, date string) (routine.AppData, Result) {
	day, delta := ToggleDailyGoal(data.Day(date).Clone())
	data = data.WithDay(date, day)
	data, res := Award(data, delta)
	return data, Result{Toggle: Toggle{Found: true, Completed: day.GoalCompleted, Points: delta}, XP: res}
}
