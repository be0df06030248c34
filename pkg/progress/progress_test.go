package progress

import (
	"reflect"
	"testing"

	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/xp"
)

const today = "2024-03-13"

func daily() recurrence.Rule { return recurrence.Rule{Recurrence: recurrence.Daily} }

func fixture() routine.AppData {
	a := routine.Empty()
	a.Blocks = []routine.Block{{ID: "b", Title: "B", Rule: daily(), Tasks: []routine.Task{
		{ID: "t", Title: "T", Rule: daily(), CompletedDates: []string{"2024-03-12"}, SubTasks: []routine.Task{
			{ID: "s", Title: "S", Rule: daily(), CompletedDates: []string{}},
		}},
	}}}
	return a
}

func TestToggleTwiceRoundTrips(t *testing.T) {
	a := fixture()
	start := a.Clone()
	a, first := Complete(a, mutate.Day(today), mutate.TaskRef("b", "t"))
	if !first.Completed || first.Points != xp.TaskPoints || a.Profile().XP != 15 {
		t.Fatalf("unexpected first toggle %+v xp=%d", first, a.Profile().XP)
	}
	a, second := Complete(a, mutate.Day(today), mutate.TaskRef("b", "t"))
	if second.Completed || second.Points != -xp.TaskPoints {
		t.Fatalf("unexpected second toggle %+v", second)
	}
	if !reflect.DeepEqual(a.Blocks, start.Blocks) {
		t.Fatalf("expected tree restored after two toggles")
	}
	if a.Profile().XP != 0 {
		t.Fatalf("expected zero net xp, got %d", a.Profile().XP)
	}
}

func TestToggleSubTaskPoints(t *testing.T) {
	a := fixture()
	a, res := Complete(a, mutate.Global(today), mutate.SubTaskRef("b", "t", "s"))
	if res.Points != xp.SubTaskPoints {
		t.Fatalf("expected %d points, got %d", xp.SubTaskPoints, res.Points)
	}
	sub, _ := mutate.FindTask(a.Blocks, mutate.SubTaskRef("b", "t", "s"))
	if !sub.IsDone(today) {
		t.Fatalf("expected sub-task done")
	}
}

func TestToggleRetroactive(t *testing.T) {
	a := fixture()
	a, res := Complete(a, mutate.Global("2024-03-12"), mutate.TaskRef("b", "t"))
	if res.Completed {
		t.Fatalf("expected the past completion to be removed")
	}
	if a.Profile().XP != 0 {
		t.Fatalf("expected xp clamped at 0, got %d", a.Profile().XP)
	}
}

func TestToggleRoutesToOverrideWithoutDetaching(t *testing.T) {
	a := fixture()
	a, _ = Complete(a, mutate.Day(today), mutate.TaskRef("b", "t"))
	if a.Day(today).Detached() {
		t.Fatalf("toggling must not detach")
	}
	task, _ := mutate.FindTask(a.Blocks, mutate.TaskRef("b", "t"))
	if !task.IsDone(today) {
		t.Fatalf("expected template task toggled")
	}

	b := fixture()
	b = b.WithDay(today, routine.DayRoutine{}.WithBlocks(routine.CloneBlocks(b.Blocks)))
	b, _ = Complete(b, mutate.Day(today), mutate.TaskRef("b", "t"))
	local, _ := b.Day(today).Override()
	lt, _ := mutate.FindTask(local, mutate.TaskRef("b", "t"))
	gt, _ := mutate.FindTask(b.Blocks, mutate.TaskRef("b", "t"))
	if !lt.IsDone(today) || gt.IsDone(today) {
		t.Fatalf("expected only the override toggled")
	}
}

func TestToggleUnknownIsNoop(t *testing.T) {
	a := fixture()
	out, res := Complete(a, mutate.Day(today), mutate.TaskRef("b", "nope"))
	if res.Found || out.Profile().XP != 0 || !reflect.DeepEqual(out.Blocks, a.Blocks) {
		t.Fatalf("expected no-op, got %+v", res)
	}
}

func TestCompleteGoalLevelsUp(t *testing.T) {
	a := fixture()
	a, res := CompleteGoal(a, today)
	if !a.Day(today).GoalCompleted || res.Points != xp.GoalPoints {
		t.Fatalf("expected goal completed, got %+v", res)
	}
	if !res.XP.LevelUp || a.Profile().Level != 2 {
		t.Fatalf("expected level up to 2, got %+v", res.XP)
	}
	a, res = CompleteGoal(a, today)
	if a.Day(today).GoalCompleted || a.Profile().XP != 0 || a.Profile().Level != 1 || res.XP.LevelUp {
		t.Fatalf("expected goal undone, got %+v", a.Profile())
	}
}

func TestToggleDetachedDayUsesOverrideInAnyScope(t *testing.T) {
	a := fixture()
	a = a.WithDay(today, routine.DayRoutine{}.WithBlocks(routine.CloneBlocks(a.Blocks)))
	a, res := Complete(a, mutate.Global(today), mutate.TaskRef("b", "t"))
	if !res.Found || !res.Completed {
		t.Fatalf("expected task completed, got %+v", res)
	}
	local, _ := a.Day(today).Override()
	lt, _ := mutate.FindTask(local, mutate.TaskRef("b", "t"))
	gt, _ := mutate.FindTask(a.Blocks, mutate.TaskRef("b", "t"))
	if !lt.IsDone(today) {
		t.Fatalf("expected override task done")
	}
	if gt.IsDone(today) {
		t.Fatalf("expected template task untouched")
	}
	if a.Profile().XP != xp.TaskPoints {
		t.Fatalf("expected %d XP, got %d", xp.TaskPoints, a.Profile().XP)
	}
}
