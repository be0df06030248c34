package mutate

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

const today = "2024-03-13"

func sequenceIDs(t *testing.T) {
	t.Helper()
	prev := routine.NewID
	n := 0
	routine.NewID = func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
	t.Cleanup(func() { routine.NewID = prev })
}

func daily() recurrence.Rule { return recurrence.Rule{Recurrence: recurrence.Daily} }

func resolver() overlay.Resolver {
	return overlay.New(recurrence.At(time.Date(2024, time.March, 13, 9, 0, 0, 0, time.Local)))
}

func tree() []routine.Block {
	return []routine.Block{
		{ID: "b1", Title: "Matin", Rule: daily(), Tasks: []routine.Task{
			{ID: "t1", Title: "Sport", Rule: daily(), CompletedDates: []string{today}, SubTasks: []routine.Task{
				{ID: "s1", Title: "Échauffement", Rule: daily(), CompletedDates: []string{today}},
				{ID: "s2", Title: "Course", Rule: daily(), CompletedDates: []string{}},
			}},
			{ID: "t2", Title: "Lecture", Rule: daily(), CompletedDates: []string{}},
		}},
		{ID: "b2", Title: "Soir", Rule: recurrence.Rule{Recurrence: recurrence.Weekends}, Tasks: []routine.Task{
			{ID: "t3", Title: "Bilan", Rule: daily(), CompletedDates: []string{}},
		}},
	}
}

func collectIDs(blocks []routine.Block) map[string]int {
	ids := map[string]int{}
	for _, b := range blocks {
		ids[b.ID]++
		for _, t := range b.Tasks {
			ids[t.ID]++
			for _, s := range t.SubTasks {
				ids[s.ID]++
			}
		}
	}
	return ids
}

func TestAddTaskAndSubTask(t *testing.T) {
	sequenceIDs(t)
	in := tree()
	out, id := AddTask(in, "b1", "", "")
	if id == "" {
		t.Fatalf("expected a new id")
	}
	got := out[0].Tasks[len(out[0].Tasks)-1]
	if got.Title != DefaultTaskTitle || got.Recurrence != recurrence.Daily || len(got.CompletedDates) != 0 || got.SubTasks == nil {
		t.Fatalf("unexpected new task %+v", got)
	}
	if len(in[0].Tasks) != 2 {
		t.Fatalf("input was modified")
	}

	out, id = AddTask(in, "b1", "t1", "Gainage")
	sub, ok := FindTask(out, SubTaskRef("b1", "t1", id))
	if !ok || sub.Title != "Gainage" {
		t.Fatalf("expected sub-task to be added, got %+v", sub)
	}

	same, id := AddTask(in, "missing", "", "x")
	if id != "" || !reflect.DeepEqual(same, in) {
		t.Fatalf("expected no-op for unknown block")
	}
}

func TestDelete(t *testing.T) {
	in := tree()
	out := Delete(in, BlockRef("b1"))
	if len(out) != 1 || out[0].ID != "b2" {
		t.Fatalf("expected block and subtree removed, got %+v", out)
	}
	out = Delete(in, SubTaskRef("b1", "t1", "s1"))
	if len(out[0].Tasks[0].SubTasks) != 1 || out[0].Tasks[0].SubTasks[0].ID != "s2" {
		t.Fatalf("expected sub-task removed")
	}
	if len(in[0].Tasks[0].SubTasks) != 2 {
		t.Fatalf("input was modified")
	}
	if !reflect.DeepEqual(Delete(in, TaskRef("b1", "nope")), in) {
		t.Fatalf("expected no-op for unknown task")
	}
}

func TestMoveBoundaries(t *testing.T) {
	in := tree()
	out := Move(in, TaskRef("b1", "t2"), Up)
	if out[0].Tasks[0].ID != "t2" || out[0].Tasks[1].ID != "t1" {
		t.Fatalf("expected swap, got %s %s", out[0].Tasks[0].ID, out[0].Tasks[1].ID)
	}
	if in[0].Tasks[0].ID != "t1" {
		t.Fatalf("input was modified")
	}
	if !reflect.DeepEqual(Move(in, TaskRef("b1", "t1"), Up), in) {
		t.Fatalf("moving the first task up must be a no-op")
	}
	if !reflect.DeepEqual(Move(in, BlockRef("b2"), Down), in) {
		t.Fatalf("moving the last block down must be a no-op")
	}
	out = Move(in, BlockRef("b1"), Down)
	if out[0].ID != "b2" {
		t.Fatalf("expected blocks swapped")
	}
	out = Move(in, SubTaskRef("b1", "t1", "s1"), Down)
	if out[0].Tasks[0].SubTasks[0].ID != "s2" {
		t.Fatalf("expected sub-tasks swapped")
	}
}

func TestDuplicateBlock(t *testing.T) {
	sequenceIDs(t)
	in := tree()
	out, id := Duplicate(in, BlockRef("b1"))
	if len(out) != 3 || out[1].ID != id {
		t.Fatalf("expected copy right after the original")
	}
	c := out[1]
	if c.Title != "Matin (Copie)" {
		t.Fatalf("unexpected title %q", c.Title)
	}
	existing := collectIDs(in)
	for cid := range collectIDs([]routine.Block{c}) {
		if existing[cid] > 0 {
			t.Fatalf("id %s reused", cid)
		}
	}
	for _, task := range c.Tasks {
		if len(task.CompletedDates) != 0 {
			t.Fatalf("expected cleared completions on %s", task.ID)
		}
		for _, s := range task.SubTasks {
			if len(s.CompletedDates) != 0 {
				t.Fatalf("expected cleared completions on %s", s.ID)
			}
		}
	}
	if !in[0].Tasks[0].IsDone(today) {
		t.Fatalf("original lost its completion")
	}
}

func TestDuplicateTaskAndSubTask(t *testing.T) {
	sequenceIDs(t)
	in := tree()
	out, id := Duplicate(in, TaskRef("b1", "t1"))
	if out[0].Tasks[1].ID != id || out[0].Tasks[1].Title != "Sport (Copie)" || out[0].Tasks[2].ID != "t2" {
		t.Fatalf("expected task copy between t1 and t2, got %+v", out[0].Tasks)
	}
	out, id = Duplicate(in, SubTaskRef("b1", "t1", "s1"))
	subs := out[0].Tasks[0].SubTasks
	if len(subs) != 3 || subs[1].ID != id || subs[1].Title != "Échauffement (Copie)" {
		t.Fatalf("expected sub-task copy after s1, got %+v", subs)
	}
}

func TestSmartRecurrenceDefaults(t *testing.T) {
	in := tree()
	out := UpdateTask(in, TaskRef("b1", "t2"), today, Recurrence(recurrence.Specific))
	got, _ := FindTask(out, TaskRef("b1", "t2"))
	if got.SpecificDate != today {
		t.Fatalf("expected specific date filled, got %q", got.SpecificDate)
	}

	out = UpdateTask(in, TaskRef("b1", "t2"), today, SpecificDate("2024-01-01"), Recurrence(recurrence.Specific))
	got, _ = FindTask(out, TaskRef("b1", "t2"))
	if got.SpecificDate != "2024-01-01" {
		t.Fatalf("expected existing specific date kept, got %q", got.SpecificDate)
	}

	out = UpdateBlock(in, "b2", today, Recurrence(recurrence.Period))
	if out[1].StartDate != today || out[1].EndDate != today {
		t.Fatalf("expected period bounds filled, got %+v", out[1].Rule)
	}
	if in[1].Recurrence != recurrence.Weekends {
		t.Fatalf("input was modified")
	}
}

func TestTypedUpdates(t *testing.T) {
	in := tree()
	out := UpdateTask(in, TaskRef("b1", "t1"), today,
		Title("Yoga"), Description("d"), StartTime("07:00"), Duration(30), Priority(routine.PriorityHigh), ExecutionNote("ok"))
	got, _ := FindTask(out, TaskRef("b1", "t1"))
	if got.Title != "Yoga" || got.Description != "d" || got.StartTime != "07:00" || got.Duration != 30 || got.Priority != routine.PriorityHigh {
		t.Fatalf("unexpected task %+v", got)
	}
	if got.ExecutionNotes[today] != "ok" {
		t.Fatalf("expected execution note for today")
	}
	out = UpdateBlock(in, "b1", today, Locked(true), Collapsed(true), Title("AM"))
	if !out[0].IsLocked || !out[0].IsCollapsed || out[0].Title != "AM" {
		t.Fatalf("unexpected block %+v", out[0])
	}
	goals := []routine.RecurringGoal{{ID: "g", Title: "G", Rule: daily()}}
	ng := UpdateGoal(goals, "g", today, ReminderTime("08:00"), Recurrence(recurrence.Once))
	if ng[0].ReminderTime != "08:00" || ng[0].SpecificDate != today || goals[0].ReminderTime != "" {
		t.Fatalf("unexpected goal update %+v", ng[0])
	}
}

func TestApplyDayScopeDetaches(t *testing.T) {
	res := resolver()
	data := routine.Empty()
	data.Blocks = tree()
	out := Apply(data, res, Day(today), func(b []routine.Block) []routine.Block {
		return UpdateBlock(b, "b1", today, Title("Local"))
	})
	if data.Blocks[0].Title != "Matin" || out.Blocks[0].Title != "Matin" {
		t.Fatalf("day-scoped edit leaked into the template")
	}
	local, ok := out.Days[today].Override()
	if !ok || len(local) != 1 || local[0].Title != "Local" {
		t.Fatalf("expected detached override with the edit, got %+v", local)
	}

	out = Apply(data, res, Global(today), func(b []routine.Block) []routine.Block {
		return UpdateBlock(b, "b1", today, Title("Global"))
	})
	if out.Blocks[0].Title != "Global" || out.Day(today).Detached() {
		t.Fatalf("expected template edit without detaching")
	}
}

func TestReschedule(t *testing.T) {
	sequenceIDs(t)
	res := resolver()
	data := routine.Empty()
	data.Blocks = tree()
	out, ok := Reschedule(data, res, today, TaskRef("b1", "t1"), "2024-03-20")
	if !ok {
		t.Fatalf("expected reschedule")
	}
	local, _ := out.Days[today].Override()
	if _, found := FindTask(local, TaskRef("b1", "t1")); found {
		t.Fatalf("expected task removed from today")
	}
	if _, found := FindTask(out.Blocks, TaskRef("b1", "t1")); !found {
		t.Fatalf("template task must survive")
	}
	holder := out.Blocks[len(out.Blocks)-1]
	if holder.Title != "Report: Matin" || holder.Recurrence != recurrence.Specific || holder.SpecificDate != "2024-03-20" {
		t.Fatalf("unexpected holder block %+v", holder)
	}
	moved := holder.Tasks[0]
	if moved.ID == "t1" || len(moved.CompletedDates) != 0 || moved.SpecificDate != "2024-03-20" || moved.Recurrence != recurrence.Specific {
		t.Fatalf("unexpected moved task %+v", moved)
	}
	if got := res.BlocksForDate(out, "2024-03-20"); len(got) != 2 {
		t.Fatalf("expected moved task visible on target date, got %d blocks", len(got))
	}

	if _, ok := Reschedule(data, res, today, TaskRef("b1", "missing"), "2024-03-20"); ok {
		t.Fatalf("expected unknown task to be ignored")
	}
}

func TestPromoteTask(t *testing.T) {
	sequenceIDs(t)
	res := resolver()
	data := routine.Empty()
	data.Blocks = []routine.Block{
		{ID: "w", Title: "Week-end", Rule: recurrence.Rule{Recurrence: recurrence.Weekends}},
		{ID: "x", Title: "Jour", Rule: recurrence.Rule{Recurrence: recurrence.Specific, SpecificDate: today}, Tasks: []routine.Task{
			{ID: "t", Title: "Once", Rule: recurrence.Rule{Recurrence: recurrence.Specific, SpecificDate: today}, CompletedDates: []string{today}},
		}},
	}
	data = res.Detach(data, today)
	out, ok := PromoteTask(data, res, today, TaskRef("x", "t"))
	if !ok {
		t.Fatalf("expected promote")
	}
	habits := out.Blocks[len(out.Blocks)-1]
	if habits.Title != HabitsBlockTitle || habits.Recurrence != recurrence.Daily {
		t.Fatalf("expected a new habits block, got %+v", habits)
	}
	if habits.Tasks[0].ID == "t" || habits.Tasks[0].Recurrence != recurrence.Daily || len(habits.Tasks[0].CompletedDates) != 0 {
		t.Fatalf("unexpected promoted task %+v", habits.Tasks[0])
	}
	local, _ := out.Days[today].Override()
	lt, _ := FindTask(local, TaskRef("x", "t"))
	if lt.Recurrence != recurrence.Daily || !lt.IsDone(today) {
		t.Fatalf("expected local copy patched to daily and still done, got %+v", lt)
	}

	out, _ = PromoteTask(out, res, today, TaskRef("x", "t"))
	if len(out.Blocks) != 3 || len(out.Blocks[2].Tasks) != 2 {
		t.Fatalf("expected second promotion appended to the existing daily block")
	}
}

func TestPromoteBlock(t *testing.T) {
	sequenceIDs(t)
	res := resolver()
	data := routine.Empty()
	data.Blocks = tree()
	out, ok := PromoteBlock(data, res, today, "b1")
	if !ok {
		t.Fatalf("expected promote")
	}
	c := out.Blocks[len(out.Blocks)-1]
	if c.Title != "Matin (Quotidien)" || c.Recurrence != recurrence.Daily || c.ID == "b1" {
		t.Fatalf("unexpected block %+v", c)
	}
	for _, task := range c.Tasks {
		if task.Recurrence != recurrence.Daily || len(task.CompletedDates) != 0 {
			t.Fatalf("unexpected task %+v", task)
		}
	}
}

func TestInbox(t *testing.T) {
	sequenceIDs(t)
	data := routine.Empty()
	data.Blocks = tree()
	data, first := AddInboxTask(data, "A")
	data, second := AddInboxTask(data, "B")
	if data.InboxTasks[0].ID != second || data.InboxTasks[1].ID != first {
		t.Fatalf("expected newest inbox task first")
	}
	out, ok := DeployInboxTask(data, first, "b2")
	if !ok || len(out.InboxTasks) != 1 || out.Blocks[1].Tasks[1].ID != first {
		t.Fatalf("expected task deployed to b2")
	}
	if _, ok := DeployInboxTask(data, first, "missing"); ok {
		t.Fatalf("expected deploy to unknown block to fail")
	}
	if len(data.InboxTasks) != 2 {
		t.Fatalf("input was modified")
	}
}

func TestBlocksFromOutlines(t *testing.T) {
	sequenceIDs(t)
	blocks := BlocksFromOutlines([]routine.Outline{{Tasks: []string{"a", "b"}}, {Title: "Soir"}})
	if len(blocks) != 2 || blocks[0].Title != AIBlockTitle || !blocks[0].IsCollapsed || blocks[0].Recurrence != recurrence.Daily {
		t.Fatalf("unexpected blocks %+v", blocks)
	}
	if len(blocks[0].Tasks) != 2 || blocks[0].Tasks[1].Title != "b" {
		t.Fatalf("unexpected tasks %+v", blocks[0].Tasks)
	}
}

func TestUpdateDayKeepsOverride(t *testing.T) {
	res := resolver()
	data := routine.Empty()
	data.Blocks = tree()
	data = res.Detach(data, today)
	out := UpdateDay(data, today, Note("n"), Mood("great"), GoalOverride("Focus"), ReminderTime("07:15"))
	d := out.Days[today]
	if d.Note != "n" || d.Mood != "great" || d.DailyGoalOverride != "Focus" || d.ReminderTime != "07:15" || !d.Detached() {
		t.Fatalf("unexpected day %+v", d)
	}
	if data.Days[today].Note != "" {
		t.Fatalf("input was modified")
	}
}
