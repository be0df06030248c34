package routine

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"tableflip.dev/caddr/pkg/recurrence"
)

func sequenceIDs(t *testing.T) {
	t.Helper()
	prev := NewID
	n := 0
	NewID = func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
	t.Cleanup(func() { NewID = prev })
}

func sampleBlock() Block {
	return Block{
		ID:    "b1",
		Title: "Matin",
		Rule:  recurrence.Rule{Recurrence: recurrence.Daily},
		Tasks: []Task{{
			ID:             "t1",
			Title:          "Sport",
			CompletedDates: []string{"2024-03-01"},
			Rule:           recurrence.Rule{Recurrence: recurrence.Daily},
			ExecutionNotes: map[string]string{"2024-03-01": "5km"},
			SubTasks: []Task{{
				ID:             "s1",
				Title:          "Étirements",
				CompletedDates: []string{"2024-03-01"},
				Rule:           recurrence.Rule{Recurrence: recurrence.Daily},
			}},
		}},
	}
}

func TestBlockCloneDoesNotAlias(t *testing.T) {
	orig := sampleBlock()
	c := orig.Clone()
	c.Tasks[0].Title = "changed"
	c.Tasks[0].CompletedDates[0] = "changed"
	c.Tasks[0].SubTasks[0].Title = "changed"
	c.Tasks[0].ExecutionNotes["2024-03-01"] = "changed"

	if orig.Tasks[0].Title != "Sport" {
		t.Fatalf("task title aliased")
	}
	if orig.Tasks[0].CompletedDates[0] != "2024-03-01" {
		t.Fatalf("completed dates aliased")
	}
	if orig.Tasks[0].SubTasks[0].Title != "Étirements" {
		t.Fatalf("sub-task aliased")
	}
	if orig.Tasks[0].ExecutionNotes["2024-03-01"] != "5km" {
		t.Fatalf("execution notes aliased")
	}
}

func TestBlockFreshAssignsIDsAndClearsCompletion(t *testing.T) {
	sequenceIDs(t)
	orig := sampleBlock()
	c := orig.Fresh()

	if c.ID == orig.ID || c.Tasks[0].ID == orig.Tasks[0].ID || c.Tasks[0].SubTasks[0].ID == orig.Tasks[0].SubTasks[0].ID {
		t.Fatalf("expected fresh ids, got %q %q %q", c.ID, c.Tasks[0].ID, c.Tasks[0].SubTasks[0].ID)
	}
	if len(c.Tasks[0].CompletedDates) != 0 || len(c.Tasks[0].SubTasks[0].CompletedDates) != 0 {
		t.Fatalf("expected cleared completions")
	}
	if len(orig.Tasks[0].CompletedDates) != 1 {
		t.Fatalf("original completions were modified")
	}
}

func TestDayRoutineOverrideJSON(t *testing.T) {
	var d DayRoutine
	if err := json.Unmarshal([]byte(`{"goalCompleted":true,"note":"n","blocks":[]}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	blocks, ok := d.Override()
	if !ok {
		t.Fatalf("expected an empty blocks key to mean overridden")
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"blocks":[]`) {
		t.Fatalf("expected blocks key to survive, got %s", out)
	}

	var inherited DayRoutine
	if err := json.Unmarshal([]byte(`{"goalCompleted":false,"note":""}`), &inherited); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if inherited.Detached() {
		t.Fatalf("expected inherited day")
	}
	out, err = json.Marshal(inherited)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "blocks") {
		t.Fatalf("expected no blocks key, got %s", out)
	}
}

func TestTaskJSONIsFlat(t *testing.T) {
	task := Task{ID: "t", Title: "x", CompletedDates: []string{}, Rule: recurrence.Rule{Recurrence: recurrence.Specific, SpecificDate: "2024-01-02"}}
	out, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `"recurrence":"specific"`) || !strings.Contains(s, `"specificDate":"2024-01-02"`) {
		t.Fatalf("expected flat recurrence fields, got %s", s)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	var a AppData
	if err := json.Unmarshal([]byte(`{"days":{},"blocks":[{"id":"b","title":"B","tasks":[{"id":"t","title":"T","completedDates":["2024-01-01","2024-01-01"]}]}],"userProfile":{"xp":200,"level":1}}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	a = Normalize(a)
	if a.InboxTasks == nil || a.Templates == nil || a.RecurringGoals == nil {
		t.Fatalf("expected non-nil collections")
	}
	if a.UserProfile.Level != 3 {
		t.Fatalf("expected level recomputed to 3, got %d", a.UserProfile.Level)
	}
	if a.Blocks[0].Recurrence != recurrence.Daily || a.Blocks[0].Tasks[0].Recurrence != recurrence.Daily {
		t.Fatalf("expected missing recurrence to default to daily")
	}
	if len(a.Blocks[0].Tasks[0].CompletedDates) != 1 {
		t.Fatalf("expected duplicate completion dates collapsed, got %v", a.Blocks[0].Tasks[0].CompletedDates)
	}

	empty := Normalize(AppData{})
	if empty.Profile().Level != 1 || empty.Profile().XP != 0 {
		t.Fatalf("expected default profile, got %+v", empty.Profile())
	}
}

func TestAppDataCloneIsolatesDays(t *testing.T) {
	a := Empty()
	a = a.WithDay("2024-03-01", DayRoutine{Note: "n"}.WithBlocks([]Block{sampleBlock()}))
	c := a.Clone()
	blocks, _ := c.Days["2024-03-01"].Override()
	blocks[0].Title = "changed"
	orig, _ := a.Days["2024-03-01"].Override()
	if orig[0].Title != "Matin" {
		t.Fatalf("clone shares override blocks")
	}
}
