package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/caddr/pkg/analytics"
	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/store"
	"tableflip.dev/caddr/pkg/xp"
)

const today = "2024-03-13"

func newService(t *testing.T) *Service {
	t.Helper()
	local, err := store.OpenLocal(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("open local: %v", err)
	}
	a, err := app.Open(context.Background(), app.Options{
		Store:    local,
		Debounce: time.Hour,
		Now:      func() time.Time { return time.Date(2024, time.March, 13, 9, 0, 0, 0, time.Local) },
	})
	if err != nil {
		t.Fatalf("open service: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return NewService(a)
}

func strPtr(s string) *string { return &s }

func TestDateDefaultsToToday(t *testing.T) {
	svc := newService(t)
	got, err := svc.Date("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != today {
		t.Fatalf("expected %s, got %s", today, got)
	}
	if _, err := svc.Date("13/03/2024"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestNilServiceErrors(t *testing.T) {
	var svc *Service
	if _, err := svc.Day(""); !errors.Is(err, errNoService) {
		t.Fatalf("expected errNoService, got %v", err)
	}
	if _, err := (&Service{}).Profile(); !errors.Is(err, errNoService) {
		t.Fatalf("expected errNoService, got %v", err)
	}
}

func TestAddAndToggleByPrefix(t *testing.T) {
	svc := newService(t)
	block, err := svc.AddBlock("", false, "Matin")
	if err != nil {
		t.Fatalf("add block: %v", err)
	}
	task, err := svc.AddTask("", false, block.ID[:8], "Sport")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.Ref.BlockID != block.ID || task.Ref.TaskID != task.ID {
		t.Fatalf("expected ref to the new task, got %+v", task.Ref)
	}

	res, err := svc.ToggleTask("", task.ID[:8])
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !res.Completed {
		t.Fatalf("expected task to be completed")
	}
	if res.XP.Points != xp.TaskPoints {
		t.Fatalf("expected %d XP, got %d", xp.TaskPoints, res.XP.Points)
	}

	if _, err := svc.ToggleTask("", block.ID); err == nil {
		t.Fatalf("expected error when toggling a block")
	}
	if _, err := svc.ToggleTask("", "nope"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddTaskRejectsNestedSubTask(t *testing.T) {
	svc := newService(t)
	block, _ := svc.AddBlock("", false, "Matin")
	task, _ := svc.AddTask("", false, block.ID, "Sport")
	sub, err := svc.AddTask("", false, task.ID, "Stretch")
	if err != nil {
		t.Fatalf("add sub-task: %v", err)
	}
	if !sub.Ref.IsSubTask() {
		t.Fatalf("expected sub-task ref, got %+v", sub.Ref)
	}
	if _, err := svc.AddTask("", false, sub.ID, "Deeper"); err == nil {
		t.Fatalf("expected error for third level")
	}
}

func TestUpdateTaskFields(t *testing.T) {
	svc := newService(t)
	block, _ := svc.AddBlock("", false, "Matin")
	task, _ := svc.AddTask("", false, block.ID, "Sport")

	err := svc.UpdateTask("", false, task.ID, TaskFields{
		Title:    strPtr("Run"),
		Priority: strPtr("HIGH"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got := svc.App.Snapshot().Blocks[0].Tasks[0]
	if got.Title != "Run" {
		t.Fatalf("expected title Run, got %q", got.Title)
	}
	if got.Priority != routine.PriorityHigh {
		t.Fatalf("expected high priority, got %q", got.Priority)
	}

	if err := svc.UpdateTask("", false, task.ID, TaskFields{Recurrence: strPtr("fortnightly")}); err == nil {
		t.Fatalf("expected error for unknown recurrence")
	}
	if err := svc.UpdateBlock("", false, task.ID, BlockFields{Title: strPtr("x")}); err == nil {
		t.Fatalf("expected error when updating a task as a block")
	}
}

func TestMoveDirection(t *testing.T) {
	svc := newService(t)
	first, _ := svc.AddBlock("", false, "Matin")
	if _, err := svc.AddBlock("", false, "Soir"); err != nil {
		t.Fatalf("add block: %v", err)
	}
	if err := svc.Move("", false, first.ID, "sideways"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
	if err := svc.Move("", false, first.ID, "down"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := svc.App.Snapshot().Blocks[1].ID; got != first.ID {
		t.Fatalf("expected first block to move down, got %s", got)
	}
}

func TestUpdateJournal(t *testing.T) {
	svc := newService(t)
	if err := svc.UpdateJournal("", JournalFields{}); err == nil {
		t.Fatalf("expected error when no fields are given")
	}
	if err := svc.UpdateJournal("", JournalFields{Note: strPtr("calme"), Mood: strPtr("good")}); err != nil {
		t.Fatalf("update journal: %v", err)
	}
	day := svc.App.Snapshot().Days[today]
	if day.Note != "calme" || day.Mood != "good" {
		t.Fatalf("expected note and mood to be stored, got %+v", day)
	}
}

func TestInboxDeploy(t *testing.T) {
	svc := newService(t)
	block, _ := svc.AddBlock("", false, "Matin")
	id, err := svc.AddInboxTask("Read")
	if err != nil {
		t.Fatalf("add inbox: %v", err)
	}
	if _, err := svc.AddInboxTask("  "); err == nil {
		t.Fatalf("expected error for empty title")
	}
	if err := svc.DeployInboxTask(id, block.ID); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	inbox, _ := svc.Inbox()
	if len(inbox) != 0 {
		t.Fatalf("expected empty inbox, got %d", len(inbox))
	}
	if n := len(svc.App.Snapshot().Blocks[0].Tasks); n != 1 {
		t.Fatalf("expected 1 task in block, got %d", n)
	}
}

func TestTemplateSummaries(t *testing.T) {
	svc := newService(t)
	if _, err := svc.AddBlock("", false, "Matin"); err != nil {
		t.Fatalf("add block: %v", err)
	}
	if _, err := svc.SaveTemplate("Semaine", "Focus"); err != nil {
		t.Fatalf("save template: %v", err)
	}
	list, _ := svc.Templates()
	payload := templateSummaries(list)
	if payload["count"] != 1 {
		t.Fatalf("expected 1 template, got %v", payload["count"])
	}
	summaries := payload["templates"].([]TemplateSummary)
	if summaries[0].Name != "Semaine" || summaries[0].Blocks != 1 || summaries[0].Goal != "Focus" {
		t.Fatalf("unexpected summary %+v", summaries[0])
	}
}

func TestParseHelpers(t *testing.T) {
	if tf, err := ParseTimeframe(""); err != nil || tf != analytics.TimeframeWeek {
		t.Fatalf("expected week default, got %q, %v", tf, err)
	}
	if _, err := ParseTimeframe("decade"); err == nil {
		t.Fatalf("expected error for unknown timeframe")
	}
	if dir, err := ParseDirection("UP"); err != nil || dir != mutate.Up {
		t.Fatalf("expected up, got %v, %v", dir, err)
	}
	if p, err := ParsePriority(""); err != nil || p != "" {
		t.Fatalf("expected empty priority, got %q, %v", p, err)
	}
}

func TestReportWindow(t *testing.T) {
	svc := newService(t)
	report, err := svc.Report("")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Since != "2024-03-07" || report.Until != today {
		t.Fatalf("expected 7 day window, got %s..%s", report.Since, report.Until)
	}
	if _, err := svc.Report("soon"); err == nil {
		t.Fatalf("expected error for malformed window")
	}
}

func TestToggleTaskOnDetachedDay(t *testing.T) {
	svc := newService(t)
	block, _ := svc.AddBlock("", false, "Matin")
	task, _ := svc.AddTask("", false, block.ID, "Sport")
	if err := svc.Detach(""); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if _, err := svc.ToggleTask("", task.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	view, _ := svc.Day("")
	if !view.Blocks[0].Tasks[0].Task.IsDone(today) {
		t.Fatalf("expected the detached day to show the task done")
	}
}
