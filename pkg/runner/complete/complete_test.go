package complete

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/store"
	"tableflip.dev/caddr/pkg/xp"
)

const today = "2024-03-13"

func openService(t *testing.T) *app.Service {
	t.Helper()
	local, err := store.OpenLocal(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("open local: %v", err)
	}
	svc, err := app.Open(context.Background(), app.Options{
		Store:    local,
		Debounce: time.Hour,
		Now:      func() time.Time { return time.Date(2024, time.March, 13, 9, 0, 0, 0, time.Local) },
	})
	if err != nil {
		t.Fatalf("open service: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close(context.Background()) })
	return svc
}

func TestCompleteByID(t *testing.T) {
	svc := openService(t)
	blockID := svc.AddBlock(mutate.Global(today), "Matin")
	taskID := svc.AddTask(mutate.Global(today), blockID, "", "Sport")

	var buf bytes.Buffer
	c := Complete{Service: svc, Scope: mutate.Global(today), ID: taskID, Out: &buf}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "completed on 2024-03-13") {
		t.Fatalf("expected completion line, got %q", buf.String())
	}
	if got := svc.Profile().XP; got != xp.TaskPoints {
		t.Fatalf("expected %d XP, got %d", xp.TaskPoints, got)
	}
}

func TestCompleteRejectsBlock(t *testing.T) {
	svc := openService(t)
	blockID := svc.AddBlock(mutate.Global(today), "Matin")
	c := Complete{Service: svc, Scope: mutate.Global(today), ID: blockID}
	if _, err := c.Toggle(); err == nil {
		t.Fatalf("expected error when completing a block")
	}
}

func TestCompleteUnknown(t *testing.T) {
	c := Complete{Service: openService(t), Scope: mutate.Global(today), ID: "missing"}
	if _, err := c.Toggle(); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCompleteGoal(t *testing.T) {
	svc := openService(t)
	c := Complete{Service: svc, Scope: mutate.Global(today), Goal: true}
	res, err := c.Toggle()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Completed || svc.Profile().XP != xp.GoalPoints {
		t.Fatalf("expected goal completed with %d XP, got %v %d", xp.GoalPoints, res.Completed, svc.Profile().XP)
	}
}

func TestCompleteOnDetachedDay(t *testing.T) {
	svc := openService(t)
	blockID := svc.AddBlock(mutate.Global(today), "Matin")
	taskID := svc.AddTask(mutate.Global(today), blockID, "", "Sport")
	svc.Detach(today)

	c := Complete{Service: svc, Scope: mutate.Global(today), ID: taskID}
	if _, err := c.Toggle(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view := svc.Day(today)
	if len(view.Blocks) != 1 || len(view.Blocks[0].Tasks) != 1 {
		t.Fatalf("expected one block with one task, got %+v", view.Blocks)
	}
	if !view.Blocks[0].Tasks[0].Task.IsDone(today) {
		t.Fatalf("expected the day view to show the task done")
	}
	if view.Perf.Percent != 100 {
		t.Fatalf("expected 100%%, got %d%%", view.Perf.Percent)
	}
}

func TestCompleteDayOnlyTask(t *testing.T) {
	svc := openService(t)
	blockID := svc.AddBlock(mutate.Day(today), "Rendez-vous")
	taskID := svc.AddTask(mutate.Day(today), blockID, "", "Dentiste")

	c := Complete{Service: svc, Scope: mutate.Global(today), ID: taskID}
	res, err := c.Toggle()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Completed || svc.Profile().XP != xp.TaskPoints {
		t.Fatalf("expected completion with %d XP, got %v %d", xp.TaskPoints, res.Completed, svc.Profile().XP)
	}
}
