package show

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/store"
)

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

func TestShowPrintsDays(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	svc := openService(t)
	blockID := svc.AddBlock(mutate.Global("2024-03-13"), "Matin")
	svc.AddTask(mutate.Global("2024-03-13"), blockID, "", "Sport")

	var buf bytes.Buffer
	s := Show{Service: svc, Days: 1, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"2024-03-13", "2024-03-14", "Matin", "Sport"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestShowRejectsBadDate(t *testing.T) {
	s := Show{Service: openService(t), Date: "13/03/2024"}
	if _, err := s.Views(); err == nil {
		t.Fatalf("expected error for bad date")
	}
}

func TestShowWithoutService(t *testing.T) {
	s := Show{}
	if err := s.Do(context.Background()); err == nil {
		t.Fatalf("expected error without service")
	}
}
