package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/caddr/pkg/logging"
	"tableflip.dev/caddr/pkg/routine"
)

func replying(reply string, seen *Request) Runner {
	return func(ctx context.Context, argv []string, stdin []byte) ([]byte, error) {
		if seen != nil {
			if err := json.Unmarshal(stdin, seen); err != nil {
				return nil, err
			}
		}
		return []byte(reply), nil
	}
}

func TestCommandAdvice(t *testing.T) {
	var req Request
	c := &Command{Argv: []string{"ai"}, Run: replying(`{"advice":"a","powerTask":"p","motivation":"m"}`, &req)}
	blocks := []routine.Block{{Title: "Matin", Tasks: []routine.Task{{Title: "Sport"}, {Title: "Lecture"}}}}

	got := c.Advice(context.Background(), blocks, 42)
	if got == nil || got.PowerTask != "p" {
		t.Fatalf("expected advice, got %+v", got)
	}
	if req.Kind != "advice" {
		t.Fatalf("expected advice request, got %q", req.Kind)
	}
	if !strings.Contains(req.Prompt, "Matin: Sport, Lecture") || !strings.Contains(req.Prompt, "42%") {
		t.Fatalf("expected routine summary in prompt, got %q", req.Prompt)
	}
	if len(req.Schema) == 0 {
		t.Fatalf("expected schema in request")
	}
}

func TestCommandReview(t *testing.T) {
	c := &Command{Argv: []string{"ai"}, Run: replying(`{"feedback":"bien","focusTomorrow":"dormir"}`, nil)}
	got := c.Review(context.Background(), []string{"Sport"}, 80, "ok")
	if got == nil || got.FocusTomorrow != "dormir" {
		t.Fatalf("expected feedback, got %+v", got)
	}
}

func TestCommandRoutineFromImageEncodesImage(t *testing.T) {
	var req Request
	c := &Command{Argv: []string{"ai"}, Run: replying(`[{"title":"Import Image","tasks":["a","b"]}]`, &req)}
	got := c.RoutineFromImage(context.Background(), []byte{0xff, 0xd8})
	if len(got) != 1 || len(got[0].Tasks) != 2 {
		t.Fatalf("expected one outline with two tasks, got %+v", got)
	}
	if req.Image != "/9g=" {
		t.Fatalf("expected base64 image, got %q", req.Image)
	}
}

func TestCommandDegradesToNil(t *testing.T) {
	var logs bytes.Buffer
	cases := map[string]Runner{
		"error":   func(context.Context, []string, []byte) ([]byte, error) { return nil, errors.New("boom") },
		"garbage": replying(`not json`, nil),
		"shape":   replying(`[{"title":"x"}]`, nil),
	}
	for name, run := range cases {
		t.Run(name, func(t *testing.T) {
			c := &Command{Argv: []string{"ai"}, Run: run, Log: logging.New(&logs, "warn")}
			if got := c.RoutineFromGoal(context.Background(), "courir"); got != nil {
				t.Fatalf("expected nil, got %+v", got)
			}
		})
	}
	if !strings.Contains(logs.String(), "advisor unavailable") {
		t.Fatalf("expected failures to be logged, got %q", logs.String())
	}
}

func TestNewCommandWithoutArgvIsNop(t *testing.T) {
	a := NewCommand(nil, nil)
	if _, ok := a.(Nop); !ok {
		t.Fatalf("expected Nop advisor, got %T", a)
	}
	if a.Advice(context.Background(), nil, 0) != nil {
		t.Fatalf("expected nil advice")
	}
}
