package history

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/caddr/pkg/routine"
)

func doc(n int) routine.AppData {
	a := routine.Empty()
	a.UserProfile.XP = n
	return a
}

func TestPopIsLIFO(t *testing.T) {
	s := New(DefaultDepth)
	s.Push(doc(1))
	s.Push(doc(2))
	got, err := s.Pop()
	if err != nil || got.Profile().XP != 2 {
		t.Fatalf("expected latest checkpoint, got %d %v", got.Profile().XP, err)
	}
	got, _ = s.Pop()
	if got.Profile().XP != 1 {
		t.Fatalf("expected older checkpoint, got %d", got.Profile().XP)
	}
	if _, err := s.Pop(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestDepthCapped(t *testing.T) {
	s := &Stack{}
	for i := 1; i <= 25; i++ {
		s.Push(doc(i))
	}
	if s.Len() != DefaultDepth {
		t.Fatalf("expected %d checkpoints, got %d", DefaultDepth, s.Len())
	}
	for i := 25; i > 5; i-- {
		got, err := s.Pop()
		if err != nil || got.Profile().XP != i {
			t.Fatalf("expected checkpoint %d, got %d %v", i, got.Profile().XP, err)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("expected oldest checkpoints dropped")
	}
}

func TestPushIsolatesSnapshot(t *testing.T) {
	s := New(3)
	a := doc(1)
	a.Blocks = []routine.Block{{ID: "b", Title: "Before", Tasks: []routine.Task{}}}
	want := a.Clone()
	s.Push(a)
	a.Blocks[0].Title = "After"
	got, _ := s.Pop()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected exact checkpoint restored")
	}
}

func TestJSONKeepsOrder(t *testing.T) {
	s := New(5)
	s.Push(doc(1))
	s.Push(doc(2))
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	restored := New(5)
	if err := json.Unmarshal(raw, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, _ := restored.Pop()
	if got.Profile().XP != 2 {
		t.Fatalf("expected newest first after restore, got %d", got.Profile().XP)
	}
}
