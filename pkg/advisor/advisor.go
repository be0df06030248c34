// Package advisor is the opaque AI collaborator: it suggests advice, reviews a
// day and drafts routines. Every failure degrades to a nil suggestion.
package advisor

import (
	"context"

	"tableflip.dev/caddr/pkg/routine"
)

// Advice is a coaching suggestion for the current routine.
type Advice struct {
	Advice     string `json:"advice"`
	PowerTask  string `json:"powerTask"`
	Motivation string `json:"motivation"`
}

// Advisor answers AI prompts. Implementations return nil when they cannot.
type Advisor interface {
	Advice(ctx context.Context, blocks []routine.Block, performance int) *Advice
	Review(ctx context.Context, completed []string, performance int, reflection string) *routine.Feedback
	RoutineFromGoal(ctx context.Context, goal string) []routine.Outline
	RoutineFromImage(ctx context.Context, image []byte) []routine.Outline
}

// Nop is the advisor used when none is configured.
type Nop struct{}

var _ Advisor = Nop{}

func (Nop) Advice(context.Context, []routine.Block, int) *Advice { return nil }

func (Nop) Review(context.Context, []string, int, string) *routine.Feedback { return nil }

func (Nop) RoutineFromGoal(context.Context, string) []routine.Outline { return nil }

func (Nop) RoutineFromImage(context.Context, []byte) []routine.Outline { return nil }
