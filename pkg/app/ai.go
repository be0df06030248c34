package app

import (
	"context"

	"tableflip.dev/caddr/pkg/advisor"
	"tableflip.dev/caddr/pkg/analytics"
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/routine"
)

// Advice asks the advisor about the routine shown on date.
func (s *Service) Advice(ctx context.Context, date string) *advisor.Advice {
	s.mu.Lock()
	res := s.resolver()
	blocks := routine.CloneBlocks(res.BlocksForDate(s.data, date))
	perf := analytics.New(res).Day(s.data, date).Percent
	s.mu.Unlock()
	return s.advisor.Advice(ctx, blocks, perf)
}

// Review asks the advisor to review date using its reflection. The feedback
// is stored on the day. Nothing happens without a reflection.
func (s *Service) Review(ctx context.Context, date string) *routine.Feedback {
	s.mu.Lock()
	reflection := s.data.Day(date).Reflection
	agg := analytics.New(s.resolver())
	completed := agg.CompletedTitles(s.data, date)
	perf := agg.Day(s.data, date).Percent
	s.mu.Unlock()

	if reflection == "" {
		return nil
	}
	fb := s.advisor.Review(ctx, completed, perf, reflection)
	if fb == nil {
		return nil
	}
	s.UpdateDay(date, mutate.Feedback(*fb))
	return fb
}

// GenerateFromGoal appends advisor-drafted blocks for goal, after an undo
// checkpoint. It returns the ids of the new blocks.
func (s *Service) GenerateFromGoal(ctx context.Context, goal string) []string {
	if goal == "" {
		return nil
	}
	return s.insertOutlines(s.advisor.RoutineFromGoal(ctx, goal))
}

// GenerateFromImage appends blocks the advisor read from a picture, after an
// undo checkpoint.
func (s *Service) GenerateFromImage(ctx context.Context, image []byte) []string {
	if len(image) == 0 {
		return nil
	}
	return s.insertOutlines(s.advisor.RoutineFromImage(ctx, image))
}

func (s *Service) insertOutlines(outlines []routine.Outline) []string {
	if outlines == nil {
		return nil
	}
	blocks := mutate.BlocksFromOutlines(outlines)
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}
	s.update(true, func(data routine.AppData, _ overlay.Resolver) routine.AppData {
		for _, b := range blocks {
			data.Blocks = mutate.AddBlock(data.Blocks, b)
		}
		return data
	})
	return ids
}
