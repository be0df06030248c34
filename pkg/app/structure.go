package app

import (
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/progress"
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

// AddTask adds a task to blockID, or a sub-task under parentTaskID, and
// returns its id. The id is empty when the parent does not exist in scope.
func (s *Service) AddTask(scope mutate.Scope, blockID, parentTaskID, title string) string {
	var id string
	s.routed(func(data routine.AppData, res overlay.Resolver) (routine.AppData, bool) {
		parent := mutate.BlockRef(blockID)
		if parentTaskID != "" {
			parent = mutate.TaskRef(blockID, parentTaskID)
		}
		if !resolves(mutate.Tree(data, res, scope), parent) {
			return data, false
		}
		data = mutate.Apply(data, res, scope, func(blocks []routine.Block) []routine.Block {
			blocks, id = mutate.AddTask(blocks, blockID, parentTaskID, title)
			return blocks
		})
		return data, id != ""
	}, false)
	return id
}

// AddBlock appends an empty daily block and returns its id. In a day scope
// the block is local to that date.
func (s *Service) AddBlock(scope mutate.Scope, title string) string {
	b := routine.Block{
		ID:    routine.NewID(),
		Title: title,
		Tasks: []routine.Task{},
		Rule:  recurrence.Rule{Recurrence: recurrence.Daily},
	}
	if scope.Day {
		b = mutate.LocalBlock(scope.Date)
		if title != "" {
			b.Title = title
		}
	}
	s.update(false, func(data routine.AppData, res overlay.Resolver) routine.AppData {
		return mutate.Apply(data, res, scope, func(blocks []routine.Block) []routine.Block {
			return mutate.AddBlock(blocks, b)
		})
	})
	return b.ID
}

// UpdateTask applies typed field edits to a task or sub-task.
func (s *Service) UpdateTask(scope mutate.Scope, ref mutate.Ref, updates ...mutate.TaskUpdate) bool {
	return s.edit(scope, ref, func(blocks []routine.Block) []routine.Block {
		return mutate.UpdateTask(blocks, ref, scope.Date, updates...)
	})
}

// UpdateBlock applies typed field edits to a block.
func (s *Service) UpdateBlock(scope mutate.Scope, blockID string, updates ...mutate.BlockUpdate) bool {
	return s.edit(scope, mutate.BlockRef(blockID), func(blocks []routine.Block) []routine.Block {
		return mutate.UpdateBlock(blocks, blockID, scope.Date, updates...)
	})
}

// Delete removes a block, task or sub-task after an undo checkpoint.
func (s *Service) Delete(scope mutate.Scope, ref mutate.Ref) bool {
	return s.editChecked(true, scope, ref, func(blocks []routine.Block) []routine.Block {
		return mutate.Delete(blocks, ref)
	})
}

// Move swaps the addressed node with its neighbour.
func (s *Service) Move(scope mutate.Scope, ref mutate.Ref, dir mutate.Direction) bool {
	return s.edit(scope, ref, func(blocks []routine.Block) []routine.Block {
		return mutate.Move(blocks, ref, dir)
	})
}

// Duplicate copies the addressed node next to itself and returns the copy's id.
func (s *Service) Duplicate(scope mutate.Scope, ref mutate.Ref) string {
	var id string
	s.edit(scope, ref, func(blocks []routine.Block) []routine.Block {
		blocks, id = mutate.Duplicate(blocks, ref)
		return blocks
	})
	return id
}

// ToggleCollapse flips a block's collapsed flag.
func (s *Service) ToggleCollapse(scope mutate.Scope, blockID string) bool {
	return s.edit(scope, mutate.BlockRef(blockID), func(blocks []routine.Block) []routine.Block {
		return mutate.ToggleCollapse(blocks, blockID)
	})
}

// Toggle flips the completion of a task or sub-task on the scope's date and
// awards the points.
func (s *Service) Toggle(scope mutate.Scope, ref mutate.Ref) progress.Result {
	var result progress.Result
	s.routed(func(data routine.AppData, _ overlay.Resolver) (routine.AppData, bool) {
		data, result = progress.Complete(data, scope, ref)
		return data, result.Found
	}, false)
	return result
}

// ToggleGoal flips the daily goal of date and awards the points.
func (s *Service) ToggleGoal(date string) progress.Result {
	var result progress.Result
	s.update(false, func(data routine.AppData, _ overlay.Resolver) routine.AppData {
		data, result = progress.CompleteGoal(data, date)
		return data
	})
	return result
}

// Reschedule moves a task scheduled on date to target, after an undo
// checkpoint.
func (s *Service) Reschedule(date string, ref mutate.Ref, target string) bool {
	return s.routed(func(data routine.AppData, res overlay.Resolver) (routine.AppData, bool) {
		return mutate.Reschedule(data, res, date, ref, target)
	}, true)
}

// PromoteTask copies a task shown on date into the daily template.
func (s *Service) PromoteTask(date string, ref mutate.Ref) bool {
	return s.routed(func(data routine.AppData, res overlay.Resolver) (routine.AppData, bool) {
		return mutate.PromoteTask(data, res, date, ref)
	}, false)
}

// PromoteBlock copies a block shown on date into the daily template.
func (s *Service) PromoteBlock(date, blockID string) bool {
	return s.routed(func(data routine.AppData, res overlay.Resolver) (routine.AppData, bool) {
		return mutate.PromoteBlock(data, res, date, blockID)
	}, false)
}

// Detach gives date its own copy of the schedule.
func (s *Service) Detach(date string) {
	s.update(false, func(data routine.AppData, res overlay.Resolver) routine.AppData {
		return res.Detach(data, date)
	})
}

// Reattach drops date's own schedule, after an undo checkpoint.
func (s *Service) Reattach(date string) bool {
	return s.routed(func(data routine.AppData, res overlay.Resolver) (routine.AppData, bool) {
		if !data.Day(date).Detached() {
			return data, false
		}
		return res.Reattach(data, date), true
	}, true)
}

// edit runs fn on the scope's tree when ref resolves there.
func (s *Service) edit(scope mutate.Scope, ref mutate.Ref, fn func([]routine.Block) []routine.Block) bool {
	return s.editChecked(false, scope, ref, fn)
}

func (s *Service) editChecked(checkpoint bool, scope mutate.Scope, ref mutate.Ref, fn func([]routine.Block) []routine.Block) bool {
	return s.routed(func(data routine.AppData, res overlay.Resolver) (routine.AppData, bool) {
		if !resolves(mutate.Tree(data, res, scope), ref) {
			return data, false
		}
		return mutate.Apply(data, res, scope, fn), true
	}, checkpoint)
}

// routed applies fn and keeps its result only when fn reports a change. The
// checkpoint, if asked for, is only taken in that case.
func (s *Service) routed(fn func(routine.AppData, overlay.Resolver) (routine.AppData, bool), checkpoint bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := fn(s.data, s.resolver())
	if !ok {
		return false
	}
	s.updateLocked(checkpoint, func(routine.AppData, overlay.Resolver) routine.AppData {
		return next
	})
	return true
}

func resolves(blocks []routine.Block, ref mutate.Ref) bool {
	if ref.IsBlock() {
		_, ok := mutate.FindBlock(blocks, ref.BlockID)
		return ok
	}
	_, ok := mutate.FindTask(blocks, ref)
	return ok
}
