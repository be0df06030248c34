package mutate

import (
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

const (
	// DefaultTaskTitle names tasks added without a title.
	DefaultTaskTitle = "Nouvelle tâche"
	// CopySuffix marks duplicated nodes.
	CopySuffix = " (Copie)"
)

// Direction is a reorder direction.
type Direction int

const (
	Up Direction = iota
	Down
)

// NewTask returns an empty daily task.
func NewTask(title string) routine.Task {
	if title == "" {
		title = DefaultTaskTitle
	}
	return routine.Task{
		ID:             routine.NewID(),
		Title:          title,
		CompletedDates: []string{},
		Rule:           recurrence.Rule{Recurrence: recurrence.Daily},
		SubTasks:       []routine.Task{},
	}
}

// AddTask appends a new task to blockID, or a new sub-task to parentTaskID
// when it is set. It returns the tree and the new task's id, empty when the
// parent was not found.
func AddTask(blocks []routine.Block, blockID, parentTaskID, title string) ([]routine.Block, string) {
	t := NewTask(title)
	if parentTaskID != "" {
		t.SubTasks = nil
	}
	added := false
	out := editTaskList(blocks, Ref{BlockID: blockID, ParentTaskID: parentTaskID}, func(tasks []routine.Task) ([]routine.Task, bool) {
		added = true
		return append(tasks, t), true
	})
	if !added {
		return blocks, ""
	}
	return out, t.ID
}

// AddBlock appends b.
func AddBlock(blocks []routine.Block, b routine.Block) []routine.Block {
	out := routine.CloneBlocks(blocks)
	return append(out, b.Clone())
}

// Delete removes the addressed block, task or sub-task with everything it owns.
func Delete(blocks []routine.Block, r Ref) []routine.Block {
	if r.IsBlock() {
		i := routine.FindBlock(blocks, r.BlockID)
		if i < 0 {
			return blocks
		}
		out := make([]routine.Block, 0, len(blocks)-1)
		out = append(out, routine.CloneBlocks(blocks[:i])...)
		return append(out, routine.CloneBlocks(blocks[i+1:])...)
	}
	return editTaskList(blocks, r, func(tasks []routine.Task) ([]routine.Task, bool) {
		i := routine.FindTask(tasks, r.TaskID)
		if i < 0 {
			return tasks, false
		}
		return append(tasks[:i:i], tasks[i+1:]...), true
	})
}

// Move swaps the addressed node with its neighbour. Moving the first node up
// or the last node down changes nothing.
func Move(blocks []routine.Block, r Ref, dir Direction) []routine.Block {
	if r.IsBlock() {
		i := routine.FindBlock(blocks, r.BlockID)
		j := target(i, len(blocks), dir)
		if j < 0 {
			return blocks
		}
		out := routine.CloneBlocks(blocks)
		out[i], out[j] = out[j], out[i]
		return out
	}
	return editTaskList(blocks, r, func(tasks []routine.Task) ([]routine.Task, bool) {
		i := routine.FindTask(tasks, r.TaskID)
		j := target(i, len(tasks), dir)
		if j < 0 {
			return tasks, false
		}
		tasks[i], tasks[j] = tasks[j], tasks[i]
		return tasks, true
	})
}

func target(i, n int, dir Direction) int {
	if i < 0 {
		return -1
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= n {
		return -1
	}
	return j
}

// Duplicate inserts a fresh copy of the addressed node right after it. The
// copy has new ids throughout, no completions, and a " (Copie)" title. The
// new id is returned, empty when nothing was found.
func Duplicate(blocks []routine.Block, r Ref) ([]routine.Block, string) {
	if r.IsBlock() {
		i := routine.FindBlock(blocks, r.BlockID)
		if i < 0 {
			return blocks, ""
		}
		c := blocks[i].Fresh()
		c.Title += CopySuffix
		out := make([]routine.Block, 0, len(blocks)+1)
		out = append(out, routine.CloneBlocks(blocks[:i+1])...)
		out = append(out, c)
		return append(out, routine.CloneBlocks(blocks[i+1:])...), c.ID
	}
	var id string
	out := editTaskList(blocks, r, func(tasks []routine.Task) ([]routine.Task, bool) {
		i := routine.FindTask(tasks, r.TaskID)
		if i < 0 {
			return tasks, false
		}
		c := tasks[i].Fresh()
		c.Title += CopySuffix
		id = c.ID
		next := make([]routine.Task, 0, len(tasks)+1)
		next = append(next, tasks[:i+1]...)
		next = append(next, c)
		return append(next, tasks[i+1:]...), true
	})
	return out, id
}

// ToggleCollapse flips a block's collapsed flag.
func ToggleCollapse(blocks []routine.Block, blockID string) []routine.Block {
	return editBlock(blocks, blockID, func(b *routine.Block) {
		b.IsCollapsed = !b.IsCollapsed
	})
}
