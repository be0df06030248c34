// Package mutate applies structural edits to block trees. Every function
// returns a new tree and leaves its input untouched; an address that does not
// resolve yields the input unchanged.
package mutate

import "tableflip.dev/caddr/pkg/routine"

// Ref addresses a block, a task in a block, or a sub-task of a task.
type Ref struct {
	BlockID      string `json:"blockId"`
	TaskID       string `json:"taskId,omitempty"`
	ParentTaskID string `json:"parentTaskId,omitempty"`
}

// BlockRef addresses a block.
func BlockRef(blockID string) Ref { return Ref{BlockID: blockID} }

// TaskRef addresses a top-level task.
func TaskRef(blockID, taskID string) Ref { return Ref{BlockID: blockID, TaskID: taskID} }

// SubTaskRef addresses a sub-task.
func SubTaskRef(blockID, parentTaskID, taskID string) Ref {
	return Ref{BlockID: blockID, TaskID: taskID, ParentTaskID: parentTaskID}
}

// IsBlock reports whether r names a block rather than a task.
func (r Ref) IsBlock() bool { return r.TaskID == "" }

// IsSubTask reports whether r names a sub-task.
func (r Ref) IsSubTask() bool { return r.TaskID != "" && r.ParentTaskID != "" }

// FindTask returns the task r points at.
func FindTask(blocks []routine.Block, r Ref) (routine.Task, bool) {
	if r.IsBlock() {
		return routine.Task{}, false
	}
	bi := routine.FindBlock(blocks, r.BlockID)
	if bi < 0 {
		return routine.Task{}, false
	}
	tasks := blocks[bi].Tasks
	if r.IsSubTask() {
		pi := routine.FindTask(tasks, r.ParentTaskID)
		if pi < 0 {
			return routine.Task{}, false
		}
		tasks = tasks[pi].SubTasks
	}
	ti := routine.FindTask(tasks, r.TaskID)
	if ti < 0 {
		return routine.Task{}, false
	}
	return tasks[ti], true
}

// FindBlock returns the block with id.
func FindBlock(blocks []routine.Block, id string) (routine.Block, bool) {
	if i := routine.FindBlock(blocks, id); i >= 0 {
		return blocks[i], true
	}
	return routine.Block{}, false
}

// editTaskList clones blocks and hands fn the list that holds the task r
// addresses: a block's tasks or a parent task's sub-tasks. fn returns the
// replacement list and whether anything changed.
func editTaskList(blocks []routine.Block, r Ref, fn func([]routine.Task) ([]routine.Task, bool)) []routine.Block {
	bi := routine.FindBlock(blocks, r.BlockID)
	if bi < 0 {
		return blocks
	}
	out := routine.CloneBlocks(blocks)
	b := &out[bi]
	if r.ParentTaskID == "" {
		next, ok := fn(b.Tasks)
		if !ok {
			return blocks
		}
		b.Tasks = next
		return out
	}
	pi := routine.FindTask(b.Tasks, r.ParentTaskID)
	if pi < 0 {
		return blocks
	}
	next, ok := fn(b.Tasks[pi].SubTasks)
	if !ok {
		return blocks
	}
	b.Tasks[pi].SubTasks = next
	return out
}

// editTask clones blocks and hands fn the task r addresses.
func editTask(blocks []routine.Block, r Ref, fn func(*routine.Task)) []routine.Block {
	if r.IsBlock() {
		return blocks
	}
	return editTaskList(blocks, r, func(tasks []routine.Task) ([]routine.Task, bool) {
		i := routine.FindTask(tasks, r.TaskID)
		if i < 0 {
			return tasks, false
		}
		fn(&tasks[i])
		return tasks, true
	})
}

// editBlock clones blocks and hands fn the block with id.
func editBlock(blocks []routine.Block, id string, fn func(*routine.Block)) []routine.Block {
	i := routine.FindBlock(blocks, id)
	if i < 0 {
		return blocks
	}
	out := routine.CloneBlocks(blocks)
	fn(&out[i])
	return out
}
