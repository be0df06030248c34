package mutate

import (
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

// AIBlockTitle names suggested blocks that arrive without a title.
const AIBlockTitle = "Bloc IA"

// AddInboxTask puts a new task at the top of the inbox.
func AddInboxTask(data routine.AppData, title string) (routine.AppData, string) {
	t := NewTask(title)
	inbox := make([]routine.Task, 0, len(data.InboxTasks)+1)
	inbox = append(inbox, t)
	data.InboxTasks = append(inbox, routine.CloneTasks(data.InboxTasks)...)
	return data, t.ID
}

// DeleteInboxTask drops a task from the inbox.
func DeleteInboxTask(data routine.AppData, taskID string) routine.AppData {
	i := routine.FindTask(data.InboxTasks, taskID)
	if i < 0 {
		return data
	}
	inbox := make([]routine.Task, 0, len(data.InboxTasks)-1)
	inbox = append(inbox, data.InboxTasks[:i]...)
	data.InboxTasks = append(inbox, data.InboxTasks[i+1:]...)
	return data
}

// DeployInboxTask moves an inbox task to the end of a template block. Both
// the task and the block must exist.
func DeployInboxTask(data routine.AppData, taskID, blockID string) (routine.AppData, bool) {
	ti := routine.FindTask(data.InboxTasks, taskID)
	bi := routine.FindBlock(data.Blocks, blockID)
	if ti < 0 || bi < 0 {
		return data, false
	}
	task := data.InboxTasks[ti].Clone()
	blocks := routine.CloneBlocks(data.Blocks)
	blocks[bi].Tasks = append(blocks[bi].Tasks, task)
	data = DeleteInboxTask(data, taskID)
	data.Blocks = blocks
	return data, true
}

// BlocksFromOutlines turns suggested outlines into collapsed daily blocks.
func BlocksFromOutlines(outlines []routine.Outline) []routine.Block {
	blocks := make([]routine.Block, 0, len(outlines))
	for _, o := range outlines {
		title := o.Title
		if title == "" {
			title = AIBlockTitle
		}
		b := routine.Block{
			ID:          routine.NewID(),
			Title:       title,
			Tasks:       make([]routine.Task, 0, len(o.Tasks)),
			Rule:        recurrence.Rule{Recurrence: recurrence.Daily},
			IsCollapsed: true,
		}
		for _, t := range o.Tasks {
			b.Tasks = append(b.Tasks, NewTask(t))
		}
		blocks = append(blocks, b)
	}
	return blocks
}
