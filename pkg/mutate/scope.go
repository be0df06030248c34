package mutate

import (
	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

const (
	// LocalBlockTitle names blocks added to a single day.
	LocalBlockTitle = "Bloc Exceptionnel"
	// LocalBlockDescription describes blocks added to a single day.
	LocalBlockDescription = "Ajouté pour ce jour uniquement"
	// ReschedulePrefix starts the title of blocks holding deferred tasks.
	ReschedulePrefix = "Report: "
	// RescheduleFallback is used when the source block has no title.
	RescheduleFallback = "Tâche"
	// HabitsBlockTitle names the daily block created for promoted tasks.
	HabitsBlockTitle = "Habitudes Quotidiennes"
	// PromotedSuffix marks blocks promoted to the daily template.
	PromotedSuffix = " (Quotidien)"
)

// Scope says which layer an edit lands on. A day scope edits the override of
// Date, detaching it first. Otherwise the global template is edited and Date
// only feeds the smart recurrence defaults.
type Scope struct {
	Date string
	Day  bool
}

// Global returns a template scope viewed from date.
func Global(date string) Scope { return Scope{Date: date} }

// Day returns a day scope for date.
func Day(date string) Scope { return Scope{Date: date, Day: true} }

// Apply runs fn on the tree selected by s and stores the result back.
func Apply(data routine.AppData, res overlay.Resolver, s Scope, fn func([]routine.Block) []routine.Block) routine.AppData {
	if !s.Day {
		data.Blocks = fn(data.Blocks)
		return data
	}
	detached := res.Detach(data, s.Date)
	blocks, _ := detached.Day(s.Date).Override()
	return detached.WithDay(s.Date, detached.Day(s.Date).WithBlocks(fn(blocks)))
}

// Tree returns the blocks an edit in scope s would see.
func Tree(data routine.AppData, res overlay.Resolver, s Scope) []routine.Block {
	if !s.Day {
		return data.Blocks
	}
	return res.BlocksForDate(data, s.Date)
}

// LocalBlock returns a block meant for date only.
func LocalBlock(date string) routine.Block {
	return routine.Block{
		ID:          routine.NewID(),
		Title:       LocalBlockTitle,
		Description: LocalBlockDescription,
		Tasks:       []routine.Task{},
		Rule:        recurrence.Rule{Recurrence: recurrence.Specific, SpecificDate: date},
	}
}

// Reschedule moves the addressed task off date and onto target. The task is
// removed from the detached view of date, and a fresh copy scoped to target
// is appended to the template inside a new "Report:" block. It reports false
// when the task is not scheduled on date.
func Reschedule(data routine.AppData, res overlay.Resolver, date string, r Ref, targetDate string) (routine.AppData, bool) {
	view := res.BlocksForDate(data, date)
	task, ok := FindTask(view, r)
	if !ok || targetDate == "" {
		return data, false
	}
	title := RescheduleFallback
	if b, ok := FindBlock(data.Blocks, r.BlockID); ok && b.Title != "" {
		title = b.Title
	} else if b, ok := FindBlock(view, r.BlockID); ok && b.Title != "" {
		title = b.Title
	}

	data = Apply(data, res, Day(date), func(blocks []routine.Block) []routine.Block {
		return Delete(blocks, r)
	})

	moved := task.Fresh()
	moved.Rule = recurrence.Rule{Recurrence: recurrence.Specific, SpecificDate: targetDate}
	holder := routine.Block{
		ID:    routine.NewID(),
		Title: ReschedulePrefix + title,
		Tasks: []routine.Task{moved},
		Rule:  recurrence.Rule{Recurrence: recurrence.Specific, SpecificDate: targetDate},
	}
	data.Blocks = AddBlock(data.Blocks, holder)
	return data, true
}

// PromoteTask copies the addressed task into the daily template: onto the
// first daily block, or a new habits block when there is none. A detached
// date also gets its local copy marked daily so the view agrees.
func PromoteTask(data routine.AppData, res overlay.Resolver, date string, r Ref) (routine.AppData, bool) {
	task, ok := FindTask(res.BlocksForDate(data, date), r)
	if !ok {
		return data, false
	}
	global := task.Fresh()
	global.Rule = recurrence.Rule{Recurrence: recurrence.Daily}

	target := -1
	for i, b := range data.Blocks {
		if b.Recurrence == recurrence.Daily {
			target = i
			break
		}
	}
	if target >= 0 {
		blocks := routine.CloneBlocks(data.Blocks)
		blocks[target].Tasks = append(blocks[target].Tasks, global)
		data.Blocks = blocks
	} else {
		data.Blocks = AddBlock(data.Blocks, routine.Block{
			ID:    routine.NewID(),
			Title: HabitsBlockTitle,
			Tasks: []routine.Task{global},
			Rule:  recurrence.Rule{Recurrence: recurrence.Daily},
		})
	}

	if local, ok := data.Day(date).Override(); ok {
		patched := editTask(local, r, func(t *routine.Task) {
			t.Rule = recurrence.Rule{Recurrence: recurrence.Daily}
		})
		data = data.WithDay(date, data.Day(date).WithBlocks(patched))
	}
	return data, true
}

// PromoteBlock appends a daily copy of the block to the template, with every
// task daily and a " (Quotidien)" title.
func PromoteBlock(data routine.AppData, res overlay.Resolver, date, blockID string) (routine.AppData, bool) {
	b, ok := FindBlock(res.BlocksForDate(data, date), blockID)
	if !ok {
		return data, false
	}
	c := b.Fresh()
	c.Title += PromotedSuffix
	c.Rule = recurrence.Rule{Recurrence: recurrence.Daily}
	for i := range c.Tasks {
		c.Tasks[i].Rule = recurrence.Rule{Recurrence: recurrence.Daily}
	}
	data.Blocks = AddBlock(data.Blocks, c)
	return data, true
}
