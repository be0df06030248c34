package routine

import (
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/xp"
)

// Normalize fills missing optional fields of a freshly decoded document so
// the rest of the code can rely on non-nil collections and a profile whose
// level agrees with its xp.
func Normalize(a AppData) AppData {
	if a.Days == nil {
		a.Days = map[string]DayRoutine{}
	}
	if a.Blocks == nil {
		a.Blocks = []Block{}
	}
	if a.Templates == nil {
		a.Templates = []Template{}
	}
	if a.RecurringGoals == nil {
		a.RecurringGoals = []RecurringGoal{}
	}
	if a.InboxTasks == nil {
		a.InboxTasks = []Task{}
	}
	p := a.Profile()
	if p.XP < 0 {
		p.XP = 0
	}
	p.Level = xp.Level(p.XP)
	a.UserProfile = &p

	for i := range a.Blocks {
		a.Blocks[i] = normalizeBlock(a.Blocks[i])
	}
	for i := range a.InboxTasks {
		a.InboxTasks[i] = normalizeTask(a.InboxTasks[i])
	}
	for i := range a.RecurringGoals {
		if a.RecurringGoals[i].Recurrence == "" {
			a.RecurringGoals[i].Recurrence = recurrence.Daily
		}
	}
	for k, d := range a.Days {
		if d.View == nil {
			d.View = Inherited{}
		}
		if blocks, ok := d.Override(); ok {
			for i := range blocks {
				blocks[i] = normalizeBlock(blocks[i])
			}
		}
		a.Days[k] = d
	}
	for i := range a.Templates {
		t := a.Templates[i]
		if t.Blocks == nil {
			t.Blocks = []Block{}
		}
		if t.RecurringGoals == nil {
			t.RecurringGoals = []RecurringGoal{}
		}
		a.Templates[i] = t
	}
	return a
}

func normalizeBlock(b Block) Block {
	if b.Recurrence == "" {
		b.Recurrence = recurrence.Daily
	}
	if b.Tasks == nil {
		b.Tasks = []Task{}
	}
	for i := range b.Tasks {
		b.Tasks[i] = normalizeTask(b.Tasks[i])
	}
	return b
}

func normalizeTask(t Task) Task {
	if t.Recurrence == "" {
		t.Recurrence = recurrence.Daily
	}
	t.CompletedDates = dedupe(t.CompletedDates)
	for i := range t.SubTasks {
		t.SubTasks[i] = normalizeTask(t.SubTasks[i])
		// Sub-tasks never nest further.
		t.SubTasks[i].SubTasks = nil
	}
	return t
}

func dedupe(dates []string) []string {
	out := make([]string, 0, len(dates))
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
