package routine

// Clone returns a deep copy of t.
func (t Task) Clone() Task {
	t.CompletedDates = cloneStrings(t.CompletedDates)
	if t.SubTasks != nil {
		subs := make([]Task, len(t.SubTasks))
		for i, st := range t.SubTasks {
			subs[i] = st.Clone()
		}
		t.SubTasks = subs
	}
	if t.ExecutionNotes != nil {
		notes := make(map[string]string, len(t.ExecutionNotes))
		for k, v := range t.ExecutionNotes {
			notes[k] = v
		}
		t.ExecutionNotes = notes
	}
	return t
}

// Fresh returns a deep copy of t with new ids throughout and no completions.
func (t Task) Fresh() Task {
	c := t.Clone()
	c.ID = NewID()
	c.CompletedDates = []string{}
	for i := range c.SubTasks {
		c.SubTasks[i] = c.SubTasks[i].Fresh()
	}
	return c
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	b.Tasks = CloneTasks(b.Tasks)
	return b
}

// Fresh returns a deep copy of b with new ids throughout and no completions.
func (b Block) Fresh() Block {
	c := b.Clone()
	c.ID = NewID()
	for i := range c.Tasks {
		c.Tasks[i] = c.Tasks[i].Fresh()
	}
	return c
}

// CloneTasks deep-copies a task list. A nil list stays nil.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// CloneBlocks deep-copies a block list, always returning a non-nil slice.
func CloneBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

// CloneGoals copies a goal list, always returning a non-nil slice.
func CloneGoals(goals []RecurringGoal) []RecurringGoal {
	out := make([]RecurringGoal, len(goals))
	copy(out, goals)
	return out
}

// Clone returns a deep copy of t.
func (t Template) Clone() Template {
	t.Blocks = CloneBlocks(t.Blocks)
	t.RecurringGoals = CloneGoals(t.RecurringGoals)
	return t
}

// Clone returns a deep copy of d.
func (d DayRoutine) Clone() DayRoutine {
	if d.AIFeedback != nil {
		fb := *d.AIFeedback
		d.AIFeedback = &fb
	}
	if blocks, ok := d.Override(); ok {
		d = d.WithBlocks(CloneBlocks(blocks))
	}
	return d
}

// Clone returns a deep copy of the whole document.
func (a AppData) Clone() AppData {
	out := AppData{
		Days:           make(map[string]DayRoutine, len(a.Days)),
		Blocks:         CloneBlocks(a.Blocks),
		RecurringGoals: CloneGoals(a.RecurringGoals),
		Templates:      make([]Template, len(a.Templates)),
		InboxTasks:     CloneTasks(a.InboxTasks),
	}
	for k, d := range a.Days {
		out.Days[k] = d.Clone()
	}
	for i, t := range a.Templates {
		out.Templates[i] = t.Clone()
	}
	if out.InboxTasks == nil {
		out.InboxTasks = []Task{}
	}
	if a.UserProfile != nil {
		p := *a.UserProfile
		out.UserProfile = &p
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
