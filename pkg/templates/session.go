package templates

import "tableflip.dev/caddr/pkg/routine"

// Session holds the live routine while a template is edited in its place.
type Session struct {
	TemplateID string                  `json:"templateId"`
	Blocks     []routine.Block         `json:"originalBlocks"`
	Goals      []routine.RecurringGoal `json:"originalGoals"`
}

// BeginEdit parks the live blocks and goals in a session and loads the
// template's content for editing with the ordinary mutations.
func BeginEdit(data routine.AppData, id string) (routine.AppData, *Session, error) {
	i := routine.FindTemplate(data.Templates, id)
	if i < 0 {
		return data, nil, ErrNotFound
	}
	s := &Session{
		TemplateID: id,
		Blocks:     routine.CloneBlocks(data.Blocks),
		Goals:      routine.CloneGoals(data.RecurringGoals),
	}
	t := data.Templates[i].Clone()
	data.Blocks = t.Blocks
	data.RecurringGoals = t.RecurringGoals
	return data, s, nil
}

// Commit writes the edited live content back to the template and restores
// the parked routine. A template removed meanwhile only gets the restore.
func Commit(s *Session, data routine.AppData) routine.AppData {
	if s == nil {
		return data
	}
	if i := routine.FindTemplate(data.Templates, s.TemplateID); i >= 0 {
		templates := make([]routine.Template, len(data.Templates))
		copy(templates, data.Templates)
		templates[i].Blocks = routine.CloneBlocks(data.Blocks)
		templates[i].RecurringGoals = routine.CloneGoals(data.RecurringGoals)
		data.Templates = templates
	}
	return restore(s, data)
}

// Cancel drops the edits and restores the parked routine.
func Cancel(s *Session, data routine.AppData) routine.AppData {
	if s == nil {
		return data
	}
	return restore(s, data)
}

func restore(s *Session, data routine.AppData) routine.AppData {
	data.Blocks = routine.CloneBlocks(s.Blocks)
	data.RecurringGoals = routine.CloneGoals(s.Goals)
	return data
}
