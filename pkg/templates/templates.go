// Package templates saves, restores and edits named routine snapshots.
package templates

import (
	"errors"

	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

// ArchiveGoal is the goal attached to templates made by a reset.
const ArchiveGoal = "Routine Archivée"

var (
	// ErrNotFound is returned when a template id does not resolve.
	ErrNotFound = errors.New("templates: template not found")
	// ErrNameRequired is returned when a template would have no name.
	ErrNameRequired = errors.New("templates: name required")
)

func snapshot(data routine.AppData, name, goal string) routine.Template {
	return routine.Template{
		ID:             routine.NewID(),
		Name:           name,
		Blocks:         routine.CloneBlocks(data.Blocks),
		RecurringGoals: routine.CloneGoals(data.RecurringGoals),
		TemplateGoal:   goal,
	}
}

func withTemplate(data routine.AppData, t routine.Template) routine.AppData {
	templates := make([]routine.Template, 0, len(data.Templates)+1)
	templates = append(templates, data.Templates...)
	data.Templates = append(templates, t)
	return data
}

func cleared(data routine.AppData) routine.AppData {
	data.Blocks = []routine.Block{}
	data.RecurringGoals = []routine.RecurringGoal{}
	return data
}

// Save snapshots the live blocks and goals as a new template and clears them.
// goal, when set, becomes a one-off goal each time the template is applied.
func Save(data routine.AppData, name, goal string) (routine.AppData, string, error) {
	if name == "" {
		return data, "", ErrNameRequired
	}
	t := snapshot(data, name, goal)
	return cleared(withTemplate(data, t)), t.ID, nil
}

// Rename edits a template's name and goal in place. Live data is untouched.
func Rename(data routine.AppData, id, name, goal string) (routine.AppData, error) {
	i := routine.FindTemplate(data.Templates, id)
	if i < 0 {
		return data, ErrNotFound
	}
	if name == "" {
		return data, ErrNameRequired
	}
	templates := make([]routine.Template, len(data.Templates))
	copy(templates, data.Templates)
	templates[i].Name = name
	templates[i].TemplateGoal = goal
	data.Templates = templates
	return data, nil
}

// Remove deletes a template.
func Remove(data routine.AppData, id string) (routine.AppData, error) {
	i := routine.FindTemplate(data.Templates, id)
	if i < 0 {
		return data, ErrNotFound
	}
	templates := make([]routine.Template, 0, len(data.Templates)-1)
	templates = append(templates, data.Templates[:i]...)
	data.Templates = append(templates, data.Templates[i+1:]...)
	return data, nil
}

// Apply replaces the live blocks and goals with copies of a template's. A
// template goal is added as a goal for date only.
func Apply(data routine.AppData, id, date string) (routine.AppData, error) {
	i := routine.FindTemplate(data.Templates, id)
	if i < 0 {
		return data, ErrNotFound
	}
	t := data.Templates[i].Clone()
	goals := t.RecurringGoals
	if t.TemplateGoal != "" {
		goals = append(goals, routine.RecurringGoal{
			ID:    routine.NewID(),
			Title: t.TemplateGoal,
			Rule:  recurrence.Rule{Recurrence: recurrence.Specific, SpecificDate: date},
		})
	}
	data.Blocks = t.Blocks
	data.RecurringGoals = goals
	return data, nil
}

// Reset clears the live blocks and goals. With archive set and a name given,
// they are first kept as a template. Days are never touched.
func Reset(data routine.AppData, archive bool, name string) routine.AppData {
	if archive && name != "" {
		data = withTemplate(data, snapshot(data, name, ArchiveGoal))
	}
	return cleared(data)
}
