package app

import (
	"fmt"
	"io"

	"tableflip.dev/caddr/pkg/backup"
	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/templates"
)

// Templates lists the saved templates.
func (s *Service) Templates() []routine.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]routine.Template, 0, len(s.data.Templates))
	for _, t := range s.data.Templates {
		out = append(out, t.Clone())
	}
	return out
}

// SaveTemplate snapshots the live routine as a template and clears it.
func (s *Service) SaveTemplate(name, goal string) (string, error) {
	var id string
	err := s.liveOp(func(data routine.AppData) (routine.AppData, error) {
		var err error
		data, id, err = templates.Save(data, name, goal)
		return data, err
	})
	return id, err
}

// RenameTemplate edits a template's name and goal.
func (s *Service) RenameTemplate(id, name, goal string) error {
	return s.templateOp(false, func(data routine.AppData) (routine.AppData, error) {
		return templates.Rename(data, id, name, goal)
	})
}

// RemoveTemplate deletes a template after an undo checkpoint.
func (s *Service) RemoveTemplate(id string) error {
	return s.templateOp(true, func(data routine.AppData) (routine.AppData, error) {
		return templates.Remove(data, id)
	})
}

// ApplyTemplate replaces the live routine with a template's, after an undo
// checkpoint. The template goal, if any, is scheduled on date.
func (s *Service) ApplyTemplate(id, date string) error {
	return s.liveOp(func(data routine.AppData) (routine.AppData, error) {
		return templates.Apply(data, id, date)
	})
}

// Reset clears the live routine after an undo checkpoint, archiving it as a
// template first when archive is set.
func (s *Service) Reset(archive bool, name string) error {
	return s.liveOp(func(data routine.AppData) (routine.AppData, error) {
		return templates.Reset(data, archive, name), nil
	})
}

// BeginTemplateEdit swaps a template into the live routine for editing.
func (s *Service) BeginTemplateEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		return ErrEditInProgress
	}
	next, session, err := templates.BeginEdit(s.data, id)
	if err != nil {
		return err
	}
	s.session = session
	s.updateLocked(false, func(routine.AppData, overlay.Resolver) routine.AppData { return next })
	return nil
}

// EditingTemplate returns the id of the template being edited.
func (s *Service) EditingTemplate() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return "", false
	}
	return s.session.TemplateID, true
}

// CommitTemplateEdit stores the edits in the template and restores the
// routine.
func (s *Service) CommitTemplateEdit() error {
	return s.endEdit(templates.Commit)
}

// CancelTemplateEdit drops the edits and restores the routine.
func (s *Service) CancelTemplateEdit() error {
	return s.endEdit(templates.Cancel)
}

func (s *Service) endEdit(finish func(*templates.Session, routine.AppData) routine.AppData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ErrNoEdit
	}
	session := s.session
	s.session = nil
	s.updateLocked(false, func(data routine.AppData, _ overlay.Resolver) routine.AppData {
		return finish(session, data)
	})
	return nil
}

// liveOp is a checkpointed templateOp that replaces the live routine. It is
// refused while a template edit is open, since the live routine is the
// template being edited.
func (s *Service) liveOp(fn func(routine.AppData) (routine.AppData, error)) error {
	return s.templateOp(true, func(data routine.AppData) (routine.AppData, error) {
		if s.session != nil {
			return data, ErrEditInProgress
		}
		return fn(data)
	})
}

func (s *Service) templateOp(checkpoint bool, fn func(routine.AppData) (routine.AppData, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.data)
	if err != nil {
		return err
	}
	s.updateLocked(checkpoint, func(routine.AppData, overlay.Resolver) routine.AppData { return next })
	return nil
}

// Import replaces the whole document with a backup, after an undo
// checkpoint. Invalid input leaves the document untouched.
func (s *Service) Import(r io.Reader) error {
	data, err := backup.Import(r)
	if err != nil {
		return err
	}
	return s.liveOp(func(routine.AppData) (routine.AppData, error) { return data, nil })
}

// Export writes the whole document as a backup.
func (s *Service) Export(w io.Writer) error {
	return backup.Export(w, s.Snapshot())
}

// BackupFileName names an export made today.
func (s *Service) BackupFileName() string {
	return backup.FileName(s.now())
}

// ImportTemplate adds a template file to the library and returns its id.
func (s *Service) ImportTemplate(r io.Reader) (string, error) {
	t, err := backup.ImportTemplate(r)
	if err != nil {
		return "", err
	}
	s.update(false, func(data routine.AppData, _ overlay.Resolver) routine.AppData {
		list := make([]routine.Template, 0, len(data.Templates)+1)
		list = append(list, data.Templates...)
		data.Templates = append(list, t)
		return data
	})
	return t.ID, nil
}

// ExportTemplate writes one template file and returns its file name.
func (s *Service) ExportTemplate(w io.Writer, id string) (string, error) {
	s.mu.Lock()
	i := routine.FindTemplate(s.data.Templates, id)
	if i < 0 {
		s.mu.Unlock()
		return "", fmt.Errorf("app: export %s: %w", id, templates.ErrNotFound)
	}
	t := s.data.Templates[i].Clone()
	s.mu.Unlock()
	if err := backup.ExportTemplate(w, t); err != nil {
		return "", err
	}
	return backup.TemplateFileName(t.Name), nil
}
