// Package backup reads and writes whole-document backups and template files.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/timeutil"
)

// ErrFormat matches every FormatError.
var ErrFormat = errors.New("backup: invalid format")

// FormatError reports a document that does not have the expected shape.
type FormatError struct {
	Path    string
	Message string
}

func (e *FormatError) Error() string {
	if e.Path == "" || e.Path == "/" {
		return fmt.Sprintf("backup: invalid format: %s", e.Message)
	}
	return fmt.Sprintf("backup: invalid format at %s: %s", e.Path, e.Message)
}

// Is lets errors.Is match ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func decode(r io.Reader, schemaURL string, v any) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("backup: read: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &FormatError{Message: err.Error()}
	}
	if err := validate(schemaURL, doc); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &FormatError{Message: err.Error()}
	}
	return nil
}

// Import decodes a full backup. It needs a blocks array and a days object.
func Import(r io.Reader) (routine.AppData, error) {
	var data routine.AppData
	if err := decode(r, backupSchemaURL, &data); err != nil {
		return routine.AppData{}, err
	}
	return routine.Normalize(data), nil
}

// Export writes data as indented JSON.
func Export(w io.Writer, data routine.AppData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// FileName is the export file name for a backup taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("caddr_backup_%s.json", timeutil.DateKey(now))
}

// ImportTemplate decodes a template file. It needs blocks and a name, and
// always gets a fresh id.
func ImportTemplate(r io.Reader) (routine.Template, error) {
	var t routine.Template
	if err := decode(r, templateSchemaURL, &t); err != nil {
		return routine.Template{}, err
	}
	t.ID = routine.NewID()
	if t.RecurringGoals == nil {
		t.RecurringGoals = []routine.RecurringGoal{}
	}
	holder := routine.Normalize(routine.AppData{Blocks: t.Blocks})
	t.Blocks = holder.Blocks
	return t, nil
}

// ExportTemplate writes t as indented JSON.
func ExportTemplate(w io.Writer, t routine.Template) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

var whitespace = regexp.MustCompile(`\s+`)

// TemplateFileName is the export file name of a template.
func TemplateFileName(name string) string {
	return fmt.Sprintf("caddr_template_%s.json", whitespace.ReplaceAllString(name, "_"))
}
