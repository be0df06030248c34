package backup

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const backupSchemaURL = "caddr://schema/backup.json"

const backupSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["blocks", "days"],
  "properties": {
    "blocks": {"type": "array", "items": {"type": "object"}},
    "days": {"type": "object"},
    "templates": {"type": "array"},
    "recurringGoals": {"type": "array"},
    "inboxTasks": {"type": "array"},
    "userProfile": {
      "type": "object",
      "properties": {"xp": {"type": "number"}, "level": {"type": "number"}}
    }
  }
}`

const templateSchemaURL = "caddr://schema/template.json"

const templateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["blocks", "name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "blocks": {"type": "array", "items": {"type": "object"}},
    "recurringGoals": {"type": "array"},
    "templateGoal": {"type": "string"}
  }
}`

var (
	compileOnce    sync.Once
	compiled       map[string]*jsonschema.Schema
	compileFailure error
)

func schemaFor(url string) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = map[string]*jsonschema.Schema{}
		for u, src := range map[string]string{backupSchemaURL: backupSchema, templateSchemaURL: templateSchema} {
			compiler := jsonschema.NewCompiler()
			if err := compiler.AddResource(u, strings.NewReader(src)); err != nil {
				compileFailure = fmt.Errorf("add schema %s: %w", u, err)
				return
			}
			s, err := compiler.Compile(u)
			if err != nil {
				compileFailure = fmt.Errorf("compile schema %s: %w", u, err)
				return
			}
			compiled[u] = s
		}
	})
	if compileFailure != nil {
		return nil, compileFailure
	}
	return compiled[url], nil
}

// validate checks doc, a decoded JSON value, against the schema at url.
func validate(url string, doc any) error {
	schema, err := schemaFor(url)
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return toFormatError(err)
	}
	return nil
}

func toFormatError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &FormatError{Message: err.Error()}
	}
	leaf := firstLeaf(ve)
	return &FormatError{Path: leaf.InstanceLocation, Message: leaf.Message}
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
