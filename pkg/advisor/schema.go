package advisor

import (
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	adviceSchemaURL  = "caddr://advisor/advice.json"
	reviewSchemaURL  = "caddr://advisor/review.json"
	outlineSchemaURL = "caddr://advisor/outline.json"
)

var schemaSources = map[string]string{
	adviceSchemaURL: `{
  "type": "object",
  "required": ["advice", "powerTask", "motivation"],
  "properties": {
    "advice": {"type": "string"},
    "powerTask": {"type": "string"},
    "motivation": {"type": "string"}
  }
}`,
	reviewSchemaURL: `{
  "type": "object",
  "required": ["feedback", "focusTomorrow"],
  "properties": {
    "feedback": {"type": "string"},
    "focusTomorrow": {"type": "string"}
  }
}`,
	outlineSchemaURL: `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "tasks"],
    "properties": {
      "title": {"type": "string"},
      "tasks": {"type": "array", "items": {"type": "string"}}
    }
  }
}`,
}

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func schemaFor(url string) (*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		schemas = make(map[string]*jsonschema.Schema, len(schemaSources))
		compiler := jsonschema.NewCompiler()
		for u, src := range schemaSources {
			if err := compiler.AddResource(u, strings.NewReader(src)); err != nil {
				schemasErr = fmt.Errorf("add schema %s: %w", u, err)
				return
			}
		}
		for u := range schemaSources {
			s, err := compiler.Compile(u)
			if err != nil {
				schemasErr = fmt.Errorf("compile schema %s: %w", u, err)
				return
			}
			schemas[u] = s
		}
	})
	if schemasErr != nil {
		return nil, schemasErr
	}
	return schemas[url], nil
}

// schemaDoc returns the raw schema text sent alongside a prompt.
func schemaDoc(url string) string {
	return schemaSources[url]
}
