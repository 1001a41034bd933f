package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://gilead/catalog.json"

// catalogSchema describes the catalog file after YAML decoding.
const catalogSchema = `{
  "type": "object",
  "required": ["cards"],
  "additionalProperties": false,
  "properties": {
    "weeks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["number"],
        "additionalProperties": false,
        "properties": {
          "number":  {"type": "integer", "minimum": 1},
          "theme":   {"type": "string"},
          "summary": {"type": "string"}
        }
      }
    },
    "cards": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "question", "answer", "week"],
        "additionalProperties": false,
        "properties": {
          "id":         {"type": "string", "minLength": 1, "pattern": "^\\S+$"},
          "question":   {"type": "string", "minLength": 1},
          "answer":     {"type": "string", "minLength": 1},
          "week":       {"type": "integer", "minimum": 1},
          "tags":       {"type": "array", "items": {"type": "string"}},
          "difficulty": {"enum": ["easy", "medium", "hard"]}
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// getCompiledSchema compiles the catalog schema on first use.
func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(catalogSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
