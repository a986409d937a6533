package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://aprende/course.json"

// courseSchema describes the course document. Question bodies are only
// checked for an id and a type tag; providers validate the rest.
const courseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["formatVersion", "id", "title", "blocks"],
  "properties": {
    "formatVersion": {"type": "string", "pattern": "^v[0-9]+(\\.[0-9]+){0,2}"},
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "blocks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "type", "questions"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "type": {"type": "string", "minLength": 1},
          "questions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "type"],
              "properties": {
                "id": {"type": ["string", "integer"]},
                "type": {"type": "string", "minLength": 1}
              }
            }
          }
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

func courseValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(courseSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile: %w", compileErr)
		}
	})
	return compiled, compileErr
}
