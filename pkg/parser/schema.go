package parser

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "analysis-result.schema.json"

// analysisSchema is the contract every model answer has to meet. Extra
// properties are tolerated and dropped on decode.
const analysisSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["conditions", "recommendations", "disclaimer", "emergency_alert"],
  "properties": {
    "conditions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "explanation"],
        "properties": {
          "name": {"type": "string"},
          "explanation": {"type": "string"}
        }
      }
    },
    "recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["action", "reason"],
        "properties": {
          "action": {"type": "string"},
          "reason": {"type": "string"}
        }
      }
    },
    "disclaimer": {"type": "string"},
    "emergency_alert": {"type": "boolean"}
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(analysisSchema))
	if err != nil {
		panic(fmt.Sprintf("parse analysis schema: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		panic(fmt.Sprintf("add analysis schema: %v", err))
	}
	return c.MustCompile(schemaURL)
}

// knownKeys are the property names the typed decode binds to.
var knownKeys = []string{
	"conditions", "recommendations", "disclaimer", "emergency_alert",
	"name", "explanation", "action", "reason",
}

// validate checks that payload is a single JSON value matching the schema.
func validate(payload string) error {
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(payload))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledSchema.Validate(inst); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return checkKeyCase(inst)
}

// checkKeyCase rejects keys that differ from a known property only by case.
// encoding/json binds those to the same field, so they would overwrite the
// value the schema just validated.
func checkKeyCase(v any) error {
	switch v := v.(type) {
	case map[string]any:
		for key, child := range v {
			for _, known := range knownKeys {
				if key != known && strings.EqualFold(key, known) {
					return fmt.Errorf("property %q shadows %q", key, known)
				}
			}
			if err := checkKeyCase(child); err != nil {
				return err
			}
		}
	case []any:
		for _, child := range v {
			if err := checkKeyCase(child); err != nil {
				return err
			}
		}
	}
	return nil
}
