package problemgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// MaxSchemaDifficulty is the embedding schema's hard difficulty cap. Finals
// request difficulties up to 20, so their content is reported invalid here;
// the finding is observed, not enforced.
const MaxSchemaDifficulty = 10

// contentSchema is the JSON schema generated content must satisfy.
var contentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question":      map[string]any{"type": "string", "minLength": 1},
		"correctAnswer": map[string]any{"type": "string", "minLength": 1},
		"distractors": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"explanation": map[string]any{"type": "string"},
		"hints": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"difficulty": map[string]any{
			"type":    "number",
			"minimum": 1,
			"maximum": MaxSchemaDifficulty,
		},
		"misconceptionTag": map[string]any{"type": "string"},
	},
	"required": []any{"question", "correctAnswer", "hints", "difficulty"},
}

// compiledContentSchema compiles contentSchema once per process.
var compiledContentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value (any), not Go maps
	// with typed numbers, so round-trip through encoding/json.
	raw, err := json.Marshal(contentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal content schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse content schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://generated-content.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
})

// StructuralValidator checks content against the content JSON schema:
// non-empty question and answer, hints present, difficulty within [1, 10].
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c Content) *ValidationError {
	schema, err := compiledContentSchema()
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("marshal content: %v", err)}
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("parse content: %v", err)}
	}

	if err := schema.Validate(doc); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	return nil
}
