package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("brewrush.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// ValidateDocument checks a raw YAML tuning document against the schema.
// The YAML is converted to its JSON form first so numbers and maps have
// the types the validator expects.
func ValidateDocument(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	if doc == nil {
		return nil // empty file, nothing to override
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return fmt.Errorf("converting yaml: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("invalid tuning: %w", err)
	}
	return nil
}
