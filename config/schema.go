package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the core gram configuration.
// It reflects a copy of the Config struct without the Extensions field,
// since extension sections are free-form by design.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Extensions are stripped below, so unknown top-level keys are
		// still allowed by validation (see validator.go).
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	type baseConfig struct {
		Version  string         `yaml:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`
		Grammar  GrammarConfig  `yaml:"grammar" jsonschema:"required"`
		Inputs   InputsConfig   `yaml:"inputs,omitempty"`
		Generate GenerateConfig `yaml:"generate,omitempty"`
		Watch    WatchConfig    `yaml:"watch,omitempty"`
	}

	schema := r.Reflect(&baseConfig{})
	schema.Title = "Gram Configuration"
	schema.Description = "Schema for core gram.yml properties."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
