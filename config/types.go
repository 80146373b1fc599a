// Package config loads gram project configuration from gram.yml (or
// gram.toml), with environment variable expansion, local override files,
// and JSON-Schema validation.
package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// GrammarConfig points at the project's grammar file.
type GrammarConfig struct {
	// Path is the grammar file path, relative to the config file.
	Path string `yaml:"path" toml:"path" json:"path" mapstructure:"path" jsonschema:"required,description=Path to the grammar file"`
	// Root overrides the root symbol (default ROOT).
	Root string `yaml:"root,omitempty" toml:"root,omitempty" json:"root,omitempty" mapstructure:"root" jsonschema:"description=Root non-terminal symbol (default ROOT)"`
}

// InputsConfig selects the files `gram parse` runs on when no explicit
// arguments are given. Patterns use Docker-style matching, and exclusions
// are written as leading-! patterns in Exclude.
type InputsConfig struct {
	Include []string `yaml:"include,omitempty" toml:"include,omitempty" json:"include,omitempty" mapstructure:"include" jsonschema:"description=Glob patterns of files to parse"`
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty" json:"exclude,omitempty" mapstructure:"exclude" jsonschema:"description=Glob patterns of files to skip"`
}

// GenerateConfig controls `gram generate` output.
type GenerateConfig struct {
	Path    string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty" mapstructure:"path" jsonschema:"description=Output path for the generated Go rules file"`
	Package string `yaml:"package,omitempty" toml:"package,omitempty" json:"package,omitempty" mapstructure:"package" jsonschema:"description=Package name of the generated file"`
}

// WatchConfig controls `gram watch`.
type WatchConfig struct {
	// Debounce is how long to wait after the last write before
	// re-checking, as a Go duration string.
	Debounce string `yaml:"debounce,omitempty" toml:"debounce,omitempty" json:"debounce,omitempty" mapstructure:"debounce" jsonschema:"description=Debounce interval for file watching (e.g. 200ms)"`
}

// Config is the root of a gram.yml project file. Unknown top-level keys
// are collected into Extensions so subsystems (logging, editor tooling)
// can carry their own configuration without this package knowing about it.
type Config struct {
	Version  string         `yaml:"version" toml:"version" mapstructure:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`
	Grammar  GrammarConfig  `yaml:"grammar" toml:"grammar" mapstructure:"grammar" jsonschema:"required"`
	Inputs   InputsConfig   `yaml:"inputs,omitempty" toml:"inputs,omitempty" mapstructure:"inputs"`
	Generate GenerateConfig `yaml:"generate,omitempty" toml:"generate,omitempty" mapstructure:"generate"`
	Watch    WatchConfig    `yaml:"watch,omitempty" toml:"watch,omitempty" mapstructure:"watch"`

	Extensions map[string]interface{} `yaml:",inline" toml:"-" mapstructure:",remain" jsonschema:"-"`

	// Dir is the directory containing the config file, set by the loader.
	// Relative paths in the config resolve against it.
	Dir string `yaml:"-" toml:"-" mapstructure:"-" jsonschema:"-"`
}

// UnmarshalExtension decodes a named extension section into out.
// A missing section leaves out untouched.
func (c *Config) UnmarshalExtension(name string, out interface{}) error {
	raw, ok := c.Extensions[name]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("extension %q: %w", name, err)
	}
	return nil
}

// Validate performs basic semantic checks beyond the JSON Schema.
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if c.Grammar.Path == "" {
		return fmt.Errorf("grammar.path is required")
	}
	if c.Generate.Path != "" && c.Generate.Package == "" {
		return fmt.Errorf("generate.package is required when generate.path is set")
	}
	return nil
}
