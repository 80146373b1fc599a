package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/gram/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const basicYAML = `version: "1.0"
grammar:
  path: calc.gram
inputs:
  include:
    - "*.calc"
generate:
  path: gen/rules.go
  package: rules
`

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gram.yml", basicYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "calc.gram", cfg.Grammar.Path)
	assert.Equal(t, []string{"*.calc"}, cfg.Inputs.Include)
	assert.Equal(t, "rules", cfg.Generate.Package)
	assert.Equal(t, dir, cfg.Dir)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gram.toml", `version = "1.0"

[grammar]
path = "calc.gram"
root = "EXPR"

[logging]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "calc.gram", cfg.Grammar.Path)
	assert.Equal(t, "EXPR", cfg.Grammar.Root)

	// Unknown sections land in Extensions for both formats.
	require.Contains(t, cfg.Extensions, "logging")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "gram.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gram.yml", "version: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("GRAM_TEST_GRAMMAR", "from-env.gram")

	dir := t.TempDir()
	path := writeFile(t, dir, "gram.yml", `version: "1.0"
grammar:
  path: ${GRAM_TEST_GRAMMAR}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.gram", cfg.Grammar.Path)
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "gram.yml", basicYAML)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "gram.yml"), found)
}

func TestFindConfigFileNotFound(t *testing.T) {
	_, err := FindConfigFile(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestLoadFromMergesOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gram.yml", basicYAML)
	writeFile(t, dir, "gram.override.yml", `grammar:
  root: EXPR
inputs:
  include:
    - "*.expr"
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	// Overridden fields replace, untouched fields survive.
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "calc.gram", cfg.Grammar.Path)
	assert.Equal(t, "EXPR", cfg.Grammar.Root)
	assert.Equal(t, []string{"*.expr"}, cfg.Inputs.Include)
	assert.Equal(t, "rules", cfg.Generate.Package)
}

func TestPathResolution(t *testing.T) {
	cfg := &Config{
		Grammar:  GrammarConfig{Path: "grammars/calc.gram"},
		Generate: GenerateConfig{Path: "gen/rules.go"},
		Dir:      "/project",
	}

	assert.Equal(t, filepath.Join("/project", "grammars", "calc.gram"), cfg.GrammarPath())
	assert.Equal(t, filepath.Join("/project", "gen", "rules.go"), cfg.GeneratePath())

	cfg.Generate.Path = ""
	assert.Equal(t, "", cfg.GeneratePath())

	cfg.Grammar.Path = "/abs/calc.gram"
	assert.Equal(t, "/abs/calc.gram", cfg.GrammarPath())
}

func TestUnmarshalExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gram.yml", `version: "1.0"
grammar:
  path: calc.gram
logging:
  level: debug
  format:
    preset: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	var logCfg struct {
		Level  string `mapstructure:"level"`
		Format struct {
			Preset string `mapstructure:"preset"`
		} `mapstructure:"format"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.Equal(t, "json", logCfg.Format.Preset)

	// Missing sections are not an error.
	var other struct{}
	assert.NoError(t, cfg.UnmarshalExtension("missing", &other))
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{Version: "1.0", Grammar: GrammarConfig{Path: "calc.gram"}}
	assert.NoError(t, cfg.Validate())

	assert.Error(t, (&Config{Grammar: GrammarConfig{Path: "x"}}).Validate())
	assert.Error(t, (&Config{Version: "1.0"}).Validate())

	cfg.Generate.Path = "gen/rules.go"
	assert.Error(t, cfg.Validate())
	cfg.Generate.Package = "rules"
	assert.NoError(t, cfg.Validate())
}

func TestSchemaValidator(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(map[string]interface{}{
		"version": "1.0",
		"grammar": map[string]interface{}{"path": "calc.gram"},
	}))

	err = v.Validate(map[string]interface{}{"version": "1.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grammar")
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "missing/gram.yml", `version: "1.0"`+"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigValidation))

	path = writeFile(t, dir, "mistyped/gram.yml", `version: "1.0"
grammar:
  path: calc.gram
inputs:
  include: "*.calc"
`)
	_, err = Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigValidation))
}

func TestLoadAllowsExtensionSections(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gram.yml", `version: "1.0"
grammar:
  path: calc.gram
editor:
  tabstop: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Contains(t, cfg.Extensions, "editor")
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "Gram Configuration", schema["title"])

	required, ok := schema["required"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, required, "version")
	assert.Contains(t, required, "grammar")

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "inputs")
	assert.Contains(t, props, "watch")
}
