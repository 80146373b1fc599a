package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/gram/errors"
	"github.com/grovetools/gram/util/pathutil"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configFileNames are tried in order inside each directory.
var configFileNames = []string{"gram.yml", "gram.yaml", "gram.toml"}

// overrideFileNames are merged over the project config when present.
var overrideFileNames = []string{"gram.override.yml", "gram.override.yaml"}

// Load reads, schema-validates, and parses a single config file without
// override merging.
func Load(path string) (*Config, error) {
	return load(path, false)
}

// load reads one config file. Override files are loaded as partial
// documents: they skip schema validation since required keys like version
// come from the base config they are merged over.
func load(path string, partial bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := parseConfig(path, data, partial)
	if err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// LoadDefault finds and loads the configuration starting from the current
// working directory.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom finds the nearest config file at or above startDir, loads it,
// and merges any gram.override.yml in the same directory over it.
func LoadFrom(startDir string) (*Config, error) {
	path, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for _, name := range overrideFileNames {
		overridePath := filepath.Join(dir, name)
		if _, err := os.Stat(overridePath); err != nil {
			continue
		}
		override, err := load(overridePath, true)
		if err != nil {
			return nil, err
		}
		cfg = mergeConfigs(cfg, override)
	}

	cfg.Dir = dir
	return cfg, nil
}

// FindConfigFile walks up from startDir until it finds a config file.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(configFileNames[0])
		}
		dir = parent
	}
}

// GrammarPath resolves the grammar file path against the config directory.
func (c *Config) GrammarPath() string {
	return c.resolve(c.Grammar.Path)
}

// GeneratePath resolves the generate output path against the config
// directory, or returns "" if generation is not configured.
func (c *Config) GeneratePath() string {
	if c.Generate.Path == "" {
		return ""
	}
	return c.resolve(c.Generate.Path)
}

func (c *Config) resolve(path string) string {
	if expanded, err := pathutil.Expand(path); err == nil {
		path = expanded
	}
	if path == "" || filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

func parseConfig(path string, data []byte, partial bool) (*Config, error) {
	expanded := expandEnvVars(string(data))
	isTOML := strings.HasSuffix(path, ".toml")

	// Decode to a generic document first so schema validation sees the
	// file as written, before struct decoding zeroes missing fields.
	var raw map[string]interface{}
	if isTOML {
		if err := toml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file").
				WithDetail("path", path)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file").
				WithDetail("path", path)
		}
	}

	if !partial {
		if err := validateSchema(raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "config does not match schema").
				WithDetail("path", path)
		}
	}

	var cfg Config
	if isTOML {
		// TOML has no equivalent of yaml's inline maps, so split known
		// keys from extensions with mapstructure.
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:  &cfg,
			TagName: "mapstructure",
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to build config decoder")
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode config file").
				WithDetail("path", path)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file").
				WithDetail("path", path)
		}
	}

	return &cfg, nil
}

// expandEnvVars substitutes ${VAR} references with environment values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRegex.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

// mergeConfigs overlays override onto base. Scalar fields are replaced
// when set in the override; slices are replaced wholesale; extension maps
// merge per key.
func mergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.Version != "" {
		merged.Version = override.Version
	}
	if override.Grammar.Path != "" {
		merged.Grammar.Path = override.Grammar.Path
	}
	if override.Grammar.Root != "" {
		merged.Grammar.Root = override.Grammar.Root
	}
	if len(override.Inputs.Include) > 0 {
		merged.Inputs.Include = override.Inputs.Include
	}
	if len(override.Inputs.Exclude) > 0 {
		merged.Inputs.Exclude = override.Inputs.Exclude
	}
	if override.Generate.Path != "" {
		merged.Generate.Path = override.Generate.Path
	}
	if override.Generate.Package != "" {
		merged.Generate.Package = override.Generate.Package
	}
	if override.Watch.Debounce != "" {
		merged.Watch.Debounce = override.Watch.Debounce
	}

	if len(override.Extensions) > 0 {
		if merged.Extensions == nil {
			merged.Extensions = map[string]interface{}{}
		} else {
			copied := make(map[string]interface{}, len(merged.Extensions))
			for k, v := range merged.Extensions {
				copied[k] = v
			}
			merged.Extensions = copied
		}
		for k, v := range override.Extensions {
			merged.Extensions[k] = v
		}
	}

	return &merged
}
