package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"fragment-generator/internal/csharp"
	"fragment-generator/internal/gen"
	"fragment-generator/internal/model"
	"fragment-generator/internal/pipeline"
	"fragment-generator/internal/scan"
)

// FileName is the name of the project configuration file.
const FileName = "fragment-generator.toml"

// Config is the decoded project configuration.
type Config struct {
	Contracts model.Contracts `toml:"contracts"`
	Markers   Markers         `toml:"markers"`
	Generate  Generate        `toml:"generate"`
	Sources   Sources         `toml:"sources"`
	CSharp    CSharp          `toml:"csharp"`

	// Path is the file the configuration was read from; empty for defaults.
	Path string `toml:"-"`
}

// Markers lists the attribute names the C# frontend treats as markers.
type Markers struct {
	ExtensionPoint []string `toml:"extension_point"`
	Fragment       []string `toml:"fragment"`
}

// Generate holds the emission settings.
type Generate struct {
	DefaultProfile string                `toml:"default_profile"`
	ScopeMethod    string                `toml:"scope_method"`
	FileSuffix     string                `toml:"file_suffix"`
	OutputDir      string                `toml:"output_dir"`
	Unresolved     scan.UnresolvedPolicy `toml:"unresolved"`
}

// Sources names the inputs of a run.
type Sources struct {
	// Roots are directories scanned for C# files.
	Roots []string `toml:"roots"`
	// Manifests are declaration manifests (YAML, TOML or msgpack).
	Manifests []string `toml:"manifests"`
}

// CSharp holds the C# frontend settings.
type CSharp struct {
	// ImplicitUsings are namespaces imported into every source file, like the
	// SDK's ImplicitUsings. Set to an empty list when the project disables them.
	ImplicitUsings []string `toml:"implicit_usings"`
}

// Default returns the built-in configuration.
func Default() *Config {
	gcfg := gen.DefaultGeneratorConfig()
	fopts := csharp.DefaultOptions()

	return &Config{
		Contracts: model.DefaultContracts(),
		Markers: Markers{
			ExtensionPoint: fopts.ExtensionPointAttributes,
			Fragment:       fopts.FragmentAttributes,
		},
		Generate: Generate{
			DefaultProfile: model.DefaultProfile,
			ScopeMethod:    gcfg.ScopeMethod,
			FileSuffix:     gcfg.FileSuffix,
			OutputDir:      gcfg.OutputDir,
			Unresolved:     scan.PolicyDiagnose,
		},
		CSharp: CSharp{
			ImplicitUsings: fopts.ImplicitUsings,
		},
	}
}

// Find looks for FileName in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return "", false, nil
}

// Discover finds and loads the configuration for startDir, falling back to
// Default when no file exists.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}

	if !ok {
		return Default(), nil
	}

	return Load(path)
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg.Path = abs

	return cfg, nil
}

// Parse decodes TOML data over Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	var errs []error

	required := []struct {
		key string
		val string
	}{
		{"contracts.configuration_builder", c.Contracts.ConfigurationBuilder},
		{"contracts.profile_builder", c.Contracts.ProfileBuilder},
		{"contracts.service_provider", c.Contracts.ServiceProvider},
		{"generate.scope_method", c.Generate.ScopeMethod},
		{"generate.file_suffix", c.Generate.FileSuffix},
	}

	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", r.key))
		}
	}

	if len(c.Markers.ExtensionPoint) == 0 {
		errs = append(errs, errors.New("markers.extension_point must name at least one attribute"))
	}

	if len(c.Markers.Fragment) == 0 {
		errs = append(errs, errors.New("markers.fragment must name at least one attribute"))
	}

	return errors.Join(errs...)
}

// Dir is the directory relative paths are resolved against.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}

	return filepath.Dir(c.Path)
}

// Resolve makes a configured path absolute relative to Dir.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(c.Dir(), path)
}

// Pipeline converts the configuration into a pipeline configuration.
func (c *Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		DefaultProfile: c.Generate.DefaultProfile,
		Unresolved:     c.Generate.Unresolved,
		Generator: gen.GeneratorConfig{
			Contracts:   c.Contracts,
			ScopeMethod: c.Generate.ScopeMethod,
			FileSuffix:  c.Generate.FileSuffix,
			OutputDir:   c.Resolve(c.Generate.OutputDir),
		},
	}
}
