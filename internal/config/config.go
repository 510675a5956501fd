// Package config loads the weakwrap project configuration.
//
// The configuration lives next to the module's go.mod, as weakwrap.yaml or
// weakwrap.toml. A project without one runs with defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config file names, in lookup order.
const (
	YAMLName = "weakwrap.yaml"
	TOMLName = "weakwrap.toml"
)

// DefaultPackages is the package pattern used when none is configured.
const DefaultPackages = "./..."

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config is the project configuration.
type Config struct {
	// Packages are go/packages patterns searched for annotated types.
	Packages []string `yaml:"packages" toml:"packages"`
	// Manifests are type manifest files (YAML or JSON).
	Manifests []string `yaml:"manifests" toml:"manifests"`
	// Output is the root directory of generated Java sources.
	Output string `yaml:"output" toml:"output"`
	// Tags are build tags used while loading packages.
	Tags []string `yaml:"tags" toml:"tags"`
	// Jobs limits parallel generation. Zero means GOMAXPROCS.
	Jobs int `yaml:"jobs" toml:"jobs"`
	// Header replaces the generated-code header line.
	Header string `yaml:"header" toml:"header"`

	// Dir is the directory relative paths are resolved against.
	Dir string `yaml:"-" toml:"-"`
	// Path is the loaded file, empty when defaults are used.
	Path string `yaml:"-" toml:"-"`
	// ModulePath is the module declared by go.mod, if one was found.
	ModulePath string `yaml:"-" toml:"-"`
}

// Default returns the configuration used when no file exists.
func Default(dir string) *Config {
	cfg := &Config{Dir: dir}
	cfg.applyDefaults()

	return cfg
}

// Load parses the config file at path. The format follows the extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse error in %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse error in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	cfg.Path = abs
	cfg.Dir = filepath.Dir(abs)
	cfg.applyDefaults()

	if cfg.Jobs < 0 {
		return nil, fmt.Errorf("%s: jobs must not be negative", path)
	}

	return &cfg, nil
}

// Find locates the module root above startDir and loads the config file
// next to its go.mod. Without a go.mod, startDir is the root. Without a
// config file the defaults are returned.
func Find(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	modulePath := ""

	if goMod, err := FindGoMod(dir); err == nil {
		dir = filepath.Dir(goMod)

		modulePath, err = ModulePath(goMod)
		if err != nil {
			return nil, err
		}
	}

	cfg := Default(dir)

	for _, name := range []string{YAMLName, TOMLName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}

		break
	}

	cfg.ModulePath = modulePath

	return cfg, nil
}

// Resolve returns p relative to the config directory unless it is absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(c.Dir, p)
}

// ManifestPaths returns the manifest files resolved against Dir.
func (c *Config) ManifestPaths() []string {
	paths := make([]string, len(c.Manifests))
	for i, m := range c.Manifests {
		paths[i] = c.Resolve(m)
	}

	return paths
}

// EffectiveJobs returns the parallelism to use.
func (c *Config) EffectiveJobs() int {
	if c.Jobs > 0 {
		return c.Jobs
	}

	return runtime.GOMAXPROCS(0)
}

// PackagePatterns returns the configured patterns. A project naming neither
// packages nor manifests scans DefaultPackages.
func (c *Config) PackagePatterns() []string {
	if len(c.Packages) == 0 && len(c.Manifests) == 0 {
		return []string{DefaultPackages}
	}

	return c.Packages
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = "."
	}
}
