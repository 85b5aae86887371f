// Package config loads tool configuration from rdlint.toml. The manifest
// is discovered by walking up from the start directory, the way editors
// locate a project root.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"rdlint/internal/rules"
)

// ManifestName is the configuration file the tool looks for.
const ManifestName = "rdlint.toml"

// Lint is the [lint] section.
type Lint struct {
	// MaxFindings caps the number of findings kept per run; 0 keeps the
	// built-in default.
	MaxFindings int `toml:"max_findings"`
	// Jobs is the worker count for directory checks; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
}

// Output is the [output] section.
type Output struct {
	Format string `toml:"format"` // pretty|short|json|sarif|msgpack
	Color  string `toml:"color"`  // auto|on|off
}

// RuleOverride is one [rules.RN] section.
type RuleOverride struct {
	Enabled   *bool  `toml:"enabled"`
	Severity  string `toml:"severity"`
	Threshold int    `toml:"threshold"`
}

// Config is the decoded manifest.
type Config struct {
	Lint   Lint                    `toml:"lint"`
	Output Output                  `toml:"output"`
	Rules  map[string]RuleOverride `toml:"rules"`

	// Path is the manifest location, empty for the built-in default.
	Path string `toml:"-"`
}

// Default returns the configuration used when no manifest exists.
func Default() *Config {
	return &Config{
		Output: Output{Format: "pretty", Color: "auto"},
	}
}

// Find walks up from startDir to locate rdlint.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
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

// Load parses the manifest at path. Unknown keys are an error so typos do
// not silently disable rules.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown configuration keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFromDir finds and loads the manifest governing startDir; the default
// configuration comes back when none exists.
func LoadFromDir(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	switch c.Output.Format {
	case "", "pretty", "short", "json", "sarif", "msgpack":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("unknown color mode %q", c.Output.Color)
	}
	if c.Lint.MaxFindings < 0 {
		return errors.New("lint.max_findings must not be negative")
	}
	if c.Lint.Jobs < 0 {
		return errors.New("lint.jobs must not be negative")
	}
	return nil
}

// RuleConfig materializes the rule settings: the built-in defaults with the
// manifest's [rules.RN] overrides applied.
func (c *Config) RuleConfig() (rules.Config, error) {
	rc := rules.DefaultConfig()
	for id, over := range c.Rules {
		if over.Enabled != nil {
			if err := rc.SetEnabled(id, *over.Enabled); err != nil {
				return rc, err
			}
		}
		if over.Severity != "" {
			if err := rc.SetSeverity(id, over.Severity); err != nil {
				return rc, err
			}
		}
		if over.Threshold != 0 {
			if err := rc.SetThreshold(id, over.Threshold); err != nil {
				return rc, err
			}
		}
	}
	return rc, nil
}
