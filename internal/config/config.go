// Package config loads the CLI's .efmt.yaml (C12), per SPEC_FULL.md
// §4.13/§6.7: an optional width override plus include/exclude glob
// patterns consulted by the CLI's directory-mode file discovery.
package config

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the decoded shape of .efmt.yaml.
type Config struct {
	Width   int      `yaml:"width"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// Default returns the configuration used when no .efmt.yaml is found.
func Default() *Config {
	return &Config{Width: 100, Include: []string{"**/*.erl"}}
}

// Load reads and decodes the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if cfg.Width <= 0 {
		cfg.Width = 100
	}
	return cfg, nil
}

// Discover walks upward from dir looking for a .efmt.yaml, returning
// Default() if none is found anywhere up to the filesystem root.
func Discover(dir string) (*Config, error) {
	d, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(err, "resolving config search directory")
	}
	for {
		candidate := filepath.Join(d, ".efmt.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		parent := filepath.Dir(d)
		if parent == d {
			return Default(), nil
		}
		d = parent
	}
}

// Matches reports whether rel (a slash-separated path relative to the
// discovery root) should be formatted: included by at least one Include
// pattern (or Include is empty, meaning "everything") and excluded by
// none of the Exclude patterns.
func (c *Config) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range c.Exclude {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return false
		}
	}
	if len(c.Include) == 0 {
		return true
	}
	for _, pat := range c.Include {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}
