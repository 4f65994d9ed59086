// Package config loads the optional contactlist.yaml file. Every field has a
// default, so the tool runs with no file at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leeovery/contactlist/internal/contact"
)

// FileName is the config file looked up in the working directory.
const FileName = "contactlist.yaml"

// Config holds the resolved settings for one invocation.
type Config struct {
	Column string `yaml:"column"`
	Dedupe Dedupe `yaml:"dedupe"`
	Merge  Merge  `yaml:"merge"`
}

// Dedupe configures the dedupe and count commands.
type Dedupe struct {
	Pattern string `yaml:"pattern"`
}

// Merge configures the merge command.
type Merge struct {
	Inputs []string `yaml:"inputs"`
	Output string   `yaml:"output"`
	XLSX   string   `yaml:"xlsx"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Column: contact.EmailColumn,
		Dedupe: Dedupe{Pattern: "ccs-2025-*.csv"},
		Merge: Merge{
			Inputs: []string{
				"ccs-3.csv",
				"ccs-2025-1.csv",
				"ccs-2025-2.csv",
				"ccs-2025-3.csv",
				"ccs-2025-4.csv",
				"ccs-2025-5.csv",
				"test.csv",
			},
			Output: "master-2025.csv",
		},
	}
}

// Load reads the config at path over the defaults. When path is empty,
// contactlist.yaml in dir is used if present; its absence is not an error.
// An explicitly named file must exist.
func Load(dir, path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	cfg.apply(file)
	return cfg, nil
}

// apply overlays the non-zero fields of file onto c.
func (c *Config) apply(file Config) {
	if file.Column != "" {
		c.Column = file.Column
	}
	if file.Dedupe.Pattern != "" {
		c.Dedupe.Pattern = file.Dedupe.Pattern
	}
	if len(file.Merge.Inputs) > 0 {
		c.Merge.Inputs = file.Merge.Inputs
	}
	if file.Merge.Output != "" {
		c.Merge.Output = file.Merge.Output
	}
	if file.Merge.XLSX != "" {
		c.Merge.XLSX = file.Merge.XLSX
	}
}
