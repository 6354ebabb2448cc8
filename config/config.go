// Package config loads benchmark settings from an optional ctxbench.yml
// file in the working directory, layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/marsdev/ctxbench/tokenizer"
)

// FileName is the optional per-directory configuration file.
const FileName = "ctxbench.yml"

// DefaultTargetDir is the benchmark target used when neither the config
// file nor the command line names one.
const DefaultTargetDir = "/Users/mars/dev/ruoyi"

// Config holds all benchmark settings.
type Config struct {
	Target    string          `yaml:"target"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	History   HistoryConfig   `yaml:"history"`
	Report    ReportConfig    `yaml:"report"`
}

// TokenizerConfig selects the token counting backend.
type TokenizerConfig struct {
	// Encoding names the tiktoken encoding to load, e.g. cl100k_base.
	Encoding string `yaml:"encoding"`
}

// HistoryConfig controls local run recording.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
	// Dir is the base directory that holds the .ctxbench state dir.
	Dir string `yaml:"dir"`
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	// Plain forces the pipe-delimited table even on a terminal.
	Plain bool `yaml:"plain"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Target:    DefaultTargetDir,
		Tokenizer: TokenizerConfig{Encoding: tokenizer.DefaultEncoding},
		History:   HistoryConfig{Enabled: true, Dir: "."},
		Report:    ReportConfig{Plain: false},
	}
}

// Load reads ctxbench.yml from dir, layered over Default. A missing
// file is not an error; the defaults are returned unchanged.
func Load(dir string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", FileName, err)
	}
	return cfg, nil
}
