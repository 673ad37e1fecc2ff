// Package config loads the code.yml project file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the project file looked up when --config is not given.
const DefaultFile = "code.yml"

// Config is the parsed project file.
type Config struct {
	// Entry is the program `code run` executes when no file is given.
	Entry string `yaml:"entry"`
	// MaxDepth bounds block and expression nesting in the parser.
	MaxDepth int `yaml:"max_depth"`
	// History is the REPL history file. Empty disables history.
	History string `yaml:"history"`
	Prompt  string `yaml:"prompt"`

	// Path is where the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Entry:    "src/hello.code",
		MaxDepth: 256,
		History:  ".code_history",
		Prompt:   "code> ",
	}
}

// Load reads path over the defaults. A missing file is not an error and
// yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	if err := decode(file, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// decode fills cfg from r. Unknown keys are rejected; an empty document
// leaves cfg untouched.
func decode(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}
