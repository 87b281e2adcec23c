package rewrite

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/toolbelt/belt/indent"
)

// Config describes an indentation style and which files it applies to.
type Config struct {
	IndentUnit string   `toml:"indent_unit"`
	TabWidth   int      `toml:"tab_width"`
	Include    []string `toml:"include"`
	Exclude    []string `toml:"exclude"`
	Recursive  bool     `toml:"recursive"`
}

// Default returns the configuration used when no file overrides it: one tab
// per level at the standard tab width, applied recursively to everything.
func Default() Config {
	return Config{
		IndentUnit: indent.DefaultIndentUnit,
		TabWidth:   indent.DefaultTabWidth,
		Recursive:  true,
	}
}

// Load parses and validates a TOML configuration file. A missing file is not
// an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the rewriter cannot work
// with.
func (c Config) Validate() error {
	if c.TabWidth < 1 {
		return fmt.Errorf("tab_width %d: %w", c.TabWidth, indent.ErrInvalidTabWidth)
	}
	return nil
}
