package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/csvview/table"
)

// Config holds viewer settings loaded from the YAML config file.
// Command-line flags override these; these override the defaults.
type Config struct {
	Delimiter string `yaml:"delimiter"`
	ChunkSize int    `yaml:"chunk_size"`
	Header    string `yaml:"header"` // auto, on or off
	Watch     bool   `yaml:"watch"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Delimiter: ",",
		ChunkSize: table.DefaultChunkSize,
		Header:    "auto",
	}
}

// Load reads the config file at path. An empty path checks the
// conventional location (~/.config/csvview/config.yaml); a missing
// file there is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "csvview", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	if _, err := c.HeaderMode(); err != nil {
		return err
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	return nil
}

// DelimiterRune returns the delimiter as a single rune.
func (c Config) DelimiterRune() (rune, error) {
	if c.Delimiter == "" {
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	return r, nil
}

// HeaderMode maps the header setting to a parser mode.
func (c Config) HeaderMode() (table.HeaderMode, error) {
	switch c.Header {
	case "", "auto":
		return table.HeaderAuto, nil
	case "on":
		return table.HeaderOn, nil
	case "off":
		return table.HeaderOff, nil
	default:
		return 0, fmt.Errorf("header must be auto, on or off, got %q", c.Header)
	}
}
