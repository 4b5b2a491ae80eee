package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application defaults. Command-line flags override it.
type Config struct {
	ArchivePath   string        `yaml:"archive"`
	OutputDir     string        `yaml:"output_dir"`
	Debounce      time.Duration `yaml:"debounce"`
	LogLevel      string        `yaml:"log_level"`
	DefaultFormat string        `yaml:"default_format"`
	ResultLimit   int           `yaml:"result_limit"`
	PDFFont       string        `yaml:"pdf_font"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	archive := ".convo-archive"
	if home, err := os.UserHomeDir(); err == nil {
		archive = filepath.Join(home, ".convo-archive")
	}
	return Config{
		ArchivePath:   archive,
		OutputDir:     "./exports",
		Debounce:      DefaultDebounce,
		LogLevel:      "info",
		DefaultFormat: string(FormatJSON),
		ResultLimit:   20,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks config values
func (c Config) Validate() error {
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative")
	}
	if c.ResultLimit < 0 {
		return fmt.Errorf("result_limit must not be negative")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DefaultFormat != "" {
		if _, err := ParseExportFormat(c.DefaultFormat); err != nil {
			return err
		}
	}
	return nil
}
