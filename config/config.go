package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/zalepa/crimestats/motive"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file picked up from the working directory when
// --config is not given.
const DefaultPath = "crimestats.yaml"

// Config holds the settings for one crimestats run.
type Config struct {
	// Input is the JSON dataset to read.
	Input string `yaml:"input"`
	// Output is the HTML report path.
	Output string `yaml:"output"`
	// PDF, when set, also writes a two-page PDF report.
	PDF string `yaml:"pdf,omitempty"`

	Title        string `yaml:"title"`
	StackedTitle string `yaml:"stacked_title"`

	// Categories lists motive slugs in chart order; empty selects all.
	Categories []string `yaml:"categories"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the settings matching the original 2013 report.
func DefaultConfig() *Config {
	return &Config{
		Input:        "crime.json",
		Output:       "CrimeTest.html",
		Title:        "Cyber Crime Statistics-2013",
		StackedTitle: "Cyber Crime Statistics-2013(Stacked)",
		Categories:   motive.CyberCrimeMotives().Slugs(),
		Log:          LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists. A missing file is only an error when
// the caller asked for it explicitly.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return nil, err
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks paths, the category selection and the log level.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if _, err := c.MotiveCategories(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// MotiveCategories resolves the configured slugs.
func (c *Config) MotiveCategories() (motive.Categories, error) {
	return motive.ParseCategories(c.Categories)
}

// LogLevel parses the configured log level; empty means info.
func (c *Config) LogLevel() (zapcore.Level, error) {
	if c.Log.Level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}
