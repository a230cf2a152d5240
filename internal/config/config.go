// Package config handles reading and writing ~/.freightdesk/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version   int             `yaml:"version"`
	Assistant AssistantConfig `yaml:"assistant"`
	Timer     TimerConfig     `yaml:"timer"`
}

// AssistantConfig controls prompt construction for the chat assistant.
type AssistantConfig struct {
	HistoryWindow   int    `yaml:"history_window"`    // trailing messages replayed to the model
	MaxContentChars int    `yaml:"max_content_chars"` // attached-file truncation limit
	DefaultFunction string `yaml:"default_function"`
}

// TimerConfig controls the task timer.
type TimerConfig struct {
	TickSeconds int `yaml:"tick_seconds"` // status refresh interval in interactive mode
}

const configFile = "config.yaml"

// Dir returns the freightdesk data directory, honoring FREIGHTDESK_HOME.
func Dir() (string, error) {
	if dir := os.Getenv("FREIGHTDESK_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".freightdesk"), nil
}

// Read loads config.yaml from dir. A missing file returns defaults; a
// malformed file is an error.
func Read(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Write stores cfg as config.yaml in dir, creating dir if needed.
func Write(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, configFile), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Version: 1,
		Assistant: AssistantConfig{
			HistoryWindow:   10,
			MaxContentChars: 10000,
			DefaultFunction: "general_chat",
		},
		Timer: TimerConfig{
			TickSeconds: 1,
		},
	}
}

// normalize replaces zero or negative values with defaults so a partial
// config file never disables prompt limits.
func (c *Config) normalize() {
	def := Default()
	if c.Assistant.HistoryWindow <= 0 {
		c.Assistant.HistoryWindow = def.Assistant.HistoryWindow
	}
	if c.Assistant.MaxContentChars <= 0 {
		c.Assistant.MaxContentChars = def.Assistant.MaxContentChars
	}
	if c.Assistant.DefaultFunction == "" {
		c.Assistant.DefaultFunction = def.Assistant.DefaultFunction
	}
	if c.Timer.TickSeconds <= 0 {
		c.Timer.TickSeconds = def.Timer.TickSeconds
	}
}
