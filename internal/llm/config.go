package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskAssistant    TaskType = "assistant"
	TaskFileAnalysis TaskType = "file_analysis"
)

// TaskConfig holds per-task sampling and timeout parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the LLM subsystem.
type Config struct {
	Endpoint   string
	APIKey     string
	Model      string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with Deepseek-compatible defaults. The low
// temperature favors deterministic replies.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "https://api.deepseek.com",
		Model:      "deepseek-chat",
		TimeoutMs:  60000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskAssistant:    {Temperature: 0.3},
			TaskFileAnalysis: {Temperature: 0.3, TimeoutMs: 120000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("FREIGHTDESK_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("FREIGHTDESK_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("FREIGHTDESK_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("FREIGHTDESK_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("FREIGHTDESK_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("FREIGHTDESK_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
