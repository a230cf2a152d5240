package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https://api.deepseek.com", cfg.Endpoint)
	assert.Equal(t, "deepseek-chat", cfg.Model)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.InDelta(t, 0.3, cfg.Tasks[TaskAssistant].Temperature, 1e-9)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FREIGHTDESK_LLM_ENDPOINT", "http://localhost:9999")
	t.Setenv("FREIGHTDESK_LLM_API_KEY", "sk-test")
	t.Setenv("FREIGHTDESK_LLM_MODEL", "deepseek-reasoner")
	t.Setenv("FREIGHTDESK_LLM_TIMEOUT_MS", "15000")
	t.Setenv("FREIGHTDESK_LLM_MAX_RETRIES", "2")
	t.Setenv("FREIGHTDESK_LLM_LOG_CALLS", "true")

	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:9999", cfg.Endpoint)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "deepseek-reasoner", cfg.Model)
	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfig_DeepseekKeyFallback(t *testing.T) {
	t.Setenv("FREIGHTDESK_LLM_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY", "sk-fallback")

	cfg := LoadConfig()
	assert.Equal(t, "sk-fallback", cfg.APIKey)
}

func TestLoadConfig_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("FREIGHTDESK_LLM_TIMEOUT_MS", "not-a-number")
	t.Setenv("FREIGHTDESK_LLM_MAX_RETRIES", "-1")

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig().TimeoutMs, cfg.TimeoutMs)
	assert.Equal(t, DefaultConfig().MaxRetries, cfg.MaxRetries)
}

func TestTaskTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 120000, cfg.TaskTimeout(TaskFileAnalysis), "task-specific override")
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskAssistant), "global fallback")
}
