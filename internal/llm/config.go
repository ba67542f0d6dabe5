package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskInsights TaskType = "insights"
	TaskPreview  TaskType = "preview"
)

// TaskConfig holds per-task LLM parameters. Sampling temperature is not
// configurable; callers set it on each GenerateRequest.
type TaskConfig struct {
	TimeoutMs int `yaml:"timeout_ms"` // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	APIKey    string                  `yaml:"-"`
	LogCalls  bool                    `yaml:"log_calls"`
	Endpoint  string                  `yaml:"endpoint"`
	Model     string                  `yaml:"model"`
	TimeoutMs int                     `yaml:"timeout_ms"`
	Tasks     map[TaskType]TaskConfig `yaml:"tasks"`
}

// DefaultConfig returns an LLMConfig pointing at the public Gemini endpoint.
// The API key is never defaulted.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Endpoint:  "https://generativelanguage.googleapis.com",
		Model:     "gemini-3-flash-preview",
		TimeoutMs: 15000,
		Tasks: map[TaskType]TaskConfig{
			TaskInsights: {TimeoutMs: 20000},
			TaskPreview:  {TimeoutMs: 10000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	cfg.ApplyEnv(os.Getenv)
	return cfg
}

// ApplyEnv overrides cfg with any values set in the environment. API_KEY
// wins over GEMINI_API_KEY when both are set.
func (c *LLMConfig) ApplyEnv(getenv func(string) string) {
	if v := getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := getenv("API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := getenv("TEAMFLOW_LLM_LOG_CALLS"); v != "" {
		c.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := getenv("TEAMFLOW_LLM_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := getenv("TEAMFLOW_LLM_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("TEAMFLOW_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(c, getenv, TaskInsights, "TEAMFLOW_LLM_INSIGHTS_TIMEOUT_MS")
	applyTaskTimeoutEnv(c, getenv, TaskPreview, "TEAMFLOW_LLM_PREVIEW_TIMEOUT_MS")
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, getenv func(string) string, task TaskType, envName string) {
	v := getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
