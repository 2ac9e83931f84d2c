package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"LLM_API_KEY", "LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "LLM_TIMEOUT", "PORT", "ALLOWED_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, DefaultProvider, cfg.Provider)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "*", cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LLM_API_KEY", "abc123")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_MODEL", "gemini-2.0-flash")
	t.Setenv("LLM_BASE_URL", "http://localhost:9999/v1beta/")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("PORT", "8081")

	cfg := Load()

	assert.Equal(t, "abc123", cfg.APIKey)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, "http://localhost:9999/v1beta", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "8081", cfg.Port)
}

func TestLoadIgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")
	assert.Equal(t, DefaultTimeout, Load().Timeout)

	t.Setenv("LLM_TIMEOUT", "-1s")
	assert.Equal(t, DefaultTimeout, Load().Timeout)
}

func TestWithOverridesCopies(t *testing.T) {
	base := &Config{Provider: "mock", Model: DefaultModel}

	overridden := base.WithOverrides("GEMINI", "")

	assert.Equal(t, "gemini", overridden.Provider)
	assert.Equal(t, DefaultModel, overridden.Model)
	assert.Equal(t, "mock", base.Provider)
}
