package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultProvider = "mock"
	DefaultModel    = "gemini-flash-latest"
	DefaultBaseURL  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTimeout  = 30 * time.Second
	DefaultPort     = "5000"
)

// Config holds the process wide settings. It is loaded once at start up and
// handed to constructors; nothing reads the environment after that.
type Config struct {
	// LLM configuration
	APIKey   string
	Provider string
	Model    string
	BaseURL  string
	Timeout  time.Duration

	// Server configuration
	Port           string
	AllowedOrigins string

	// Logging
	LogLevel string
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	return &Config{
		APIKey:   os.Getenv("LLM_API_KEY"),
		Provider: strings.ToLower(getEnv("LLM_PROVIDER", DefaultProvider)),
		Model:    getEnv("LLM_MODEL", DefaultModel),
		BaseURL:  strings.TrimRight(getEnv("LLM_BASE_URL", DefaultBaseURL), "/"),
		Timeout:  getDurationEnv("LLM_TIMEOUT", DefaultTimeout),

		Port:           getEnv("PORT", DefaultPort),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// WithOverrides returns a copy of c with the non-empty values applied.
func (c Config) WithOverrides(provider, model string) *Config {
	if provider != "" {
		c.Provider = strings.ToLower(provider)
	}
	if model != "" {
		c.Model = model
	}
	return &c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}
