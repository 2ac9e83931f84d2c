package llm

import (
	"testing"

	"github.com/helmcode/medicheck/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		want     Mode
	}{
		{name: "default provider without key", provider: "mock", want: ModeUnconfigured},
		{name: "gemini without key", provider: "gemini", want: ModeMissingCredential},
		{name: "gemini with short key", provider: "gemini", apiKey: "short", want: ModeLive},
		{name: "mock provider with long key", provider: "mock", apiKey: "AIzaSyA-long-key", want: ModeLive},
		{name: "other provider with long key", provider: "openai", apiKey: "AIzaSyA-long-key", want: ModeLive},
		{name: "mock provider with ten character key", provider: "mock", apiKey: "0123456789", want: ModeUnconfigured},
		{name: "mock provider with eleven character key", provider: "mock", apiKey: "0123456789a", want: ModeLive},
		{name: "unknown provider without key", provider: "claude", want: ModeUnconfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Provider: tt.provider, APIKey: tt.apiKey}
			assert.Equal(t, tt.want, Resolve(cfg))
		})
	}
}

func TestCreateFromConfig(t *testing.T) {
	client, mode := CreateFromConfig(&config.Config{Provider: "gemini", APIKey: "key"})
	assert.Equal(t, ModeLive, mode)
	assert.IsType(t, &Gemini{}, client)

	client, mode = CreateFromConfig(&config.Config{Provider: "mock"})
	assert.Equal(t, ModeUnconfigured, mode)
	assert.Nil(t, client)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "live", ModeLive.String())
	assert.Equal(t, "missing_credential", ModeMissingCredential.String())
	assert.Equal(t, "unconfigured", ModeUnconfigured.String())
}

func TestParseProvider(t *testing.T) {
	for _, name := range []string{"gemini", "GEMINI", " mock "} {
		p, err := ParseProvider(name)
		assert.NoError(t, err, name)
		assert.Contains(t, GetAvailableProviders(), p)
	}

	_, err := ParseProvider("openai")
	assert.ErrorContains(t, err, `unsupported provider "openai" (supported: gemini, mock)`)
}
