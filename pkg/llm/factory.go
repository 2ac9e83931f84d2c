package llm

import (
	"fmt"
	"strings"

	"github.com/helmcode/medicheck/pkg/config"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderMock   Provider = "mock"
)

// minLiveKeyLength is the key length above which a key alone enables the live
// provider, whatever LLM_PROVIDER says.
const minLiveKeyLength = 10

// Mode is the resolved way an analysis request is served.
type Mode int

const (
	// ModeUnconfigured means no live provider is selected.
	ModeUnconfigured Mode = iota
	// ModeMissingCredential means the live provider is selected without a key.
	ModeMissingCredential
	// ModeLive means requests go to the Gemini endpoint.
	ModeLive
)

func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeMissingCredential:
		return "missing_credential"
	default:
		return "unconfigured"
	}
}

// Resolve decides how requests are served. The live provider is used when the
// provider is explicitly gemini OR a key longer than ten characters is
// present; either condition is sufficient on its own.
func Resolve(cfg *config.Config) Mode {
	if Provider(cfg.Provider) != ProviderGemini && len(cfg.APIKey) <= minLiveKeyLength {
		return ModeUnconfigured
	}
	if cfg.APIKey == "" {
		return ModeMissingCredential
	}
	return ModeLive
}

// CreateFromConfig returns the client for the resolved mode. For the non-live
// modes it returns nil together with the mode so callers can fall back.
func CreateFromConfig(cfg *config.Config) (LLM, Mode) {
	mode := Resolve(cfg)
	if mode != ModeLive {
		return nil, mode
	}
	return NewGemini(cfg), mode
}

// GetAvailableProviders returns a list of available LLM providers
func GetAvailableProviders() []Provider {
	return []Provider{ProviderGemini, ProviderMock}
}

// ParseProvider maps a provider name onto one of GetAvailableProviders.
func ParseProvider(name string) (Provider, error) {
	wanted := Provider(strings.ToLower(strings.TrimSpace(name)))
	names := make([]string, 0, 2)
	for _, p := range GetAvailableProviders() {
		if p == wanted {
			return p, nil
		}
		names = append(names, string(p))
	}
	return "", fmt.Errorf("unsupported provider %q (supported: %s)", name, strings.Join(names, ", "))
}
