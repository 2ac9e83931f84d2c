// Package fallback maps every pipeline failure to a fixed, schema-valid
// AnalysisResult so callers always get a complete payload.
package fallback

import (
	"errors"

	"github.com/helmcode/medicheck/pkg/llm"
	"github.com/helmcode/medicheck/pkg/model"
)

// Category is a class of failure with its own degraded payload.
type Category string

const (
	// CategoryMissingCredential: the live provider is selected but no key is set.
	CategoryMissingCredential Category = "missing_credential"
	// CategoryUpstream covers network, upstream and malformed response failures.
	CategoryUpstream Category = "upstream_error"
	// CategoryUnconfigured: no live provider is selected.
	CategoryUnconfigured Category = "unconfigured"
)

// Classify maps a pipeline error to its category. Errors it does not know are
// treated as upstream failures.
func Classify(err error) Category {
	if errors.Is(err, llm.ErrMissingCredential) {
		return CategoryMissingCredential
	}
	return CategoryUpstream
}

// ForMode returns the category used when the resolver refuses to go live.
func ForMode(mode llm.Mode) Category {
	if mode == llm.ModeMissingCredential {
		return CategoryMissingCredential
	}
	return CategoryUnconfigured
}

// For builds a fresh degraded payload. It is total: unknown categories get
// the upstream payload. EmergencyAlert is always false.
func For(category Category) *model.AnalysisResult {
	switch category {
	case CategoryMissingCredential:
		return build(
			"Configuration Error", "Missing API Key.",
			"Update .env", "Please set LLM_API_KEY in your backend/.env file.",
			"System Information",
		)
	case CategoryUnconfigured:
		return build(
			"Configuration Required", "Please set LLM_PROVIDER=gemini and provide an LLM_API_KEY in the backend .env file to use the AI.",
			"Update Configuration", "Real-time analysis requires a valid Google Gemini API Key.",
			"System Information",
		)
	default:
		return build(
			"API Error", "Failed to connect to AI service.",
			"Check Configuration", "Ensure your API Key is valid and you have internet access.",
			"System Error",
		)
	}
}

func build(name, explanation, action, reason, disclaimer string) *model.AnalysisResult {
	return &model.AnalysisResult{
		Conditions:      []model.Condition{{Name: name, Explanation: explanation}},
		Recommendations: []model.Recommendation{{Action: action, Reason: reason}},
		Disclaimer:      disclaimer,
		EmergencyAlert:  false,
	}
}
