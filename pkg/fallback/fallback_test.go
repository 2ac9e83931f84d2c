package fallback

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/helmcode/medicheck/pkg/llm"
	"github.com/helmcode/medicheck/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForIsTotal(t *testing.T) {
	categories := []Category{CategoryMissingCredential, CategoryUpstream, CategoryUnconfigured, Category("something-else"), Category("")}

	for _, category := range categories {
		t.Run(string(category), func(t *testing.T) {
			result := For(category)

			require.NotNil(t, result)
			assert.False(t, result.EmergencyAlert)
			require.Len(t, result.Conditions, 1)
			require.Len(t, result.Recommendations, 1)
			assert.NotEmpty(t, result.Conditions[0].Name)
			assert.NotEmpty(t, result.Conditions[0].Explanation)
			assert.NotEmpty(t, result.Recommendations[0].Action)
			assert.NotEmpty(t, result.Recommendations[0].Reason)
			assert.NotEmpty(t, result.Disclaimer)
		})
	}
}

func TestForPayloads(t *testing.T) {
	assert.Equal(t, "Configuration Error", For(CategoryMissingCredential).Conditions[0].Name)
	assert.Equal(t, "System Information", For(CategoryMissingCredential).Disclaimer)
	assert.Equal(t, "API Error", For(CategoryUpstream).Conditions[0].Name)
	assert.Equal(t, "System Error", For(CategoryUpstream).Disclaimer)
	assert.Equal(t, "Configuration Required", For(CategoryUnconfigured).Conditions[0].Name)
	assert.Contains(t, For(CategoryUnconfigured).Conditions[0].Explanation, "LLM_PROVIDER")
}

func TestForReturnsFreshValues(t *testing.T) {
	first := For(CategoryUpstream)
	first.Conditions[0].Name = "mutated"

	assert.Equal(t, "API Error", For(CategoryUpstream).Conditions[0].Name)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{name: "missing credential", err: llm.ErrMissingCredential, want: CategoryMissingCredential},
		{name: "wrapped missing credential", err: fmt.Errorf("generate: %w", llm.ErrMissingCredential), want: CategoryMissingCredential},
		{name: "network", err: &llm.NetworkError{Err: context.DeadlineExceeded}, want: CategoryUpstream},
		{name: "upstream", err: &llm.UpstreamError{StatusCode: 500, Message: "boom"}, want: CategoryUpstream},
		{name: "malformed", err: &parser.MalformedResponseError{Err: errors.New("bad json")}, want: CategoryUpstream},
		{name: "unknown", err: errors.New("surprise"), want: CategoryUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestForMode(t *testing.T) {
	assert.Equal(t, CategoryMissingCredential, ForMode(llm.ModeMissingCredential))
	assert.Equal(t, CategoryUnconfigured, ForMode(llm.ModeUnconfigured))
}
