package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/helmcode/medicheck/pkg/config"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ModelInfo describes a model returned by ListModels.
type ModelInfo struct {
	Name                       string   `json:"name" yaml:"name"`
	DisplayName                string   `json:"displayName,omitempty" yaml:"display_name,omitempty"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods" yaml:"supported_generation_methods"`
}

func NewGemini(cfg *config.Config) *Gemini {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	model := strings.TrimPrefix(cfg.Model, "models/")
	if model == "" {
		model = config.DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return &Gemini{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// GetModel returns the model being used by this client
func (g *Gemini) GetModel() string {
	return g.model
}

// Generate sends a single generateContent request and returns the text of the
// first part of the first candidate. It never retries.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingCredential
	}

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?%s", g.baseURL, url.PathEscape(g.model), g.keyQuery())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBytes, err := g.do(req)
	if err != nil {
		return "", err
	}

	var gr geminiResponse
	if err := json.Unmarshal(respBytes, &gr); err != nil {
		return "", &UpstreamError{Message: fmt.Sprintf("unexpected response envelope: %v", err)}
	}
	if len(gr.Candidates) == 0 {
		return "", &UpstreamError{Message: "no candidates in response"}
	}
	parts := gr.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return "", &UpstreamError{Message: "no text part in response"}
	}
	return *parts[0].Text, nil
}

// ListModels returns the models visible to the configured key.
func (g *Gemini) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if g.apiKey == "" {
		return nil, ErrMissingCredential
	}

	endpoint := fmt.Sprintf("%s/models?%s", g.baseURL, g.keyQuery())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	respBytes, err := g.do(req)
	if err != nil {
		return nil, err
	}

	var lr struct {
		Models []ModelInfo `json:"models"`
	}
	if err := json.Unmarshal(respBytes, &lr); err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("unexpected response envelope: %v", err)}
	}
	return lr.Models, nil
}

func (g *Gemini) keyQuery() string {
	return url.Values{"key": []string{g.apiKey}}.Encode()
}

// do executes req and returns the body of a 2xx response.
func (g *Gemini) do(req *http.Request) ([]byte, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: redactKey(err, g.apiKey)}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(respBytes)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}
	return respBytes, nil
}

// redactKey keeps the API key out of error strings; *url.Error embeds the
// full request URL including the query.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
