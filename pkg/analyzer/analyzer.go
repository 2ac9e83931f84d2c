package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/apex/log"
	"github.com/helmcode/medicheck/pkg/config"
	"github.com/helmcode/medicheck/pkg/fallback"
	"github.com/helmcode/medicheck/pkg/llm"
	"github.com/helmcode/medicheck/pkg/metrics"
	"github.com/helmcode/medicheck/pkg/model"
	"github.com/helmcode/medicheck/pkg/parser"
	"github.com/helmcode/medicheck/pkg/prompts"
)

// Outcome labels how a request was served.
type Outcome string

const (
	OutcomeOK                Outcome = "ok"
	OutcomeMissingCredential Outcome = "missing_credential"
	OutcomeUnconfigured      Outcome = "unconfigured"
	OutcomeNetworkError      Outcome = "network_error"
	OutcomeUpstreamError     Outcome = "upstream_error"
	OutcomeMalformedResponse Outcome = "malformed_response"
)

// Degraded reports whether the result came from the fallback policy.
func (o Outcome) Degraded() bool {
	return o != OutcomeOK
}

type Analyzer struct {
	llm     llm.LLM
	mode    llm.Mode
	timeout time.Duration
}

// New builds the pipeline for the resolved provider mode.
func New(cfg *config.Config) *Analyzer {
	client, mode := llm.CreateFromConfig(cfg)
	return &Analyzer{llm: client, mode: mode, timeout: cfg.Timeout}
}

// NewWithLLM builds a live pipeline on top of the given client.
func NewWithLLM(l llm.LLM, timeout time.Duration) *Analyzer {
	return &Analyzer{llm: l, mode: llm.ModeLive, timeout: timeout}
}

// Mode returns the resolved provider mode.
func (a *Analyzer) Mode() llm.Mode {
	return a.mode
}

// Analyze runs the pipeline for one symptom description. The only error it
// returns is model.ErrEmptySymptoms; every other failure is folded into a
// degraded result.
func (a *Analyzer) Analyze(ctx context.Context, symptoms string) (*model.AnalysisResult, Outcome, error) {
	symptoms, err := model.NormalizeSymptoms(symptoms)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	result, outcome := a.analyze(ctx, symptoms)

	metrics.AnalysisTotal.WithLabelValues(string(outcome)).Inc()
	metrics.AnalysisDurationSeconds.WithLabelValues(string(outcome)).Observe(time.Since(start).Seconds())

	return result, outcome, nil
}

func (a *Analyzer) analyze(ctx context.Context, symptoms string) (*model.AnalysisResult, Outcome) {
	if a.mode != llm.ModeLive || a.llm == nil {
		category := fallback.ForMode(a.mode)
		log.WithField("mode", a.mode.String()).Warn("LLM provider not configured, returning fallback analysis")
		return fallback.For(category), outcomeFor(category, nil)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	raw, err := a.llm.Generate(ctx, prompts.BuildSymptomPrompt(symptoms))
	if err != nil {
		return a.degrade(err)
	}

	result, err := parser.ParseAnalysisResponse(raw)
	if err != nil {
		return a.degrade(err)
	}

	log.WithFields(log.Fields{
		"conditions":      len(result.Conditions),
		"recommendations": len(result.Recommendations),
		"emergency_alert": result.EmergencyAlert,
	}).Info("symptom analysis complete")
	return result, OutcomeOK
}

func (a *Analyzer) degrade(err error) (*model.AnalysisResult, Outcome) {
	category := fallback.Classify(err)
	outcome := outcomeFor(category, err)
	log.WithError(err).WithField("outcome", string(outcome)).Error("symptom analysis failed, returning fallback analysis")
	return fallback.For(category), outcome
}

func outcomeFor(category fallback.Category, err error) Outcome {
	var (
		netErr    *llm.NetworkError
		malformed *parser.MalformedResponseError
	)
	switch {
	case category == fallback.CategoryMissingCredential:
		return OutcomeMissingCredential
	case category == fallback.CategoryUnconfigured:
		return OutcomeUnconfigured
	case errors.As(err, &netErr):
		return OutcomeNetworkError
	case errors.As(err, &malformed):
		return OutcomeMalformedResponse
	default:
		return OutcomeUpstreamError
	}
}
