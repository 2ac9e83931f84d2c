package model

import (
	"errors"
	"strings"
)

// ErrEmptySymptoms is returned when the symptom text is blank after trimming.
var ErrEmptySymptoms = errors.New("symptoms are required")

// AnalysisResult is the advisory payload returned for a symptom description.
// Every field is always present; the slices serialize as [] and never as null.
type AnalysisResult struct {
	Conditions      []Condition      `json:"conditions" yaml:"conditions"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
	Disclaimer      string           `json:"disclaimer" yaml:"disclaimer"`
	EmergencyAlert  bool             `json:"emergency_alert" yaml:"emergency_alert"`
}

type Condition struct {
	Name        string `json:"name" yaml:"name"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

type Recommendation struct {
	Action string `json:"action" yaml:"action"`
	Reason string `json:"reason" yaml:"reason"`
}

// NormalizeSymptoms trims the caller supplied text and rejects blank input.
func NormalizeSymptoms(symptoms string) (string, error) {
	trimmed := strings.TrimSpace(symptoms)
	if trimmed == "" {
		return "", ErrEmptySymptoms
	}
	return trimmed, nil
}

// Normalize replaces nil slices with empty ones so the JSON shape stays total.
func (r *AnalysisResult) Normalize() {
	if r.Conditions == nil {
		r.Conditions = []Condition{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []Recommendation{}
	}
}
