package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/helmcode/medicheck/pkg/model"
)

// MalformedResponseError is returned when the model output is not a complete,
// well-shaped analysis payload.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ParseAnalysisResponse turns raw model text into an AnalysisResult. The text
// is treated as data only. Either every field validates or an error is
// returned; there is no partial result.
func ParseAnalysisResponse(raw string) (*model.AnalysisResult, error) {
	cleaned := strings.TrimSpace(StripFences(raw))
	if cleaned == "" {
		return nil, &MalformedResponseError{Err: fmt.Errorf("empty response")}
	}

	if err := validate(cleaned); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	result.Normalize()
	return &result, nil
}
