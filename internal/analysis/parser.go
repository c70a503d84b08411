package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"infraghost/backend/internal/models"
)

// rawAnalysis mirrors the model contract with pointer fields so missing keys
// are distinguishable from zero values.
type rawAnalysis struct {
	Exists         *bool    `json:"exists"`
	Usable         *bool    `json:"usable"`
	Reason         *string  `json:"reason"`
	UsabilityScore *float64 `json:"usability_score"`
}

// ParseResponse extracts the analysis object from raw model output. It takes
// the span from the first '{' to the last '}' and parses it as JSON; there is
// no recovery beyond that single extraction. Fails with ErrNoStructuredOutput
// when no such span exists, and with ErrMalformedOutput when the span is not
// valid JSON or any required key is missing, has the wrong type, or carries a
// score outside [0,100].
func ParseResponse(rawText string) (models.AnalysisCore, error) {
	var core models.AnalysisCore

	start := strings.Index(rawText, "{")
	end := strings.LastIndex(rawText, "}")
	if start == -1 || end == -1 || end < start {
		return core, ErrNoStructuredOutput
	}
	span := rawText[start : end+1]

	dec := json.NewDecoder(strings.NewReader(span))
	var raw rawAnalysis
	if err := dec.Decode(&raw); err != nil {
		return core, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	// The whole span must be one JSON value, as a strict parse would demand.
	if _, err := dec.Token(); err != io.EOF {
		return core, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedOutput)
	}

	switch {
	case raw.Exists == nil:
		return core, fmt.Errorf("%w: missing key %q", ErrMalformedOutput, "exists")
	case raw.Usable == nil:
		return core, fmt.Errorf("%w: missing key %q", ErrMalformedOutput, "usable")
	case raw.Reason == nil:
		return core, fmt.Errorf("%w: missing key %q", ErrMalformedOutput, "reason")
	case raw.UsabilityScore == nil:
		return core, fmt.Errorf("%w: missing key %q", ErrMalformedOutput, "usability_score")
	}

	score := *raw.UsabilityScore
	if score < 0 || score > 100 {
		return core, fmt.Errorf("%w: usability_score %v out of range", ErrMalformedOutput, score)
	}

	core.Exists = *raw.Exists
	core.Usable = *raw.Usable
	core.Reason = *raw.Reason
	core.UsabilityScore = int(math.Round(score))
	return core, nil
}
