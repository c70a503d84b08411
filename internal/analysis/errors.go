package analysis

import "errors"

// Failure kinds of the analysis pipeline. Every failure is terminal for the
// submission; callers branch with errors.Is to pick user guidance without
// echoing internal detail.
var (
	// ErrInvalidInput marks bad submission fields. It is returned by the
	// validation layer before the pipeline runs, never by the pipeline itself.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBudgetExceeded means the estimated request size is over the model's
	// input-token ceiling. The request was never sent.
	ErrBudgetExceeded = errors.New("token budget exceeded")

	// ErrModelUnavailable wraps any failure of the external model call:
	// network errors, quota errors, timeouts.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrNoStructuredOutput means the model reply contained no {...} span.
	ErrNoStructuredOutput = errors.New("no structured output in model response")

	// ErrMalformedOutput means the extracted span was not valid JSON or did
	// not match the required shape.
	ErrMalformedOutput = errors.New("malformed model output")
)
