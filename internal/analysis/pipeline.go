// Package analysis implements the infrastructure analysis pipeline: prompt
// construction, token-budget gating, model invocation, response parsing and
// ghost-score derivation.
package analysis

import (
	"context"
	"fmt"

	"infraghost/backend/internal/logger"
	"infraghost/backend/internal/models"
)

// JPEGMimeType is assumed for all submitted images.
const JPEGMimeType = "image/jpeg"

// Generator is the external vision-model boundary. Implementations send the
// prompt together with the inline image and return the raw model text.
type Generator interface {
	Generate(ctx context.Context, prompt, imageBase64, mimeType string) (string, error)
}

// Service runs the analysis pipeline around an injected Generator.
type Service struct {
	Model      Generator
	ModelID    string
	TokenLimit int
}

// NewService creates an analysis service for one model with its token ceiling.
func NewService(model Generator, modelID string, tokenLimit int) *Service {
	return &Service{Model: model, ModelID: modelID, TokenLimit: tokenLimit}
}

// Analyze runs one submission through the pipeline and returns the completed
// Analysis. It fails with ErrBudgetExceeded, ErrModelUnavailable,
// ErrNoStructuredOutput or ErrMalformedOutput; every failure is terminal for
// the submission and nothing is persisted here. No retries are attempted;
// that decision belongs to the caller.
func (s *Service) Analyze(ctx context.Context, imageBase64, infraType, comment string) (*models.Analysis, error) {
	prompt := BuildPrompt(infraType, comment)

	// Gate on the actual prompt and payload before paying for the call.
	est, err := CheckBudget(prompt, imageBase64, s.TokenLimit)
	if err != nil {
		return nil, err
	}
	logger.Log.Debugf("token estimate for %s: %d/%d", s.ModelID, est.TotalTokens, est.Limit)

	rawText, err := s.Model.Generate(ctx, prompt, imageBase64, JPEGMimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	core, err := ParseResponse(rawText)
	if err != nil {
		return nil, err
	}

	return &models.Analysis{
		AnalysisCore:  core,
		DerivedFields: Derive(core.UsabilityScore),
	}, nil
}
