package analysis

import (
	"fmt"

	"infraghost/backend/internal/config"
)

// TokenEstimate is the pre-flight size estimate for one model invocation.
type TokenEstimate struct {
	PromptTokens int
	ImageTokens  int
	TotalTokens  int
	Limit        int
}

// EstimateTokens approximates the input-token cost of a request. Text is
// counted at 4 characters per token; the image at 300 tokens per KB of
// encoded payload. Both are documented approximations, not tokenizer output.
func EstimateTokens(prompt, imageBase64 string, limit int) TokenEstimate {
	promptTokens := ceilDiv(len(prompt), config.CharsPerToken)
	imageKB := ceilDiv(len(imageBase64), 1024)
	imageTokens := imageKB * config.ImageTokensPerKB

	return TokenEstimate{
		PromptTokens: promptTokens,
		ImageTokens:  imageTokens,
		TotalTokens:  promptTokens + imageTokens,
		Limit:        limit,
	}
}

// CheckBudget runs the estimate and fails with ErrBudgetExceeded when the
// total is strictly over the limit. An estimate exactly at the limit passes.
func CheckBudget(prompt, imageBase64 string, limit int) (TokenEstimate, error) {
	est := EstimateTokens(prompt, imageBase64, limit)
	if est.TotalTokens > est.Limit {
		return est, fmt.Errorf("%w: estimated %d, limit %d", ErrBudgetExceeded, est.TotalTokens, est.Limit)
	}
	return est, nil
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
