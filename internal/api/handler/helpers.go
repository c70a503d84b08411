package handler

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"infraghost/backend/internal/analysis"
	"infraghost/backend/internal/config"
)

// stripPolicy removes every HTML element from user comments.
var stripPolicy = bluemonday.StrictPolicy()

// SanitizeComment strips HTML from a user comment and caps it at the schema
// limit. The cap counts characters, not bytes, so multibyte comments are
// never split mid-rune. An empty comment becomes "No comment".
func SanitizeComment(comment string) string {
	clean := strings.TrimSpace(stripPolicy.Sanitize(comment))
	if clean == "" {
		clean = "No comment"
	}
	if utf8.RuneCountInString(clean) > config.CommentMaxLength {
		clean = string([]rune(clean)[:config.CommentMaxLength])
	}
	return clean
}

// ValidateSubmission checks the submission fields the pipeline assumes are
// already sound. Every failure wraps analysis.ErrInvalidInput.
func ValidateSubmission(infraType, imageBase64 string, lat, lng float64) error {
	if infraType == "" || imageBase64 == "" {
		return fmt.Errorf("%w: missing required fields", analysis.ErrInvalidInput)
	}
	if !slices.Contains(config.AllowedInfraTypes, infraType) {
		return fmt.Errorf("%w: unknown infrastructure type %q", analysis.ErrInvalidInput, infraType)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: coordinates out of range", analysis.ErrInvalidInput)
	}
	return nil
}

// StripDataURI drops a leading "data:...;base64," prefix so the pipeline
// always sees the bare encoded payload.
func StripDataURI(imageBase64 string) string {
	if _, rest, found := strings.Cut(imageBase64, ","); found && strings.HasPrefix(imageBase64, "data:") {
		return rest
	}
	return imageBase64
}

// ImagePreview truncates an encoded payload for persistence; the full image
// is never stored.
func ImagePreview(imageBase64 string) string {
	if len(imageBase64) <= config.ImagePreviewLength {
		return imageBase64
	}
	return imageBase64[:config.ImagePreviewLength] + "..."
}
