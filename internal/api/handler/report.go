package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"infraghost/backend/internal/analysis"
	"infraghost/backend/internal/logger"
	"infraghost/backend/internal/models"
)

// SubmitPayload is the JSON body for POST /api/submit-report.
type SubmitPayload struct {
	InfraType   string   `json:"infra_type"`
	Comment     string   `json:"comment"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	ImageBase64 string   `json:"image_base64"`
}

// SubmitReport validates a submission, runs the analysis pipeline and
// appends the completed report. A report is only ever persisted with a
// finished analysis; any pipeline failure leaves the store untouched.
func (h *Handler) SubmitReport(c *gin.Context) {
	var p SubmitPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if p.Latitude == nil || p.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	lat, lng := *p.Latitude, *p.Longitude

	if err := ValidateSubmission(p.InfraType, p.ImageBase64, lat, lng); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": clientMessage(err)})
		return
	}

	comment := SanitizeComment(p.Comment)
	imageBase64 := StripDataURI(p.ImageBase64)

	logger.Log.Infof("analyzing %s at [%.4f, %.4f]", p.InfraType, lat, lng)

	result, err := h.Analyzer.Analyze(c.Request.Context(), imageBase64, p.InfraType, comment)
	if err != nil {
		logger.Log.Errorf("report submission failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": clientMessage(err)})
		return
	}

	report := &models.Report{
		InfraType:    p.InfraType,
		Comment:      comment,
		Latitude:     lat,
		Longitude:    lng,
		Analysis:     *result,
		ImagePreview: ImagePreview(imageBase64),
	}
	if err := h.Store.AppendReport(report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// ListReports returns the full collection, newest first.
func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.Store.ListReports()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// clientMessage maps a pipeline failure to safe user guidance. Budget and
// parse failures get distinct wording; internal diagnostics never leak.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, analysis.ErrInvalidInput):
		return "Invalid report fields"
	case errors.Is(err, analysis.ErrBudgetExceeded):
		return "Image too large for analysis. Please use a smaller image."
	case errors.Is(err, analysis.ErrNoStructuredOutput), errors.Is(err, analysis.ErrMalformedOutput):
		return "Analysis produced an unreadable result. Please try again."
	default:
		return "Failed to analyze infrastructure. Please try again."
	}
}
