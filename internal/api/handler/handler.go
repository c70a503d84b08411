// Package handler contains the gin HTTP handlers for report submission,
// listing and statistics.
package handler

import (
	"context"

	"infraghost/backend/internal/config"
	"infraghost/backend/internal/models"
	"infraghost/backend/internal/storage"
)

// Analyzer is the slice of the analysis pipeline the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, imageBase64, infraType, comment string) (*models.Analysis, error)
}

// Handler holds the collaborators behind the HTTP surface.
type Handler struct {
	Store    storage.Storage
	Analyzer Analyzer
	Cfg      *config.Config
}

// NewHandler wires the HTTP handlers.
func NewHandler(store storage.Storage, analyzer Analyzer, cfg *config.Config) *Handler {
	return &Handler{Store: store, Analyzer: analyzer, Cfg: cfg}
}
