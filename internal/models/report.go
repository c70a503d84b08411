package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ghost level labels. A report's level is a pure function of its ghost score.
const (
	LevelInfraGhost = "InfraGhost"
	LevelPartial    = "Partial"
	LevelFunctional = "Functional"
)

// AnalysisCore is the structured part of a model response, exactly the four
// keys the model is instructed to return.
type AnalysisCore struct {
	Exists         bool   `gorm:"not null" json:"exists"`
	Usable         bool   `gorm:"not null" json:"usable"`
	Reason         string `gorm:"not null" json:"reason"`
	UsabilityScore int    `gorm:"not null" json:"usability_score"`
}

// DerivedFields are computed from AnalysisCore.UsabilityScore and never come
// from the model itself.
type DerivedFields struct {
	GhostScore int    `gorm:"not null;index" json:"ghost_score"`
	GhostLevel string `gorm:"not null;index:idx_level_type" json:"ghost_level"`
}

// Analysis is the immutable verdict attached to a report: the parsed model
// output joined with the derived ghost fields.
type Analysis struct {
	AnalysisCore
	DerivedFields
}

// Report is the durable unit: one citizen submission about one piece of
// infrastructure, with its completed analysis. Reports are append-only and
// never mutated after creation.
type Report struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	InfraType string    `gorm:"not null;index;index:idx_level_type" json:"infra_type"`
	Comment   string    `gorm:"size:200" json:"comment"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Analysis  Analysis  `gorm:"embedded;embeddedPrefix:analysis_" json:"analysis"`
	// ImagePreview keeps only the first bytes of the submitted payload for
	// spot-checking; the full image is never persisted.
	ImagePreview string    `json:"image_base64,omitempty"`
	CreatedAt    time.Time `gorm:"not null;index" json:"timestamp"`
}

// BeforeCreate assigns the report id if the caller did not set one.
func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
