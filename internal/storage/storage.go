// Package storage provides the persistence boundary for reports. The
// analysis pipeline never touches it; handlers append completed reports and
// readers list the collection.
package storage

import (
	"infraghost/backend/internal/logger"
	"infraghost/backend/internal/models"

	"gorm.io/gorm"
)

// Storage is the report persistence contract. AppendReport must be atomic at
// the record level: concurrent submissions rely on the store, not on any
// application lock, to serialize inserts.
type Storage interface {
	ListReports() ([]models.Report, error)
	AppendReport(report *models.Report) error
}

// Service is the PostgreSQL-backed Storage implementation.
type Service struct {
	DB *gorm.DB
}

// NewStorageService wires a storage service over an open database handle.
func NewStorageService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Migrate creates or updates the reports table.
func (s *Service) Migrate() error {
	return s.DB.AutoMigrate(&models.Report{})
}

// ListReports returns the full collection, newest first, which is the order
// downstream consumers expect.
func (s *Service) ListReports() ([]models.Report, error) {
	var reports []models.Report
	if err := s.DB.Order("created_at DESC").Find(&reports).Error; err != nil {
		logger.Log.Errorf("failed to list reports: %v", err)
		return nil, err
	}
	return reports, nil
}

// AppendReport inserts one completed report. The id is assigned by the model
// hook; a single INSERT makes the append atomic.
func (s *Service) AppendReport(report *models.Report) error {
	if err := s.DB.Create(report).Error; err != nil {
		logger.Log.Errorf("failed to append report for type %s: %v", report.InfraType, err)
		return err
	}
	return nil
}
