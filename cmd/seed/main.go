// Seed imports a legacy flat-file report store (reports.json) into the
// database. Run once when migrating off the file-backed deployment.
package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"infraghost/backend/internal/config"
	"infraghost/backend/internal/logger"
	"infraghost/backend/internal/models"
	"infraghost/backend/internal/storage"
)

// legacyReport matches the flat-file schema, where timestamps travel as
// RFC 3339 strings under "timestamp".
type legacyReport struct {
	InfraType string          `json:"infra_type"`
	Comment   string          `json:"comment"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Analysis  models.Analysis `json:"analysis"`
	Timestamp string          `json:"timestamp"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Log.Warn("no .env file loaded")
	}
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	path := "reports.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Fatalf("cannot read %s: %v", path, err)
	}
	var legacy []legacyReport
	if err := json.Unmarshal(raw, &legacy); err != nil {
		logger.Log.Fatalf("cannot parse %s: %v", path, err)
	}
	if len(legacy) == 0 {
		logger.Log.Info("no reports to seed")
		return
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("failed to connect PostgreSQL: %v", err)
	}
	store := storage.NewStorageService(db)
	if err := store.Migrate(); err != nil {
		logger.Log.Fatalf("failed to run migrations: %v", err)
	}

	imported, skipped := 0, 0
	for _, lr := range legacy {
		createdAt, err := time.Parse(time.RFC3339, lr.Timestamp)
		if err != nil {
			createdAt = time.Now()
		}
		comment := lr.Comment
		if comment == "" {
			comment = "No comment"
		}
		report := &models.Report{
			InfraType: lr.InfraType,
			Comment:   comment,
			Latitude:  lr.Latitude,
			Longitude: lr.Longitude,
			Analysis:  lr.Analysis,
			CreatedAt: createdAt,
		}
		if err := store.AppendReport(report); err != nil {
			skipped++
			continue
		}
		imported++
	}

	logger.Log.Infof("seeded %d reports (%d skipped)", imported, skipped)
}
