package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"infraghost/backend/internal/analysis"
	"infraghost/backend/internal/api/handler"
	"infraghost/backend/internal/api/middleware"
	"infraghost/backend/internal/config"
	"infraghost/backend/internal/logger"
	"infraghost/backend/internal/storage"
	"infraghost/backend/internal/vision"
)

func setupDependencies(cfg *config.Config) (*storage.Service, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logger.Log.Fatalf("failed to connect Redis: %v", err)
	}

	store := storage.NewStorageService(db)
	if err := store.Migrate(); err != nil {
		logger.Log.Fatalf("failed to run migrations: %v", err)
	}

	logger.Log.Info("database and redis connections established, migrations complete")
	return store, rdb
}

func setupRouter(cfg *config.Config, store storage.Storage, analyzer handler.Analyzer, rdb *redis.Client) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodyBytes(cfg.MaxBodyBytes))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST"}
	if cfg.Production && cfg.AllowedOrigin != "" {
		corsCfg.AllowOrigins = []string{cfg.AllowedOrigin}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	h := handler.NewHandler(store, analyzer, cfg)
	limiter := middleware.NewRateLimiter(rdb, config.RateLimitWindow)

	api := r.Group("/api")
	api.Use(limiter.Limit("api", config.APIRateLimit, "Too many requests, please try again later"))
	api.GET("/reports", h.ListReports)
	api.POST("/submit-report",
		limiter.Limit("submit", config.SubmitRateLimit, "Too many submissions, please try again later"),
		h.SubmitReport)
	api.GET("/stats", h.GetStats)
	api.GET("/health", h.Health)
	api.GET("/config", h.GetConfig)

	// Map dashboard assets
	r.Static("/js", "./public/js")
	r.StaticFile("/", "./public/index.html")

	return r
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Log.Warn("no .env file loaded")
	}
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	if cfg.GeminiAPIKey == "" {
		logger.Log.Fatal("GEMINI_API_KEY is required")
	}
	if cfg.MapboxToken == "" {
		logger.Log.Fatal("MAPBOX_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, rdb := setupDependencies(cfg)

	visionClient, err := vision.NewClient(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("failed to create vision client: %v", err)
	}
	analyzer := analysis.NewService(visionClient, cfg.GeminiModel, cfg.TokenLimitFor(cfg.GeminiModel))

	r := setupRouter(cfg, store, analyzer, rdb)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Log.Infof("InfraGhost AI running on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("shutdown error: %v", err)
	}
}
