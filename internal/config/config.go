// Package config holds runtime configuration and the static tables the
// analysis pipeline depends on (model token ceilings, ghost thresholds,
// rate-limit windows).
package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// Ghost classification thresholds, applied to ghost_score.
	GhostThreshold      = 60
	FunctionalThreshold = 30

	// Token estimation
	CharsPerToken      = 4
	ImageTokensPerKB   = 300
	DefaultTokenLimit  = 1_000_000
	GhostScoreMax      = 100
	CommentMaxLength   = 200
	ImagePreviewLength = 100

	// Rate limiting (mirrors the public deployment settings)
	RateLimitWindow = 15 * time.Minute
	APIRateLimit    = 100
	SubmitRateLimit = 20

	// Request body ceiling. 10MB by default; deployments accepting large
	// images should stay at or below 50MB.
	DefaultMaxBodyBytes = 10 << 20
)

// AllowedInfraTypes is the infrastructure type allowlist for submissions.
var AllowedInfraTypes = []string{"water", "toilet", "streetlight", "ramp"}

// TokenLimits maps a model id to its input-token ceiling. Models missing from
// the table fall back to Config.DefaultTokenLimit.
var TokenLimits = map[string]int{
	"gemini-3-pro":          1_000_000,
	"gemini-3-flash":        1_000_000,
	"gemini-2.5-pro":        1_000_000,
	"gemini-2.5-flash":      1_000_000,
	"gemini-2.5-flash-lite": 1_000_000,
	"gemini-2.0-flash":      1_000_000,
	"gemini-1.5-pro":        1_000_000,
	"gemini-1.5-flash":      1_000_000,
}

// Config is the environment-driven runtime configuration.
type Config struct {
	Port        string
	DatabaseDSN string
	RedisAddr   string
	RedisPass   string

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	MapboxToken   string
	AllowedOrigin string
	Production    bool

	DefaultTokenLimit int
	MaxBodyBytes      int64

	LogLevel string
}

// Load reads the configuration from the environment. Only GEMINI_API_KEY and
// MAPBOX_TOKEN are mandatory; everything else has a development default.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "5000"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=user password=password dbname=infraghost port=5432 sslmode=disable"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		MapboxToken:   os.Getenv("MAPBOX_TOKEN"),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		Production:    os.Getenv("APP_ENV") == "production",

		DefaultTokenLimit: getEnvInt("DEFAULT_TOKEN_LIMIT", DefaultTokenLimit),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", DefaultMaxBodyBytes)),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// TokenLimitFor resolves the token ceiling for a model id, falling back to the
// configured default for unknown models.
func (c *Config) TokenLimitFor(modelID string) int {
	if limit, ok := TokenLimits[modelID]; ok {
		return limit
	}
	return c.DefaultTokenLimit
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
