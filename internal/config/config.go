package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	DBDriver    string
	DatabaseURL string

	AdminPassword     string
	AdminPasswordHash string
	SessionCookieName string
	SessionTTL        time.Duration
	SessionSecure     bool

	StorageDriver   string
	PhotosDir       string
	PhotosURLPrefix string
	S3              S3Config

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	AnalyzeRatePerMinute int
	AnalyzeBurst         int

	CORSAllowedOrigins []string
}

// S3Config is used when STORAGE_DRIVER is s3.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Prefix        string
	PublicBaseURL string
}

// AnalyzerEnabled reports whether an API key for the analyzer is set.
func (c *Config) AnalyzerEnabled() bool {
	return c.LLMAPIKey != ""
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:           getEnv("API_PORT", "9000"),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "text")),
		DBDriver:          getEnv("DB_DRIVER", "sqlite3"),
		DatabaseURL:       getEnv("DATABASE_URL", "./data/portfolio.db"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "portfolio_session"),
		StorageDriver:     getEnv("STORAGE_DRIVER", "local"),
		PhotosDir:         getEnv("PHOTOS_DIR", "./data/photos"),
		PhotosURLPrefix:   getEnv("PHOTOS_URL_PREFIX", "/photos"),
		S3: S3Config{
			Bucket:        os.Getenv("S3_BUCKET"),
			Region:        getEnv("S3_REGION", "us-east-1"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			Prefix:        os.Getenv("S3_PREFIX"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:          os.Getenv("LLM_API_KEY"),
		LLMModel:           getEnv("LLM_MODEL", "gpt-4o"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.DBDriver != "sqlite3" && cfg.DBDriver != "pgx" {
		return nil, fmt.Errorf("DB_DRIVER must be sqlite3 or pgx, got %q", cfg.DBDriver)
	}
	if cfg.DBDriver == "pgx" && os.Getenv("DATABASE_URL") == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER is pgx")
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL must be a valid duration: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be greater than 0")
	}
	cfg.SessionSecure, err = strconv.ParseBool(getEnv("SESSION_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_SECURE must be a boolean: %w", err)
	}

	switch cfg.StorageDriver {
	case "local":
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER is s3")
		}
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be local or s3, got %q", cfg.StorageDriver)
	}

	// A zero rate disables the analyze limiter.
	if cfg.AnalyzeRatePerMinute, err = nonNegativeInt("ANALYZE_RATE_PER_MINUTE", "20"); err != nil {
		return nil, err
	}
	if cfg.AnalyzeBurst, err = nonNegativeInt("ANALYZE_BURST", "5"); err != nil {
		return nil, err
	}
	if cfg.AnalyzeRatePerMinute > 0 && cfg.AnalyzeBurst == 0 {
		return nil, fmt.Errorf("ANALYZE_BURST must be greater than 0 when ANALYZE_RATE_PER_MINUTE is set")
	}

	// Create the sqlite data directory if it doesn't exist
	if cfg.DBDriver == "sqlite3" {
		dataDir := filepath.Dir(cfg.DatabaseURL)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func nonNegativeInt(key, defaultValue string) (int, error) {
	n, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return n, nil
}

// splitList splits a comma separated value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
