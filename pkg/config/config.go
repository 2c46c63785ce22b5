package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional - screening runs work without persistence)
	Database DatabaseConfig

	// External data sources
	Yahoo YahooConfig
	Naver NaverConfig
	KRX   KRXConfig
	CSV   CSVConfig

	// Ingestion defaults
	Ingest IngestConfig

	// Strategy thresholds/weights YAML (empty = built-in defaults)
	StrategyFile string

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL     string
	Enabled bool

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// YahooConfig holds Yahoo Finance configuration
type YahooConfig struct {
	BaseURL string
}

// NaverConfig holds Naver Finance configuration
type NaverConfig struct {
	BaseURL string
}

// KRXConfig holds KRX market data configuration
type KRXConfig struct {
	BaseURL string
}

// CSVConfig holds the file-backed data source configuration
type CSVConfig struct {
	Path string // "" = csv source disabled
}

// IngestConfig holds ingestion engine defaults
type IngestConfig struct {
	Workers        int           // bounded worker pool width
	MaxRetries     int           // retries per ticker on fetch error
	Timeout        time.Duration // wall-clock timeout per ticker
	RateLimitDelay time.Duration // minimum spacing between provider calls (0 = off)
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Yahoo: YahooConfig{
			BaseURL: getEnv("YAHOO_BASE_URL", "https://query2.finance.yahoo.com"),
		},
		Naver: NaverConfig{
			BaseURL: getEnv("NAVER_BASE_URL", "https://finance.naver.com"),
		},
		KRX: KRXConfig{
			BaseURL: getEnv("KRX_BASE_URL", "http://data.krx.co.kr"),
		},
		CSV: CSVConfig{
			Path: getEnv("CSV_FILE", ""),
		},

		Ingest: IngestConfig{
			Workers:        getEnvAsInt("INGEST_WORKERS", 4),
			MaxRetries:     getEnvAsInt("INGEST_MAX_RETRIES", 2),
			Timeout:        getEnvAsDuration("INGEST_TIMEOUT", "15s"),
			RateLimitDelay: getEnvAsDuration("INGEST_RATE_LIMIT_DELAY", "0s"),
		},

		StrategyFile: getEnv("STRATEGY_FILE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	cfg.Database.Enabled = cfg.Database.URL != ""

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks configuration sanity
func (c *Config) validate() error {
	if c.Ingest.Workers < 1 {
		return fmt.Errorf("INGEST_WORKERS must be >= 1, got %d", c.Ingest.Workers)
	}
	if c.Ingest.MaxRetries < 0 {
		return fmt.Errorf("INGEST_MAX_RETRIES must be >= 0, got %d", c.Ingest.MaxRetries)
	}
	if c.Ingest.Timeout <= 0 {
		return fmt.Errorf("INGEST_TIMEOUT must be positive, got %s", c.Ingest.Timeout)
	}
	return nil
}

// loadEnvFile tries to load .env from several candidate paths
func loadEnvFile() {
	candidates := []string{
		".env",
		filepath.Join("..", ".env"),
		filepath.Join("..", "..", ".env"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an integer environment variable
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration reads a duration environment variable
func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	fallback, _ := time.ParseDuration(defaultValue)
	return fallback
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
