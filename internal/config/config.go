/**
 * @description
 * Configuration loader for the StockSense Backend.
 * Responsible for reading environment variables, setting defaults, and performing strict validation.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 * - standard "fmt": For error reporting
 *
 * @notes
 * - Fails fast if critical variables (Database URL, JWT secret in production) are missing.
 * - Uses a Singleton-like pattern where Load() returns a Config struct.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server Server
	DB     DB
	Redis  Redis
	Auth   Auth
	Yahoo  Yahoo
	Worker Worker
}

// Server holds HTTP server settings
type Server struct {
	Port string
	Env  string // "development", "test" or "production"
}

// DB holds PostgreSQL settings
type DB struct {
	URL string
}

// Redis holds Redis settings
type Redis struct {
	URL string
}

// Auth holds token signing settings
type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Yahoo holds the market/news data source settings
type Yahoo struct {
	BaseURL   string
	NewsLimit int
}

// Worker holds background refresher settings
type Worker struct {
	RefreshInterval time.Duration
	QuoteCacheTTL   time.Duration
}

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env, but don't crash if it fails (prod might inject env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Server: Server{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		DB: DB{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: Redis{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Auth: Auth{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		},
		Yahoo: Yahoo{
			BaseURL:   getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			NewsLimit: getEnvAsInt("YAHOO_NEWS_LIMIT", 10),
		},
		Worker: Worker{
			RefreshInterval: time.Duration(getEnvAsInt("WORKER_REFRESH_MINUTES", 30)) * time.Minute,
			QuoteCacheTTL:   time.Duration(getEnvAsInt("QUOTE_CACHE_TTL_MINUTES", 15)) * time.Minute,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks for required variables
func validate(cfg *Config) error {
	if cfg.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		if cfg.Server.Env == "production" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.Auth.JWTSecret = "dev-key-change-in-production"
	}
	return nil
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper to get env var as int
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
