package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole console configuration, populated from
// environment variables.
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// BackendConfig points at the remote library REST API. The console owns no
// domain state; every mutation goes through this service.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName   string
	TTLHours     int // fallback when the bearer token carries no usable expiry
	CookieSecure bool
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Biblioteca Console"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:9090/api"),
			TimeoutSeconds: getEnvInt("BACKEND_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			CookieName:   getEnv("SESSION_COOKIE_NAME", "console_session"),
			TTLHours:     getEnvInt("SESSION_TTL_HOURS", 12),
			CookieSecure: getEnv("APP_ENV", "development") == "production",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL must be set")
	}
	if c.App.Environment == "production" {
		if c.Redis.Password == "" {
			fmt.Println("WARNING: REDIS_PASSWORD not set - sessions are stored unauthenticated")
		}
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
