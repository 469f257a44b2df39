// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration. It is read once at
// startup and treated as immutable afterwards.
type Config struct {
	// Database
	DatabaseURL string

	// Redis (read model + event stream)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Token
	JWTSecret string
	JWTExpiry time.Duration

	// Rate limit (auth routes, per client IP)
	AuthRatePerMinute int
	AuthRateBurst     int

	// Server
	Port string
}

// Load reads the Config from environment variables. The signing secret and
// the database URL have no fallback: an unset value is a startup error, not
// a silent default.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.JWTExpiry = getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour)
	cfg.RedisAddr = getEnvString("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnvString("REDIS_PASSWORD", "")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.AuthRatePerMinute = getEnvInt("AUTH_RATE_PER_MINUTE", 30)
	cfg.AuthRateBurst = getEnvInt("AUTH_RATE_BURST", 10)
	cfg.Port = getEnvString("PORT", "5000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
