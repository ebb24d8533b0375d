// Package config provides configuration management for PolyView.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	HTTPAddr  string
	StaticDir string

	// Upstream settings
	UpstreamURL     string
	UpstreamTimeout time.Duration
	UpstreamRetries int

	// Optional YAML file overriding the built-in category keyword rules
	CategoryRules string

	Debug bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		HTTPAddr:  getEnv("HTTP_ADDR", ":3000"),
		StaticDir: getEnv("STATIC_DIR", "web"),

		UpstreamURL:     getEnv("UPSTREAM_URL", "https://gamma-api.polymarket.com"),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		UpstreamRetries: getEnvInt("UPSTREAM_RETRIES", 3),

		CategoryRules: getEnv("CATEGORY_RULES", ""),

		Debug: getEnvBool("DEBUG", false),
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
