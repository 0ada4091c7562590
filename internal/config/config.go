// Package config loads the stratad service configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Structuring defaults
	OCREnabled  bool
	OCRLanguage string
	Workers     int

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8095"),

		APIKey: os.Getenv("STRATA_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		OCREnabled:  envBool("OCR_ENABLED", false),
		OCRLanguage: envOr("OCR_LANGUAGE", "eng"),
		Workers:     envInt("WORKERS", 1),

		ReadTimeout:  envDuration("READ_TIMEOUT", 60*time.Second),
		WriteTimeout: envDuration("WRITE_TIMEOUT", 5*time.Minute),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 60 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Minute
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("STRATA_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
