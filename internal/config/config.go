// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	TokenDuration time.Duration

	// SweepSchedule is a cron spec for the invitation expiry sweep.
	SweepSchedule string

	// SMTP settings for invitation notification mail. Mail is disabled
	// when SMTPHost is empty.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBPath:        getEnv("DB_PATH", "./data/billetera.db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		SweepSchedule: getEnv("SWEEP_SCHEDULE", "@hourly"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "no-reply@billetera.app"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	duration, err := time.ParseDuration(getEnv("TOKEN_DURATION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_DURATION: %w", err)
	}
	cfg.TokenDuration = duration

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
