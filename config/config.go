package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration

	// Email Configuration (optional; welcome mail is skipped when SMTPHost is empty)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// Load reads configuration from the environment. There is deliberately no
// fallback for JWT_SECRET: starting with a guessable signing key is worse
// than not starting at all.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	ttlHours, _ := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "168"))
	if ttlHours <= 0 {
		ttlHours = 168
	}
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	return &Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/motor?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   secret,
		TokenTTL:    time.Duration(ttlHours) * time.Hour,

		// Email settings
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@motor-api.local"),
		FromName:     getEnv("FROM_NAME", "Motor API"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
