package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port           string
	DatabaseURL    string
	RedisURL       string
	Environment    string
	JWTSecret      string
	PushServiceURL string
}

// New creates a new configuration from environment variables
func New() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    buildDatabaseURL(),
		RedisURL:       os.Getenv("REDIS_URL"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret"),
		PushServiceURL: getEnv("PUSH_SERVICE_URL", "http://push-service:8085"),
	}
}

// buildDatabaseURL constructs the database URL from individual components
// unless DATABASE_URL is set explicitly.
func buildDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "wishlist")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, dbname, sslmode)
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
