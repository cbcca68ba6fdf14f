package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AdminJWTSecret string // Required: shared secret for verifying admin tokens
	Issuer         string // Optional: expected issuer claim on admin tokens (default: gatekeep)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./gatekeep.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Consistency sweep interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		AdminJWTSecret:       os.Getenv("GATEKEEP_ADMIN_JWT_SECRET"),
		Issuer:               getEnvOrDefault("GATEKEEP_ISSUER", "gatekeep"),
		DatabaseFile:         getEnvOrDefault("GATEKEEP_DATABASE_FILE", "gatekeep.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
