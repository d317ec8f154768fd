package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Auth       AuthConfig
	Escalation EscalationConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
}

// AuthConfig holds credential signing configuration
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int // credential lifetime; default 7 days
}

// EscalationConfig controls the priority-aging worker. Interval 0 disables
// the worker entirely.
type EscalationConfig struct {
	WorkerIntervalSeconds int // ESCALATION_WORKER_INTERVAL_SECONDS (0 = disabled)
	UnassignedAgeHours    int // ESCALATION_UNASSIGNED_AGE_HOURS before priority is raised
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "societydesk"),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("PORT", getEnv("SERVER_PORT", "8080")),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "societydesk-dev-secret-change-in-production"),
			TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 24*7),
		},
		Escalation: EscalationConfig{
			WorkerIntervalSeconds: getEnvInt("ESCALATION_WORKER_INTERVAL_SECONDS", 0),
			UnassignedAgeHours:    getEnvInt("ESCALATION_UNASSIGNED_AGE_HOURS", 24),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
