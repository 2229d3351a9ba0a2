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
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Session  SessionConfig
	Quotes   QuotesConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SessionConfig holds session token configuration.
// Key must be a base64-encoded 32-byte fernet key.
type SessionConfig struct {
	Key string
	TTL time.Duration
}

// QuotesConfig holds market quote retrieval configuration.
// RefreshSpec is a cron expression for the background quote refresh job.
// MaxAge is how long a cached quote stays fresh; Timeout bounds a single
// upstream price lookup.
type QuotesConfig struct {
	RefreshSpec string
	MaxAge      time.Duration
	Timeout     time.Duration
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/stockx.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Session: SessionConfig{
			Key: getEnv("SESSION_KEY", ""),
			TTL: getEnvDuration("SESSION_TTL_MINUTES", 12*time.Hour),
		},
		Quotes: QuotesConfig{
			RefreshSpec: getEnv("QUOTE_REFRESH_CRON", "*/15 9-17 * * 1-5"),
			MaxAge:      getEnvDuration("QUOTE_MAX_AGE_MINUTES", 15*time.Minute),
			Timeout:     getEnvSeconds("QUOTE_TIMEOUT_SECONDS", 10*time.Second),
		},
	}

	if config.Session.Key == "" {
		return nil, fmt.Errorf("SESSION_KEY is required")
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvDuration reads an environment variable holding a number of minutes
// or returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	minutes, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return time.Duration(minutes) * time.Minute
}

// getEnvSeconds reads an environment variable holding a number of seconds
// or returns a default value.
func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
