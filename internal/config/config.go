package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store providers.
const (
	ProviderMongo   = "mongodb"
	ProviderSurreal = "surrealdb"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
}

// DatabaseConfig selects and configures the document-store provider.
type DatabaseConfig struct {
	Provider string // "mongodb" or "surrealdb"
	URI      string
	Name     string

	// SurrealDB-only settings.
	SurrealNamespace string
	SurrealUser      string
	SurrealPass      string
}

// AuthConfig holds token-signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	Auth           *AuthConfig
	AllowedOrigins []string
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
	}
}

// DefaultDatabaseConfig provides default database settings
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Provider:         ProviderMongo,
		URI:              "mongodb://localhost:27017",
		Name:             "athleteconnect",
		SurrealNamespace: "athleteconnect",
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env file from multiple possible locations
	envLocations := []string{
		".env",          // Current directory
		"../../.env",    // Project root when running from cmd/server
		"../../../.env", // Even higher directory
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		// Silent failure if no .env exists, which is fine
		_ = godotenv.Load()
	}

	serverConfig := DefaultConfig()

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			serverConfig.Port = port
		}
	}
	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}
	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}

	dbConfig := DefaultDatabaseConfig()

	if provider := os.Getenv("DB_PROVIDER"); provider != "" {
		dbConfig.Provider = provider
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		dbConfig.Name = name
	}

	switch dbConfig.Provider {
	case ProviderMongo:
		if uri := os.Getenv("MONGODB_URI"); uri != "" {
			dbConfig.URI = uri
		}
	case ProviderSurreal:
		dbConfig.URI = os.Getenv("SURREALDB_URL")
		if dbConfig.URI == "" {
			return nil, fmt.Errorf("SURREALDB_URL environment variable is required when DB_PROVIDER is surrealdb")
		}
		dbConfig.SurrealNamespace = getEnvOrDefault("SURREALDB_NAMESPACE", dbConfig.SurrealNamespace)
		dbConfig.SurrealUser = os.Getenv("SURREALDB_USER")
		dbConfig.SurrealPass = os.Getenv("SURREALDB_PASS")
	default:
		return nil, fmt.Errorf("unsupported DB_PROVIDER %q (expected %q or %q)", dbConfig.Provider, ProviderMongo, ProviderSurreal)
	}

	authConfig := &AuthConfig{
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  24 * time.Hour,
	}
	if authConfig.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		authConfig.TokenTTL = ttl
	}

	config := &Config{
		Server:         serverConfig,
		Database:       dbConfig,
		Auth:           authConfig,
		AllowedOrigins: []string{"*"},
		Debug:          false,
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
