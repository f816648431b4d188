package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	ImageHost   ImageHostConfig
	CORS        CORSConfig
	Bootstrap   BootstrapConfig
	Logging     LoggingConfig
	Environment string
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
}

type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
}

// ImageHostConfig points at the external image hosting provider that
// uploaded images are relayed to. Folder namespaces all uploads from
// this deployment on the provider side.
type ImageHostConfig struct {
	BaseURL string
	APIKey  string
	Folder  string
	Timeout time.Duration
}

type CORSConfig struct {
	AllowAllOrigins bool
	AllowedOrigins  []string
}

// BootstrapConfig seeds the initial super-admin account at startup so a
// fresh deployment has someone who can approve registrations.
type BootstrapConfig struct {
	Name     string
	Email    string
	Password string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvInt("SERVER_PORT", 8080),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 25),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		},
		ImageHost: ImageHostConfig{
			BaseURL: getEnv("IMAGE_HOST_URL", ""),
			APIKey:  getEnv("IMAGE_HOST_API_KEY", ""),
			Folder:  getEnv("IMAGE_HOST_FOLDER", "lnm-board"),
			Timeout: time.Duration(getEnvInt("IMAGE_HOST_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Bootstrap: BootstrapConfig{
			Name:     getEnv("SUPER_ADMIN_NAME", ""),
			Email:    getEnv("SUPER_ADMIN_EMAIL", ""),
			Password: getEnv("SUPER_ADMIN_PASSWORD", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	cfg.CORS = loadCORS(cfg.Environment)

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func loadCORS(environment string) CORSConfig {
	raw := getEnv("CORS_ALLOWED_ORIGINS", "")
	if raw == "" {
		return CORSConfig{AllowAllOrigins: environment != "production"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return CORSConfig{AllowedOrigins: origins}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
