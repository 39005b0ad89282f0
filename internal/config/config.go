package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv    string `env:"GO_ENV" default:"development"`
	HTTPPort int    `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Authentication
	JWTSecret       string        `env:"JWT_SECRET" required:"true"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" default:"168h"`

	// Redis (rate limiting); empty URL falls back to in-process limiting
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Auth route rate limiting
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" default:"10"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" default:"1m"`

	// Object storage (uploads); empty endpoint disables the upload routes
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" default:"epicode-uploads"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" default:"false"`
	MinioBaseURL   string `env:"MINIO_BASE_URL"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"info"`
	LogFormat   string   `env:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		// missing .env is fine: system env vars still apply
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}

	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RefreshTokenTTL, "REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.RedisURL, "REDIS_URL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}

	if err := loadEnvInt(&config.AuthRateLimit, "AUTH_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AuthRateWindow, "AUTH_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.MinioEndpoint, "MINIO_ENDPOINT", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.MinioAccessKey, "MINIO_ACCESS_KEY", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.MinioSecretKey, "MINIO_SECRET_KEY", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.MinioBucket, "MINIO_BUCKET", "epicode-uploads"); err != nil {
		return nil, err
	}
	if err := loadEnvBool(&config.MinioUseSSL, "MINIO_USE_SSL", false); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.MinioBaseURL, "MINIO_BASE_URL", ""); err != nil {
		return nil, err
	}

	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}
	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"}); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i, v := range parts {
			parts[i] = strings.TrimSpace(v)
		}
		*target = parts
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration.
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET must be at least 32 characters long")
	}

	if c.AuthRateLimit < 1 {
		errors = append(errors, "AUTH_RATE_LIMIT must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
