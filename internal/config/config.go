package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_ssl_mode"`
	DBPath     string `json:"db_path"`

	// Security configuration
	JWTSecret     string `json:"jwt_secret"`
	TokenTTLHours int    `json:"token_ttl_hours"`

	// Media storage configuration (disk or s3)
	MediaDriver  string `json:"media_driver"`
	MediaRoot    string `json:"media_root"`
	MediaBaseURL string `json:"media_base_url"`
	S3Bucket     string `json:"s3_bucket"`
	S3Region     string `json:"s3_region"`

	// API behaviour
	PageSize     int `json:"page_size"`
	RecipesLimit int `json:"recipes_limit"`

	// Logging configuration
	LogLevel string `json:"log_level"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], MediaDriver: %s, PageSize: %d, RecipesLimit: %d, LogLevel: %s, JWTSecret: [REDACTED]}",
		c.Port, c.Host, c.DBDriver, c.DBHost, c.DBName, c.DBUser, c.MediaDriver, c.PageSize, c.RecipesLimit, c.LogLevel)
}

// LoadConfig reads the configuration from environment variables and returns a Config struct.
// Returns an error if a required environment variable is missing or malformed.
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Port: port,
		Host: GetEnvWithDefault("APP_HOST", "localhost"),

		DBDriver:   GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBHost:     GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     GetEnvWithDefault("DB_PORT", "5432"),
		DBName:     GetEnvWithDefault("DB_NAME", "foodgram"),
		DBUser:     GetEnvWithDefault("DB_USER", "foodgram"),
		DBPassword: GetEnvWithDefault("DB_PASSWORD", "foodgram"),
		DBSSLMode:  GetEnvWithDefault("DB_SSL_MODE", "disable"),
		DBPath:     GetEnvWithDefault("DB_PATH", "foodgram.sqlite"),

		JWTSecret:     GetEnvWithDefault("JWT_SECRET", "secret"),
		TokenTTLHours: GetEnvAsType("TOKEN_TTL_HOURS", 24),

		MediaDriver:  GetEnvWithDefault("MEDIA_DRIVER", "disk"),
		MediaRoot:    GetEnvWithDefault("MEDIA_ROOT", "media"),
		MediaBaseURL: GetEnvWithDefault("MEDIA_BASE_URL", "/media"),
		S3Bucket:     GetEnvWithDefault("S3_BUCKET", ""),
		S3Region:     GetEnvWithDefault("S3_REGION", "us-east-1"),

		PageSize:     GetEnvAsType("PAGE_SIZE", 6),
		RecipesLimit: GetEnvAsType("RECIPES_LIMIT_DEFAULT", 3),

		LogLevel: GetEnvWithDefault("LOG_LEVEL", "info"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
