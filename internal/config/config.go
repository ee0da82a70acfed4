package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every knob the server needs. External service credentials
// are injected here once at startup and passed down explicitly; nothing
// reads the environment after LoadConfig returns.
type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Authentication
	JWTSecret       string        `env:"JWT_SECRET" required:"true"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" default:"168h"`

	// Redis cache
	RedisAddr     string        `env:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" default:"1h"`

	// Roboflow inference
	RoboflowAPIURL string `env:"ROBOFLOW_API_URL" default:"https://serverless.roboflow.com"`
	RoboflowAPIKey string `env:"ROBOFLOW_API_KEY" required:"true"`
	BirdModelID    string `env:"BIRD_MODEL_ID" default:"bird-species-detector/851"`
	InsectModelID  string `env:"INSECT_MODEL_ID" default:"insect_detect_classification_v2/1"`
	DiseaseModelID string `env:"DISEASE_MODEL_ID" default:"plant-disease-classification/2"`
	LeafModelID    string `env:"LEAF_MODEL_ID" default:"leaf-validation/1"`

	// DeepSeek generative text
	DeepSeekAPIURL string `env:"DEEPSEEK_API_URL" default:"https://api.deepseek.com"`
	DeepSeekAPIKey string `env:"DEEPSEEK_API_KEY"`
	DeepSeekModel  string `env:"DEEPSEEK_MODEL" default:"deepseek-chat"`

	// File storage
	MediaRoot     string `env:"MEDIA_ROOT" default:"./media"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" default:"10485760"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"debug"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; system env vars still apply.
	if err := godotenv.Load(".env"); err != nil {
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

	// Authentication
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RefreshTokenTTL, "REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	// Redis
	if err := loadEnvString(&config.RedisAddr, "REDIS_ADDR", "localhost:6379"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.CacheTTL, "CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}

	// Roboflow
	if err := loadEnvString(&config.RoboflowAPIURL, "ROBOFLOW_API_URL", "https://serverless.roboflow.com"); err != nil {
		return nil, err
	}
	if err := loadEnvStringRequired(&config.RoboflowAPIKey, "ROBOFLOW_API_KEY"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.BirdModelID, "BIRD_MODEL_ID", "bird-species-detector/851"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.InsectModelID, "INSECT_MODEL_ID", "insect_detect_classification_v2/1"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DiseaseModelID, "DISEASE_MODEL_ID", "plant-disease-classification/2"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LeafModelID, "LEAF_MODEL_ID", "leaf-validation/1"); err != nil {
		return nil, err
	}

	// DeepSeek
	if err := loadEnvString(&config.DeepSeekAPIURL, "DEEPSEEK_API_URL", "https://api.deepseek.com"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DeepSeekAPIKey, "DEEPSEEK_API_KEY", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DeepSeekModel, "DEEPSEEK_MODEL", "deepseek-chat"); err != nil {
		return nil, err
	}

	// File storage
	if err := loadEnvString(&config.MediaRoot, "MEDIA_ROOT", "./media"); err != nil {
		return nil, err
	}
	if err := loadEnvInt64(&config.MaxUploadSize, "MAX_UPLOAD_SIZE", 10*1024*1024); err != nil {
		return nil, err
	}

	// Development
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "debug"); err != nil {
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

func loadEnvInt64(target *int64, key string, defaultValue int64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
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
		*target = strings.Split(value, ",")
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}

	if c.MaxUploadSize <= 0 {
		errors = append(errors, "MAX_UPLOAD_SIZE must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
