// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Classifier ClassifierConfig
	Database   DatabaseConfig
	Storage    StorageConfig
	Upload     UploadConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host                 string `env:"SERVER_HOST"`
	Port                 int    `env:"SERVER_PORT"`
	ReadTimeoutSeconds   int    `env:"SERVER_READ_TIMEOUT_SECONDS"`
	WriteTimeoutSeconds  int    `env:"SERVER_WRITE_TIMEOUT_SECONDS"`
	IdleTimeoutSeconds   int    `env:"SERVER_IDLE_TIMEOUT_SECONDS"`
	BodyLimit            string `env:"SERVER_BODY_LIMIT"`
	EnableCORS           bool   `env:"SERVER_ENABLE_CORS"`
	AllowOrigins         string `env:"SERVER_ALLOW_ORIGINS"`
	EnableRequestLogging bool   `env:"SERVER_ENABLE_REQUEST_LOGGING"`
	EnableCompression    bool   `env:"SERVER_ENABLE_COMPRESSION"`
}

// ClassifierConfig configures the vision classifier backend.
type ClassifierConfig struct {
	Provider       string `env:"CLASSIFIER_PROVIDER"` // "openai" or "stub"
	Model          string `env:"CLASSIFIER_MODEL"`
	Prompt         string `env:"CLASSIFIER_PROMPT"`
	TimeoutSeconds int    `env:"CLASSIFIER_TIMEOUT_SECONDS"`
	RulesPath      string `env:"CLASSIFIER_RULES_PATH"` // optional YAML label rules
}

// DatabaseConfig configures the Postgres record store.
// An empty URL disables database persistence.
type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL"`
	PoolSize int    `env:"DATABASE_POOL_SIZE"`
}

// StorageConfig configures where original image bytes are kept.
type StorageConfig struct {
	Backend     string `env:"STORAGE_BACKEND"` // "s3", "local" or "disabled"
	S3Bucket    string `env:"STORAGE_S3_BUCKET"`
	S3Region    string `env:"STORAGE_S3_REGION"`
	S3Endpoint  string `env:"STORAGE_S3_ENDPOINT"` // optional, for S3-compatible stores
	S3PathStyle bool   `env:"STORAGE_S3_PATH_STYLE"`
	LocalDir    string `env:"STORAGE_LOCAL_DIR"`
}

// UploadConfig constrains accepted uploads.
type UploadConfig struct {
	MaxImageBytes int64    `env:"UPLOAD_MAX_IMAGE_BYTES"`
	AllowedTypes  []string `env:"UPLOAD_ALLOWED_TYPES" envSeparator:","`
}

// Defaults returns a configuration with preset values. These are overridden
// by .env and environment variables.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                 "0.0.0.0",
			Port:                 8080,
			ReadTimeoutSeconds:   30,
			WriteTimeoutSeconds:  60,
			IdleTimeoutSeconds:   120,
			BodyLimit:            "15M",
			EnableCORS:           true,
			AllowOrigins:         "*",
			EnableRequestLogging: true,
			EnableCompression:    true,
		},
		Classifier: ClassifierConfig{
			Provider:       "openai",
			Model:          "gpt-4o",
			TimeoutSeconds: 30,
		},
		Database: DatabaseConfig{
			PoolSize: 4,
		},
		Storage: StorageConfig{
			Backend:  "disabled",
			S3Region: "us-east-1",
			LocalDir: "data/uploads",
		},
		Upload: UploadConfig{
			MaxImageBytes: 10 * 1024 * 1024,
			AllowedTypes:  []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		},
	}
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Classifier.Provider {
	case "openai", "stub":
	default:
		return fmt.Errorf("unknown classifier provider: %q", c.Classifier.Provider)
	}

	switch c.Storage.Backend {
	case "s3":
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("storage backend s3 requires STORAGE_S3_BUCKET")
		}
	case "local":
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("storage backend local requires STORAGE_LOCAL_DIR")
		}
	case "disabled":
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}

	if c.Upload.MaxImageBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_IMAGE_BYTES must be positive")
	}
	if len(c.Upload.AllowedTypes) == 0 {
		return fmt.Errorf("UPLOAD_ALLOWED_TYPES must not be empty")
	}

	return nil
}

// GetServerAddr returns the listen address in host:port form.
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AllowedOrigins returns the configured CORS origins as a cleaned list.
func (c *Config) AllowedOrigins() []string {
	origins := strings.Split(c.Server.AllowOrigins, ",")
	cleaned := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cleaned = append(cleaned, o)
		}
	}
	if len(cleaned) == 0 {
		cleaned = []string{"*"}
	}
	return cleaned
}

// TypeAllowed reports whether the given MIME type is accepted for upload.
func (c *Config) TypeAllowed(contentType string) bool {
	for _, t := range c.Upload.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}
