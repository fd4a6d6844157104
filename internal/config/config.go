package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the health service.
// Environment variables are parsed from the HEALTHVAULT_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage Configuration
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/healthvault.db"`

	// Completion provider configuration. Model, token cap and temperature
	// apply to every provider.
	AIProvider       string        `envconfig:"AI_PROVIDER" default:"openai"`
	AIBaseURL        string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIAPIKey         string        `envconfig:"AI_API_KEY" default:""`
	AIModel          string        `envconfig:"AI_MODEL" default:"gpt-4"`
	AIMaxTokens      int           `envconfig:"AI_MAX_TOKENS" default:"1000"`
	AITemperature    float32       `envconfig:"AI_TEMPERATURE" default:"0.7"`
	AIRequestTimeout time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"30s"`

	// Per-user quota for AI summary generation (fixed window).
	AIRateLimit  int           `envconfig:"AI_RATE_LIMIT" default:"10"`
	AIRateWindow time.Duration `envconfig:"AI_RATE_WINDOW" default:"1h"`

	// Dev token map: "token=userId,token2=userId2"
	AuthTokens string `envconfig:"AUTH_TOKENS" default:""`
}

// ResolveDefaults validates driver and provider selections.
func (c *Config) ResolveDefaults() error {
	allowedDB := map[string]bool{"sqlite": true, "postgres": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN required when DB_DRIVER=postgres")
	}

	allowedProvider := map[string]bool{"openai": true, "gemini": true}
	if !allowedProvider[c.AIProvider] {
		return fmt.Errorf("unsupported AI_PROVIDER: %s", c.AIProvider)
	}

	if c.AIRateLimit <= 0 {
		return fmt.Errorf("AI_RATE_LIMIT must be positive, got %d", c.AIRateLimit)
	}
	if c.AIRateWindow <= 0 {
		return fmt.Errorf("AI_RATE_WINDOW must be positive, got %s", c.AIRateWindow)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with HEALTHVAULT_
// Example: HEALTHVAULT_HTTP_PORT, HEALTHVAULT_AI_MODEL
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("HEALTHVAULT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("db_driver", cfg.DBDriver).
		Str("ai_provider", cfg.AIProvider).
		Str("ai_model", cfg.AIModel).
		Int("ai_max_tokens", cfg.AIMaxTokens).
		Float32("ai_temperature", cfg.AITemperature).
		Int("ai_rate_limit", cfg.AIRateLimit).
		Dur("ai_rate_window", cfg.AIRateWindow).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:      EnvTesting,
		HTTPPort:         8080,
		DBDriver:         "sqlite",
		SQLitePath:       ":memory:",
		AIProvider:       "openai",
		AIBaseURL:        "http://localhost:9999/v1",
		AIModel:          "gpt-4",
		AIMaxTokens:      1000,
		AITemperature:    0.7,
		AIRequestTimeout: 30 * time.Second,
		AIRateLimit:      10,
		AIRateWindow:     time.Hour,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
