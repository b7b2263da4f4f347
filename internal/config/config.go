package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton, set by Load.
var globalConfig *Config

// Config holds all environment backed configuration for the chat API.
type Config struct {
	// HTTP Server
	HTTPPort    int           `env:"HTTP_PORT" envDefault:"8000"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// Auth0
	Auth0IssuerBaseURL  string        `env:"AUTH0_ISSUER_BASE_URL,notEmpty"`
	Auth0Audience       string        `env:"AUTH0_AUDIENCE,notEmpty"`
	JWKSURL             string        `env:"JWKS_URL"`
	RefreshJWKSInterval time.Duration `env:"JWKS_REFRESH_INTERVAL" envDefault:"5m"`
	ClockSkew           time.Duration `env:"AUTH_CLOCK_SKEW" envDefault:"30s"`

	// PostgreSQL
	DatabaseURL       string        `env:"DATABASE_URL,notEmpty"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`

	// Model providers
	ChatProvider    string `env:"CHAT_PROVIDER" envDefault:"together"`
	OllamaBaseURL   string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaModel     string `env:"OLLAMA_MODEL" envDefault:"llama3"`
	TogetherBaseURL string `env:"TOGETHER_BASE_URL" envDefault:"https://api.together.xyz/v1"`
	TogetherAPIKey  string `env:"TOGETHER_API_KEY"`
	TogetherModel   string `env:"TOGETHER_MODEL" envDefault:"google/gemma-3-27b-it"`
	AWSRegion       string `env:"AWS_REGION" envDefault:"us-east-1"`
	BedrockModelID  string `env:"BEDROCK_MODEL_ID"`

	// Summarization
	SummaryProvider string `env:"SUMMARY_PROVIDER" envDefault:"together"`
	SummaryMaxWords int    `env:"SUMMARY_MAX_WORDS" envDefault:"10"`

	// Session continuity
	SessionSimilarityThreshold float64 `env:"SESSION_SIMILARITY_THRESHOLD" envDefault:"0.3"`

	// Retention
	RetentionDays int    `env:"RETENTION_DAYS" envDefault:"30"`
	PruneSchedule string `env:"PRUNE_SCHEDULE" envDefault:"0 3 * * *"`

	// Rate limiting
	RateLimitPerMinute float64 `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"djigbo-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"djigbo"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := url.ParseRequestURI(cfg.Auth0IssuerBaseURL); err != nil {
		return nil, fmt.Errorf("invalid AUTH0_ISSUER_BASE_URL: %w", err)
	}

	if cfg.JWKSURL != "" {
		if _, err := url.ParseRequestURI(cfg.JWKSURL); err != nil {
			return nil, fmt.Errorf("invalid JWKS_URL: %w", err)
		}
	}

	if cfg.SessionSimilarityThreshold < 0 || cfg.SessionSimilarityThreshold > 1 {
		return nil, errors.New("SESSION_SIMILARITY_THRESHOLD must be within [0,1]")
	}

	if cfg.RetentionDays <= 0 {
		return nil, errors.New("RETENTION_DAYS must be positive")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	globalConfig = cfg
	return cfg, nil
}

// GetGlobal returns the loaded configuration, or nil before Load succeeded.
func GetGlobal() *Config {
	return globalConfig
}

// Issuer returns the expected token issuer, normalized with the trailing slash
// Auth0 emits in the iss claim.
func (c *Config) Issuer() string {
	if strings.HasSuffix(c.Auth0IssuerBaseURL, "/") {
		return c.Auth0IssuerBaseURL
	}
	return c.Auth0IssuerBaseURL + "/"
}

// ResolveJWKSURL returns the JWKS endpoint, deriving the Auth0 well-known
// location when JWKS_URL is not set explicitly.
func (c *Config) ResolveJWKSURL() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}
	return strings.TrimSuffix(c.Auth0IssuerBaseURL, "/") + "/.well-known/jwks.json"
}

// IsProduction reports whether the service runs in a production-like environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
