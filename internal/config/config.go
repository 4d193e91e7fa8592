package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/tiagomuniz-ia/agendapro-final/pkg/config"
)

const defaultJWTSecret = "change-this-to-a-secure-secret"

// Config holds all configuration for the auth service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"3001"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"agendapro"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"agendapro_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"agendapro"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINS" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINS" envDefault:"30"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Session tokens
	JWTSecret          string `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	SessionTokenExpiry string `env:"SESSION_TOKEN_EXPIRY" envDefault:"24h"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load auth config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}

	if _, err := time.ParseDuration(cfg.SessionTokenExpiry); err != nil {
		return nil, fmt.Errorf("parse session token expiry %q: %w", cfg.SessionTokenExpiry, err)
	}

	// In non-development environments, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == defaultJWTSecret {
			return nil, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(cfg.JWTSecret))
		}
	}

	return cfg, nil
}

// TokenExpiry returns the parsed session token lifetime.
func (c *Config) TokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.SessionTokenExpiry)
	if err != nil {
		// Load validates the duration; this is unreachable after a successful Load.
		return 24 * time.Hour
	}
	return d
}
