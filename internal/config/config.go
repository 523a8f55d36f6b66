// Package config loads runtime settings from FITLOG_* environment variables,
// reading a .env file first when one is present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FITLOG_"

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config is the root configuration object. Keys are the variable names with
// the prefix removed and lowercased, e.g. FITLOG_DATABASE_URL -> database_url.
type Config struct {
	Env         string `koanf:"env" validate:"required"`
	Addr        string `koanf:"addr" validate:"required"`
	Store       string `koanf:"store" validate:"oneof=postgres memory"`
	DatabaseURL string `koanf:"database_url" validate:"required_if=Store postgres"`
	AutoMigrate bool   `koanf:"auto_migrate"`
	LogLevel    string `koanf:"log_level" validate:"oneof=trace debug info warn error"`

	// CORSAllowedOrigins is a comma-separated list; see AllowedOrigins.
	CORSAllowedOrigins string  `koanf:"cors_allowed_origins"`
	RateLimitRPS       float64 `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst     int     `koanf:"rate_limit_burst" validate:"gte=0"`

	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	DBMaxOpenConns    int           `koanf:"db_max_open_conns" validate:"gte=1"`
	DBMaxIdleConns    int           `koanf:"db_max_idle_conns" validate:"gte=0"`
	DBConnMaxLifetime time.Duration `koanf:"db_conn_max_lifetime" validate:"gte=0"`
}

// Default returns the configuration used for any variable left unset.
func Default() *Config {
	return &Config{
		Env:                "production",
		Addr:               ":8080",
		Store:              StorePostgres,
		AutoMigrate:        true,
		LogLevel:           "info",
		CORSAllowedOrigins: "*",
		RateLimitRPS:       20,
		RateLimitBurst:     40,
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		ShutdownTimeout:    30 * time.Second,
		DBMaxOpenConns:     10,
		DBMaxIdleConns:     5,
		DBConnMaxLifetime:  5 * time.Minute,
	}
}

// Load reads FITLOG_* variables over the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// AllowedOrigins splits CORSAllowedOrigins into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// IsLocal reports whether the service runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Env == "local"
}
