package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Client view fallback policies for records without content_simple
const (
	FallbackNone    = "none"
	FallbackContent = "content"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string         `env:"APP_MODE" envDefault:"dev"`
	Port     string         `env:"PORT" envDefault:"3000"`
	LogLevel string         `env:"LOG_LEVEL" envDefault:"info"`
	Database DatabaseConfig `envPrefix:"DB_"`
	JWT      JWTConfig
	Security SecurityConfig
	View     ViewConfig
	Ping     PingConfig
	Seed     SeedConfig

	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	envFileMissing bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string `env:"DRIVER" envDefault:"mysql"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"3306"`
	User     string `env:"USER" envDefault:"root"`
	Password string `env:"PASS"`
	DBName   string `env:"NAME" envDefault:"ma_helper"`
	// DSN is used as-is by the sqlite driver (file path or ":memory:")
	DSN string `env:"DSN" envDefault:"ma-helper.db"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string `env:"JWT_SECRET" envDefault:"default_secret"`
	AccessTokenMins int    `env:"ACCESS_TOKEN_MINUTES" envDefault:"480"`
}

// SecurityConfig holds credential and route protection settings
type SecurityConfig struct {
	// AuthRequired makes engineer and admin routes reject requests without a token
	AuthRequired bool `env:"AUTH_REQUIRED" envDefault:"false"`
	BcryptCost   int  `env:"BCRYPT_COST" envDefault:"12"`
}

// ViewConfig controls the client-facing maintenance view
type ViewConfig struct {
	ContentFallback string `env:"CLIENT_VIEW_FALLBACK" envDefault:"none"`
}

// PingConfig controls the periodic self health-check
type PingConfig struct {
	Enabled    bool   `env:"PING_ENABLED" envDefault:"false"`
	ServiceURL string `env:"SERVICE_URL" envDefault:"http://localhost:3000"`
	Schedule   string `env:"PING_SCHEDULE" envDefault:"@every 5m"`
}

// SeedConfig controls demo data seeding at startup
type SeedConfig struct {
	OnStart bool `env:"SEED_ON_START" envDefault:"true"`
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	envFileErr := godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if envFileErr != nil {
		cfg.envFileMissing = true
	}

	return cfg, nil
}

// Parse builds a Config from the current environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing env config: %w", err)
	}

	// Trim spaces for Windows compatibility
	cfg.AppMode = strings.TrimSpace(cfg.AppMode)
	cfg.View.ContentFallback = strings.ToLower(strings.TrimSpace(cfg.View.ContentFallback))
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.AppMode != "dev" && c.AppMode != "prod" {
		errs = append(errs, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", c.AppMode))
	}
	if c.Database.Driver != "mysql" && c.Database.Driver != "sqlite" {
		errs = append(errs, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'sqlite')", c.Database.Driver))
	}
	if c.View.ContentFallback != FallbackNone && c.View.ContentFallback != FallbackContent {
		errs = append(errs, fmt.Errorf("invalid CLIENT_VIEW_FALLBACK: '%s' (must be 'none' or 'content')", c.View.ContentFallback))
	}
	if c.JWT.AccessTokenMins <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_MINUTES must be positive"))
	}
	if c.IsProd() && c.JWT.Secret == "default_secret" {
		errs = append(errs, errors.New("JWT_SECRET must be set in prod mode"))
	}
	return errors.Join(errs...)
}

// EnvFileMissing reports whether Load ran without a .env file
func (c *Config) EnvFileMissing() bool {
	return c.envFileMissing
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// FallbackToContent reports whether the client view shows detailed content
// when a record has no summary
func (c *Config) FallbackToContent() bool {
	return c.View.ContentFallback == FallbackContent
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://mazipsa.netlify.app"
	}
	return c.AllowedOrigins
}
