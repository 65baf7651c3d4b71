package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type LoggerConfig struct {
	Mode     string // "production" or "development"
	Filename string // empty disables the rotated log file
}

type Config struct {
	Port        string
	StoreDriver string
	DatabaseURL string
	SeedCatalog bool
	FrontendURL string
	Cookie      CookieConfig
	RateLimit   RateLimitConfig
	Logger      LoggerConfig
}

// Defaults returns the configuration used when no environment is set.
func Defaults() Config {
	return Config{
		Port:        "8080",
		StoreDriver: DriverMemory,
		SeedCatalog: true,
		FrontendURL: "http://localhost:3000",
		Cookie: CookieConfig{
			MaxAge: 30 * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Requests: 120,
			Window:   time.Minute,
		},
		Logger: LoggerConfig{
			Mode: "development",
		},
	}
}

func LoadEnv() error {
	// A missing .env is fine: in production the variables are set directly.
	_ = godotenv.Load()
	return nil
}

// Load builds a Config from the environment on top of Defaults.
func Load() (Config, error) {
	cfg := Defaults()
	var err error

	cfg.Port = GetEnv("PORT", cfg.Port)
	cfg.StoreDriver = GetEnv("STORE_DRIVER", cfg.StoreDriver)
	cfg.DatabaseURL = GetEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.FrontendURL = GetEnv("FRONTEND_URL", cfg.FrontendURL)
	cfg.Logger.Mode = GetEnv("LOG_MODE", cfg.Logger.Mode)
	cfg.Logger.Filename = GetEnv("LOG_FILE", cfg.Logger.Filename)

	if v := os.Getenv("SEED_CATALOG"); v != "" {
		if cfg.SeedCatalog, err = cast.ToBoolE(v); err != nil {
			return cfg, fmt.Errorf("SEED_CATALOG: %w", err)
		}
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		if cfg.Cookie.Secure, err = cast.ToBoolE(v); err != nil {
			return cfg, fmt.Errorf("COOKIE_SECURE: %w", err)
		}
	}
	if v := os.Getenv("CART_COOKIE_MAX_AGE"); v != "" {
		if cfg.Cookie.MaxAge, err = cast.ToDurationE(v); err != nil {
			return cfg, fmt.Errorf("CART_COOKIE_MAX_AGE: %w", err)
		}
	}
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		if cfg.RateLimit.Requests, err = cast.ToIntE(v); err != nil {
			return cfg, fmt.Errorf("RATE_LIMIT_REQUESTS: %w", err)
		}
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		if cfg.RateLimit.Window, err = cast.ToDurationE(v); err != nil {
			return cfg, fmt.Errorf("RATE_LIMIT_WINDOW: %w", err)
		}
	}

	return cfg, nil
}

// ValidateEnv checks that critical settings are usable.
// Returns an error if the application cannot start with cfg.
func ValidateEnv(cfg Config) error {
	switch cfg.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("critical environment variables not set: [DATABASE_URL]")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.Cookie.MaxAge <= 0 {
		return fmt.Errorf("CART_COOKIE_MAX_AGE must be positive, got %s", cfg.Cookie.MaxAge)
	}
	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d per %s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	// Non-critical settings - log warnings but don't fail
	if cfg.StoreDriver == DriverSQLite && cfg.DatabaseURL == "" {
		zap.S().Warn("DATABASE_URL not set - sqlite store will use luxreplica.db")
	}
	if os.Getenv("FRONTEND_URL") == "" {
		zap.S().Warnf("FRONTEND_URL not set - CORS allows %s only", cfg.FrontendURL)
	}
	if cfg.StoreDriver == DriverMemory && !cfg.SeedCatalog {
		zap.S().Warn("SEED_CATALOG disabled with the memory store - the catalog will be empty")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
