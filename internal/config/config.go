package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DriverFile  = "file"
	DriverMySQL = "mysql"

	devJWTSecret = "dev-secret-change-in-production"
)

type Config struct {
	Host           string
	Port           string
	Env            string
	StoreDriver    string
	StorePath      string
	DatabaseDSN    string
	JWTSecret      string
	JWTExpiry      time.Duration
	PassphraseHash string
	DefaultLength  int
	LogLevel       slog.Level
}

// Addr returns the host:port the API listens on.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// AuthEnabled reports whether the entry routes require a token.
func (c Config) AuthEnabled() bool {
	return c.PassphraseHash != ""
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse reads configuration from the environment without checking that the
// store settings are usable. Callers that override fields must call Validate.
func Parse() (Config, error) {
	cfg := Config{
		Host:           getEnv("HOST", "127.0.0.1"),
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", DriverFile)),
		StorePath:      getEnv("STORE_PATH", defaultStorePath()),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		PassphraseHash: getEnv("PASSPHRASE_HASH", ""),
	}

	var err error
	if cfg.JWTExpiry, err = time.ParseDuration(getEnv("JWT_EXPIRY", "12h")); err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRY: %w", err)
	}
	if cfg.DefaultLength, err = strconv.Atoi(getEnv("DEFAULT_LENGTH", "12")); err != nil {
		return Config{}, fmt.Errorf("DEFAULT_LENGTH: %w", err)
	}
	if cfg.DefaultLength < 0 {
		return Config{}, errors.New("DEFAULT_LENGTH must not be negative")
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// Validate checks the store driver settings and the production JWT secret.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverFile:
		if c.StorePath == "" {
			return errors.New("STORE_PATH must be set when no home directory is available")
		}
	case DriverMySQL:
		if c.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN must be set for the mysql store driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.Env == "production" && c.AuthEnabled() && c.JWTSecret == devJWTSecret {
		return errors.New("JWT_SECRET must be set in production environment")
	}

	return nil
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".passgen", "passwords.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
