// Package config loads runtime settings from the environment.
// A .env file in the working directory is applied first when present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Location selects which database file the application uses.
type Location string

const (
	LocationProduction Location = "production"
	LocationTest       Location = "test"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	productionDBFile = "taskmanager.db"
	testDBFile       = "test_taskmanager.db"
	defaultDataDir   = "data"
	defaultPort      = 3000
	defaultCost      = 12
	minBcryptCost    = 4
	maxBcryptCost    = 31
)

// Database holds database connection settings.
type Database struct {
	Location Location
	Driver   string
	Path     string
	DSN      string
	Debug    bool
}

// JWT holds token signing settings.
type JWT struct {
	SecretKey            string
	Issuer               string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
}

// RateLimit holds limits for the public auth endpoints.
type RateLimit struct {
	Max       int
	Window    time.Duration
	RedisAddr string
}

// Config is the complete application configuration.
type Config struct {
	Database   Database
	JWT        JWT
	BcryptCost int
	HTTPPort   int
	RateLimit  RateLimit
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	location := Location(getenvDefault("DB_LOCATION", string(LocationProduction)))
	if location != LocationProduction && location != LocationTest {
		return nil, fmt.Errorf("invalid DB_LOCATION %q: must be %q or %q", location, LocationProduction, LocationTest)
	}

	driver := getenvDefault("DB_DRIVER", DriverSQLite)
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("invalid DB_DRIVER %q", driver)
	}

	cfg := &Config{
		Database: Database{
			Location: location,
			Driver:   driver,
			Path:     getenvDefault("DB_PATH", DefaultPath(location)),
			DSN:      os.Getenv("DATABASE_URL"),
			Debug:    os.Getenv("DB_DEBUG") == "true",
		},
		JWT: JWT{
			SecretKey:            getenvDefault("JWT_SECRET_KEY", "change-me-in-production"),
			Issuer:               getenvDefault("JWT_ISSUER", "task-manager"),
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 7 * 24 * time.Hour,
		},
		RateLimit: RateLimit{
			RedisAddr: os.Getenv("REDIS_ADDR"),
		},
	}

	if driver == DriverPostgres && cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
	}

	var err error
	if cfg.BcryptCost, err = getenvInt("BCRYPT_COST", defaultCost); err != nil {
		return nil, err
	}
	if cfg.BcryptCost < minBcryptCost || cfg.BcryptCost > maxBcryptCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", minBcryptCost, maxBcryptCost)
	}
	if cfg.HTTPPort, err = getenvInt("HTTP_PORT", defaultPort); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Max, err = getenvInt("AUTH_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Max < 1 {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT must be at least 1")
	}
	if cfg.RateLimit.Window, err = getenvDuration("AUTH_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.JWT.AccessTokenDuration, err = getenvDuration("JWT_ACCESS_TTL", cfg.JWT.AccessTokenDuration); err != nil {
		return nil, err
	}
	if cfg.JWT.RefreshTokenDuration, err = getenvDuration("JWT_REFRESH_TTL", cfg.JWT.RefreshTokenDuration); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultPath returns the SQLite file used for a database location.
func DefaultPath(location Location) string {
	if location == LocationTest {
		return filepath.Join(defaultDataDir, testDBFile)
	}
	return filepath.Join(defaultDataDir, productionDBFile)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
