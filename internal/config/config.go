// Package config provides application configuration management with support for command-line flags, environment variables, .env files and an optional TOML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default provider endpoints.
const (
	DefaultNagerBaseURL        = "https://date.nager.at/api/v3"
	DefaultCountriesNowBaseURL = "https://countriesnow.space/api/v0.1/countries"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Providers ProvidersConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed origins (default: *)
}

// DatabaseConfig selects and locates the calendar store.
type DatabaseConfig struct {
	Driver string // sqlite or postgres
	Path   string // SQLite database file
	DSN    string // PostgreSQL connection string
}

// ProvidersConfig holds the external API endpoints. It is passed to the
// provider clients at construction.
type ProvidersConfig struct {
	NagerBaseURL        string
	CountriesNowBaseURL string
	Timeout             time.Duration
}

// fileConfig mirrors the optional TOML config file. Its values sit between
// the .env file and the built-in defaults.
type fileConfig struct {
	Environment string `toml:"environment"`
	LogLevel    string `toml:"log_level"`
	Server      struct {
		Port         string   `toml:"port"`
		ReadTimeout  string   `toml:"read_timeout"`
		WriteTimeout string   `toml:"write_timeout"`
		IdleTimeout  string   `toml:"idle_timeout"`
		CORSOrigins  []string `toml:"cors_origins"`
	} `toml:"server"`
	Database struct {
		Driver string `toml:"driver"`
		Path   string `toml:"path"`
		DSN    string `toml:"dsn"`
	} `toml:"database"`
	Providers struct {
		NagerBaseURL        string `toml:"nager_base_url"`
		CountriesNowBaseURL string `toml:"countries_now_base_url"`
		Timeout             string `toml:"timeout"`
	} `toml:"providers"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. TOML file named by --config or CONFIG_FILE.
// 5. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("calsync", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	envFile := fs.String("env-file", ".env", "Path to .env file")
	configFile := fs.String("config", "", "Path to TOML config file")

	// Server flags
	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated allowed CORS origins (default: *)")

	// Database flags
	dbDriver := fs.String("db-driver", "", "Database driver: sqlite or postgres (default: sqlite)")
	dbPath := fs.String("db-path", "", "SQLite database path (default: ~/.calsync/calsync.db)")
	dbDSN := fs.String("db-dsn", "", "PostgreSQL DSN")

	// Provider flags
	nagerURL := fs.String("nager-base-url", "", "Nager.Date API base URL")
	countriesNowURL := fs.String("countries-now-base-url", "", "CountriesNow API base URL")
	providerTimeout := fs.String("provider-timeout", "", "Outbound API request timeout (default: 10s)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Missing .env is fine; godotenv never overrides variables already set.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", *envFile, err)
	}

	var file fileConfig
	if path := getConfigValue(*configFile, "CONFIG_FILE", ""); path != "" {
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", fallback(file.Environment, "development")),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", fallback(file.LogLevel, "info")),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", fallback(file.Server.Port, "8080")),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getConfigValue(*dbDriver, "DATABASE_DRIVER", fallback(file.Database.Driver, DriverSQLite))),
			Path:   getConfigValue(*dbPath, "DATABASE_PATH", file.Database.Path),
			DSN:    getConfigValue(*dbDSN, "DATABASE_DSN", file.Database.DSN),
		},
		Providers: ProvidersConfig{
			NagerBaseURL:        strings.TrimRight(getConfigValue(*nagerURL, "NAGER_API_BASE_URL", fallback(file.Providers.NagerBaseURL, DefaultNagerBaseURL)), "/"),
			CountriesNowBaseURL: strings.TrimRight(getConfigValue(*countriesNowURL, "COUNTRIES_NOW_API_BASE_URL", fallback(file.Providers.CountriesNowBaseURL, DefaultCountriesNowBaseURL)), "/"),
		},
	}

	origins := getConfigValue(*corsOrigins, "CORS_ORIGINS", "")
	switch {
	case origins != "":
		cfg.Server.CORSOrigins = splitList(origins)
	case len(file.Server.CORSOrigins) > 0:
		cfg.Server.CORSOrigins = file.Server.CORSOrigins
	default:
		cfg.Server.CORSOrigins = []string{"*"}
	}

	durations := []struct {
		name   string
		value  string
		target *time.Duration
	}{
		{"read timeout", getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", fallback(file.Server.ReadTimeout, "15s")), &cfg.Server.ReadTimeout},
		{"write timeout", getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", fallback(file.Server.WriteTimeout, "15s")), &cfg.Server.WriteTimeout},
		{"idle timeout", getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", fallback(file.Server.IdleTimeout, "60s")), &cfg.Server.IdleTimeout},
		{"provider timeout", getConfigValue(*providerTimeout, "PROVIDER_TIMEOUT", fallback(file.Providers.Timeout, "10s")), &cfg.Providers.Timeout},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.name, d.value, err)
		}
		*d.target = parsed
	}

	if cfg.Database.Driver == DriverSQLite {
		if err := cfg.expandDatabasePath(); err != nil {
			return nil, fmt.Errorf("invalid database path: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database path cannot be empty for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("DATABASE_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (must be sqlite or postgres)", c.Database.Driver)
	}

	if err := validateBaseURL("NAGER_API_BASE_URL", c.Providers.NagerBaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("COUNTRIES_NOW_API_BASE_URL", c.Providers.CountriesNowBaseURL); err != nil {
		return err
	}

	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got %s", c.Providers.Timeout)
	}

	return nil
}

func validateBaseURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an absolute http(s) URL", key, raw)
	}
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDatabasePath defaults the SQLite file to ~/.calsync/calsync.db.
func (c *Config) expandDatabasePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, ".calsync", "calsync.db")

	expanded, err := expandPath(c.Database.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Database.Path = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

func fallback(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
