// Package config loads runtime settings from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultMaxTokens  = 1024
	defaultMaxTurns   = 5
	defaultMaxRetries = 2
)

// ErrMissingAPIKey is returned by RequireAPIKey when ANTHROPIC_API_KEY is unset.
var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY environment variable is not set; set it in the .env file or as an environment variable")

// Config holds the settings shared by the command line programs.
type Config struct {
	APIKey      string
	Model       string // empty selects the provider default
	MaxTokens   int64
	MaxTurns    int
	MaxRetries  int
	TokenBudget int // 0 disables windowing
	LogLevel    slog.Level
	NoColor     bool
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. Missing files are ignored and variables already set in the
// environment win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		APIKey:     os.Getenv("ANTHROPIC_API_KEY"),
		Model:      os.Getenv("AGT_MODEL"),
		MaxTokens:  defaultMaxTokens,
		MaxTurns:   defaultMaxTurns,
		MaxRetries: defaultMaxRetries,
		LogLevel:   slog.LevelInfo,
	}
	_, cfg.NoColor = os.LookupEnv("NO_COLOR")

	var err error
	if cfg.MaxTokens, err = intEnv("AGT_MAX_TOKENS", cfg.MaxTokens, 1); err != nil {
		return Config{}, err
	}
	if cfg.MaxTurns, err = intEnv("AGT_MAX_TURNS", cfg.MaxTurns, 1); err != nil {
		return Config{}, err
	}
	if cfg.MaxRetries, err = intEnv("AGT_MAX_RETRIES", cfg.MaxRetries, 0); err != nil {
		return Config{}, err
	}
	if cfg.TokenBudget, err = intEnv("AGT_TOKEN_BUDGET", cfg.TokenBudget, 0); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("AGT_LOG_LEVEL"); v != "" {
		if cfg.LogLevel, err = parseLogLevel(v); err != nil {
			return Config{}, fmt.Errorf("parse AGT_LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

// RequireAPIKey reports ErrMissingAPIKey when no key is configured.
func (c Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func intEnv[T int | int64](name string, def T, min T) (T, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: invalid integer %q", name, v)
	}
	if T(n) < min {
		return 0, fmt.Errorf("parse %s: value must be >= %d", name, min)
	}
	return T(n), nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
