package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the icslint settings read from the environment.
type Config struct {
	logLevel    slog.Level
	metricsFile string
	strict      bool
}

// Load reads the given .env files, or ./.env when none is given, into the
// environment and then builds the Config. Variables already set in the
// environment win over the files. A missing ./.env is not an error.
func Load(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil {
		if len(filenames) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("can't load env file: %w", err)
		}
		slog.Debug("no .env file loaded", "error", err)
	}
	return NewConfig()
}

// NewConfig builds a Config from the ICSLINT_ environment variables.
func NewConfig() (*Config, error) {
	logLevel, err := func() (slog.Level, error) {
		var level slog.Level
		env := os.Getenv("ICSLINT_LOG_LEVEL")
		if env == "" {
			env = "info"
		}
		if err := level.UnmarshalText([]byte(env)); err != nil {
			return level, fmt.Errorf("invalid ICSLINT_LOG_LEVEL: %w", err)
		}
		slog.Debug("env", "ICSLINT_LOG_LEVEL", env)
		return level, nil
	}()
	if err != nil {
		return nil, err
	}

	metricsFile := func() string {
		metricsFile := os.Getenv("ICSLINT_METRICS_FILE")
		slog.Debug("env", "ICSLINT_METRICS_FILE", metricsFile)
		return metricsFile
	}()

	strict, err := func() (bool, error) {
		env := os.Getenv("ICSLINT_STRICT")
		if env == "" {
			return true, nil
		}
		strict, err := strconv.ParseBool(env)
		if err != nil {
			return false, fmt.Errorf("invalid ICSLINT_STRICT: %w", err)
		}
		slog.Debug("env", "ICSLINT_STRICT", strict)
		return strict, nil
	}()
	if err != nil {
		return nil, err
	}

	return &Config{
		logLevel:    logLevel,
		metricsFile: metricsFile,
		strict:      strict,
	}, nil
}

// Get ICSLINT_LOG_LEVEL env, default to info
func (c *Config) GetLogLevel() slog.Level {
	return c.logLevel
}

// Get ICSLINT_METRICS_FILE env, empty when no metrics are written
func (c *Config) GetMetricsFile() string {
	return c.metricsFile
}

// Get ICSLINT_STRICT env, default to true
func (c *Config) GetStrict() bool {
	return c.strict
}
