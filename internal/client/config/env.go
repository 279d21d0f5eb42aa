package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

// Environment variables understood by the CLI.
const (
	EnvAPIURL         = "CIPHERSAFE_API_URL"
	EnvTimeout        = "CIPHERSAFE_TIMEOUT"
	EnvDataDir        = "CIPHERSAFE_DATA_DIR"
	EnvPersistSession = "CIPHERSAFE_PERSIST_SESSION"
	EnvLogLevel       = "CIPHERSAFE_LOG_LEVEL"
)

// loadDotEnv copies variables from path into the process environment.
// Variables that are already set win, and a missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// applyEnv overlays cfg with the CIPHERSAFE_* variables found by lookup.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		cfg.DataDir = v
	}
	if v, ok := lookup(EnvPersistSession); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPersistSession, err)
		}
		cfg.PersistSession = b
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	return nil
}
