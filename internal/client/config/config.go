package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the CipherSafe CLI.
//
// Fields:
//   - APIBaseURL: absolute URL of the backend, e.g. "http://localhost:8080".
//   - RequestTimeout: upper bound for a single HTTP call.
//   - DataDir: directory of the local SQLite file.
//   - PersistSession: keep the credential between invocations.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DataDir        string
	PersistSession bool
	LogLevel       string
}

// DatabaseFile is the name of the local SQLite file inside DataDir.
const DatabaseFile = "ciphersafe.db"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.DataDir = defaultDataDir()
	c.PersistSession = true
	c.LogLevel = "warn"
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ciphersafe")
	}
	return ".ciphersafe"
}

// DatabasePath is the full path of the local SQLite file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFile)
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("api url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api url %q must be an absolute http(s) URL", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.DataDir == "" {
		return errors.New("data dir must not be empty")
	}
	return nil
}

// Load builds a Config by applying defaults, then the .env file, the
// environment, an optional JSON file and finally the flags set on fs. Later
// sources take precedence over earlier ones.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if fs != nil {
		if path, _ := fs.GetString(FlagConfig); path != "" {
			if err := parseJSON(cfg, path); err != nil {
				return nil, err
			}
		}
		if err := applyFlags(cfg, fs); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
