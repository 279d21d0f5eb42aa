package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/ciphersafe/internal/cryptox"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the development server.
type Config struct {
	Addr        string
	DatabaseDSN string
	// SecretKey signs session tokens.
	SecretKey string
	// MasterKey encrypts secret values at rest; exactly 32 bytes.
	MasterKey      string
	TokenTTL       time.Duration
	BcryptCost     int
	AllowedOrigins []string
	LogLevel       string
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabaseDSN = "ciphersafe-server.db"
	c.TokenTTL = 24 * time.Hour
	c.BcryptCost = 14
	c.AllowedOrigins = []string{"http://localhost:3000"}
	c.LogLevel = "info"
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address must not be empty")
	}
	if c.DatabaseDSN == "" {
		return errors.New("database DSN must not be empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is not set (%s)", EnvSecretKey)
	}
	if len(c.MasterKey) != cryptox.KeySize {
		return fmt.Errorf("master key must be %d bytes (%s)", cryptox.KeySize, EnvMasterKey)
	}
	if c.TokenTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost %d out of range 4..31", c.BcryptCost)
	}
	return nil
}

// Load applies defaults, the .env file, the environment, an optional JSON
// file and the flags set on fs, in that order.
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
