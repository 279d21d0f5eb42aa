package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DotEnvFile = ".env"

const (
	EnvAddr           = "CIPHERSAFE_ADDR"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvSecretKey      = "JWT_SECRET_KEY"
	EnvMasterKey      = "MASTER_ENCRYPTION_KEY"
	EnvTokenTTL       = "CIPHERSAFE_TOKEN_TTL"
	EnvBcryptCost     = "CIPHERSAFE_BCRYPT_COST"
	EnvAllowedOrigins = "CIPHERSAFE_ALLOWED_ORIGINS"
	EnvLogLevel       = "CIPHERSAFE_LOG_LEVEL"
)

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvDatabaseURL); ok && v != "" {
		cfg.DatabaseDSN = v
	}
	if v, ok := lookup(EnvSecretKey); ok && v != "" {
		cfg.SecretKey = v
	}
	if v, ok := lookup(EnvMasterKey); ok && v != "" {
		cfg.MasterKey = v
	}
	if v, ok := lookup(EnvTokenTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenTTL, err)
		}
		cfg.TokenTTL = d
	}
	if v, ok := lookup(EnvBcryptCost); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBcryptCost, err)
		}
		cfg.BcryptCost = n
	}
	if v, ok := lookup(EnvAllowedOrigins); ok && v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
