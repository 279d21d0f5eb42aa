package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ciphersafe/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// leave the current value untouched.
type JsonConfig struct {
	Addr           string          `json:"addr"`
	DatabaseDSN    string          `json:"database_dsn"`
	SecretKey      string          `json:"secret_key"`
	MasterKey      string          `json:"master_key"`
	TokenTTL       *timex.Duration `json:"token_ttl"`
	BcryptCost     int             `json:"bcrypt_cost"`
	AllowedOrigins []string        `json:"allowed_origins"`
	LogLevel       string          `json:"log_level"`
}

func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.MasterKey != "" {
		cfg.MasterKey = jc.MasterKey
	}
	if jc.TokenTTL != nil {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.BcryptCost != 0 {
		cfg.BcryptCost = jc.BcryptCost
	}
	if jc.AllowedOrigins != nil {
		cfg.AllowedOrigins = jc.AllowedOrigins
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
