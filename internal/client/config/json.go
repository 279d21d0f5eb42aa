package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ciphersafe/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "10s" or as integer nanoseconds. Absent fields leave the
// current value untouched.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DataDir        string          `json:"data_dir"`
	PersistSession *bool           `json:"persist_session"`
	LogLevel       string          `json:"log_level"`
}

// parseJSON overlays cfg with the values of the JSON file at path.
func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.PersistSession != nil {
		cfg.PersistSession = *jc.PersistSession
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
