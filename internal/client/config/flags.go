package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared by every command.
const (
	FlagConfig         = "config"
	FlagAPIURL         = "api-url"
	FlagTimeout        = "timeout"
	FlagDataDir        = "data-dir"
	FlagPersistSession = "persist-session"
	FlagLogLevel       = "log-level"
)

// BindFlags registers the configuration flags on fs. Defaults shown in the
// help text are the built-in ones; only flags the user actually sets
// override other sources.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.StringP(FlagAPIURL, "a", d.APIBaseURL, "base URL of the CipherSafe API")
	fs.Duration(FlagTimeout, d.RequestTimeout, "timeout of a single API request")
	fs.String(FlagDataDir, d.DataDir, "directory of the local database")
	fs.Bool(FlagPersistSession, d.PersistSession, "keep the session between invocations")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
}

// applyFlags copies the flags the user set on fs into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	if fs.Changed(FlagAPIURL) {
		if cfg.APIBaseURL, err = fs.GetString(FlagAPIURL); err != nil {
			return err
		}
	}
	if fs.Changed(FlagTimeout) {
		if cfg.RequestTimeout, err = fs.GetDuration(FlagTimeout); err != nil {
			return err
		}
	}
	if fs.Changed(FlagDataDir) {
		if cfg.DataDir, err = fs.GetString(FlagDataDir); err != nil {
			return err
		}
	}
	if fs.Changed(FlagPersistSession) {
		if cfg.PersistSession, err = fs.GetBool(FlagPersistSession); err != nil {
			return err
		}
	}
	if fs.Changed(FlagLogLevel) {
		if cfg.LogLevel, err = fs.GetString(FlagLogLevel); err != nil {
			return err
		}
	}
	return nil
}
