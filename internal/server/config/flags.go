package config

import "github.com/spf13/pflag"

const (
	FlagConfig         = "config"
	FlagAddr           = "addr"
	FlagDatabaseDSN    = "database-dsn"
	FlagSecretKey      = "secret-key"
	FlagMasterKey      = "master-key"
	FlagTokenTTL       = "token-ttl"
	FlagBcryptCost     = "bcrypt-cost"
	FlagAllowedOrigins = "allowed-origins"
	FlagLogLevel       = "log-level"
)

// BindFlags registers the server flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.StringP(FlagAddr, "a", d.Addr, "address and port to listen on")
	fs.StringP(FlagDatabaseDSN, "d", d.DatabaseDSN, "postgres URL or SQLite file path")
	fs.StringP(FlagSecretKey, "s", "", "token signing key")
	fs.StringP(FlagMasterKey, "k", "", "32-byte key encrypting secret values")
	fs.Duration(FlagTokenTTL, d.TokenTTL, "session token lifetime")
	fs.Int(FlagBcryptCost, d.BcryptCost, "bcrypt cost of password hashes")
	fs.StringSlice(FlagAllowedOrigins, d.AllowedOrigins, "CORS origins allowed to call the API")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	if fs.Changed(FlagAddr) {
		if cfg.Addr, err = fs.GetString(FlagAddr); err != nil {
			return err
		}
	}
	if fs.Changed(FlagDatabaseDSN) {
		if cfg.DatabaseDSN, err = fs.GetString(FlagDatabaseDSN); err != nil {
			return err
		}
	}
	if fs.Changed(FlagSecretKey) {
		if cfg.SecretKey, err = fs.GetString(FlagSecretKey); err != nil {
			return err
		}
	}
	if fs.Changed(FlagMasterKey) {
		if cfg.MasterKey, err = fs.GetString(FlagMasterKey); err != nil {
			return err
		}
	}
	if fs.Changed(FlagTokenTTL) {
		if cfg.TokenTTL, err = fs.GetDuration(FlagTokenTTL); err != nil {
			return err
		}
	}
	if fs.Changed(FlagBcryptCost) {
		if cfg.BcryptCost, err = fs.GetInt(FlagBcryptCost); err != nil {
			return err
		}
	}
	if fs.Changed(FlagAllowedOrigins) {
		if cfg.AllowedOrigins, err = fs.GetStringSlice(FlagAllowedOrigins); err != nil {
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
