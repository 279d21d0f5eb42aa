// Package config loads runtime configuration for the CipherSafe CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, if present.
//  3. CIPHERSAFE_* environment variables.
//  4. Optional JSON file selected with -c/--config.
//  5. Command-line flags, which override everything else.
//
// Supported flags
//
//	-c, --config string      JSON config file
//	-a, --api-url string     base URL of the API
//	    --timeout duration   per-request timeout
//	    --data-dir string    directory of the local database
//	    --persist-session    keep the session between invocations
//	    --log-level string   debug, info, warn or error
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so the value can be
// either a string like "10s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:8080",
//	  "request_timeout": "10s",
//	  "data_dir": "/home/me/.config/ciphersafe",
//	  "persist_session": true,
//	  "log_level": "warn"
//	}
package config
