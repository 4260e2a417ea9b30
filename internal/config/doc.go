// Package config handles configuration loading for botdeck.
//
// # Overview
//
// Configuration is loaded from TOML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from BOTDECK_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/botdeck/config.toml
//  3. ~/.config/botdeck/config.toml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	[api]
//	base_url = "${BOTDECK_API_URL}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Backend connection:
//
//	[api]
//	base_url = "https://botdeck.example/api/v1"
//	insecure = false  # skip the http->https upgrade for non-loopback hosts
//
// Credential persistence:
//
//	[credentials]
//	backend = "file"    # file, sqlite
//	path = ""           # override the default XDG location
//	profile = "default" # named credential set (sqlite only)
//
// Local dashboard:
//
//	[dashboard]
//	addr = "127.0.0.1:8787"
//	cert_file = ""  # serve over TLS when both are set
//	key_file = ""
//
// Logging:
//
//	[logging]
//	level = "info"   # debug, info, warn, error
//	format = "text"  # text, json
//
// # Validation
//
// Load() validates:
//
//   - api.base_url presence and scheme
//   - credentials.backend values
//   - TLS cert/key pairing
//   - Logging level values
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
