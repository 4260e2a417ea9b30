// ABOUTME: Configuration loading and parsing for botdeck
// ABOUTME: Supports TOML files with environment variable expansion

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the complete botdeck configuration
type Config struct {
	API         APIConfig         `toml:"api"`
	Credentials CredentialsConfig `toml:"credentials"`
	Dashboard   DashboardConfig   `toml:"dashboard"`
	Logging     LoggingConfig     `toml:"logging"`
}

// APIConfig holds backend connection configuration
type APIConfig struct {
	// BaseURL is the backend API root, e.g. https://botdeck.example/api/v1
	BaseURL string `toml:"base_url"`

	// Insecure skips the automatic http->https upgrade for non-loopback
	// hosts. Meant for development setups behind a trusted proxy.
	Insecure bool `toml:"insecure"`
}

// CredentialsConfig selects where the token pair is persisted
type CredentialsConfig struct {
	// Backend is "file" (default) or "sqlite"
	Backend string `toml:"backend"`

	// Path overrides the default XDG location
	Path string `toml:"path"`

	// Profile selects a named credential set (sqlite backend only)
	Profile string `toml:"profile"`
}

// DashboardConfig holds the local dashboard server configuration
type DashboardConfig struct {
	Addr     string `toml:"addr"`
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultPath returns the standard config file location,
// $XDG_CONFIG_HOME/botdeck/config.toml, falling back to ~/.config.
func DefaultPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "botdeck", "config.toml"), nil
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw TOML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := toml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in the optional fields a minimal config omits.
func (c *Config) applyDefaults() {
	if c.Credentials.Backend == "" {
		c.Credentials.Backend = "file"
	}
	if c.Credentials.Profile == "" {
		c.Credentials.Profile = "default"
	}
	if c.Dashboard.Addr == "" {
		c.Dashboard.Addr = "127.0.0.1:8787"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables become empty strings.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must start with http:// or https://")
	}

	switch c.Credentials.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("credentials.backend must be \"file\" or \"sqlite\", got %q", c.Credentials.Backend)
	}

	// TLS needs both halves of the key pair
	if (c.Dashboard.CertFile == "") != (c.Dashboard.KeyFile == "") {
		return fmt.Errorf("dashboard.cert_file and dashboard.key_file must be set together")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}

	return nil
}
