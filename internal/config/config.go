package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/chimpctl/chimpctl/internal/services/mailchimp"
	"github.com/sirupsen/logrus"
)

const (
	MinPort = 1
	MaxPort = 65535
)

// Config represents the main application configuration
type Config struct {
	BindAddress string          `toml:"bind_address"`
	Loglevel    string          `toml:"loglevel"`
	Port        int             `toml:"port"`
	WebhookPath string          `toml:"webhook_path"`
	Mailchimp   MailchimpConfig `toml:"mailchimp"`
}

// MailchimpConfig holds Mailchimp API configuration
type MailchimpConfig struct {
	// APIKey is the combined "<key>-<server-prefix>" credential. The suffix
	// after the hyphen selects the data center the client talks to.
	APIKey string `toml:"api_key"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		BindAddress: "0.0.0.0",
		Loglevel:    "info",
		Port:        8585,
		WebhookPath: "/webhook",
	}
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Use XDG config directory on Linux, Application Support on macOS
	configDir := filepath.Join(homeDir, ".config", "chimpctl")

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads configuration from a TOML file
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mailchimp.APIKey == "" {
		return fmt.Errorf("mailchimp.api_key is required")
	}
	if _, err := mailchimp.DeriveServerPrefix(c.Mailchimp.APIKey); err != nil {
		return fmt.Errorf("mailchimp.api_key is invalid: %w", err)
	}

	if c.Port < MinPort || c.Port > MaxPort {
		return fmt.Errorf("port must be between %d and %d", MinPort, MaxPort)
	}
	if c.WebhookPath == "" || c.WebhookPath[0] != '/' {
		return fmt.Errorf("webhook_path must start with '/'")
	}
	if _, err := logrus.ParseLevel(c.Loglevel); err != nil {
		return fmt.Errorf("loglevel must be one of: panic, fatal, error, warn, info, debug, trace")
	}

	return nil
}
