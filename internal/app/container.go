package app

import (
	"fmt"

	"github.com/chimpctl/chimpctl/internal/config"
	"github.com/chimpctl/chimpctl/internal/services/mailchimp"
	"github.com/sirupsen/logrus"
)

// Container centralizes the core dependencies used across the application.
// It is intentionally small and uses interfaces so callers (and tests) can
// substitute implementations easily.
type Container struct {
	Config          *config.Config
	Logger          *logrus.Logger
	MailchimpClient mailchimp.ClientAPI
	ValidateAPIKey  bool
}

// Option allows customizing the container during construction.
type Option func(*Container) error

// WithLogger overrides the default logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Container) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithMailchimpClient overrides the default Mailchimp client.
func WithMailchimpClient(client mailchimp.ClientAPI) Option {
	return func(c *Container) error {
		if client == nil {
			return fmt.Errorf("mailchimp client cannot be nil")
		}
		c.MailchimpClient = client
		return nil
	}
}

// WithAPIKeyValidation enables or disables the startup ping that verifies
// the configured API key (default: enabled).
func WithAPIKeyValidation(validate bool) Option {
	return func(c *Container) error {
		c.ValidateAPIKey = validate
		return nil
	}
}

// NewContainer builds a Container with sensible defaults derived from cfg.
// Options can be supplied to override specific dependencies (useful in tests).
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	container := &Container{
		Config:         cfg,
		Logger:         buildDefaultLogger(cfg.Loglevel),
		ValidateAPIKey: true,
	}

	// Apply options early so tests can inject mocks before defaults are created.
	for _, opt := range opts {
		if err := opt(container); err != nil {
			return nil, err
		}
	}

	if container.MailchimpClient == nil {
		container.MailchimpClient = mailchimp.NewClient(cfg.Mailchimp.APIKey)
	}

	if container.ValidateAPIKey {
		if _, err := container.MailchimpClient.Ping(); err != nil {
			return nil, fmt.Errorf("failed to verify mailchimp API key: %w", err)
		}
	}

	return container, nil
}

func buildDefaultLogger(levelStr string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
