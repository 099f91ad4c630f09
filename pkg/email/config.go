package email

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultEndpoint     = "https://api.shoutbox.net/send"
	DefaultSMTPHost     = "mail.shoutbox.net"
	DefaultSMTPPort     = 587
	DefaultSMTPUsername = "shoutbox"
	DefaultTimeout      = 30 * time.Second

	// MaxPayloadSize is the largest JSON request body the API accepts.
	MaxPayloadSize = 1 << 20
)

// Config holds Shoutbox credentials and connection settings.
// Only APIKey is required; zero values fall back to the defaults above.
// Nothing here reads the environment; use config.Load to fill it from env vars.
type Config struct {
	APIKey       string        `env:"SHOUTBOX_API_KEY"`
	Endpoint     string        `env:"SHOUTBOX_API_ENDPOINT" envDefault:"https://api.shoutbox.net/send"`
	SMTPHost     string        `env:"SHOUTBOX_SMTP_HOST" envDefault:"mail.shoutbox.net"`
	SMTPPort     int           `env:"SHOUTBOX_SMTP_PORT" envDefault:"587"`
	SMTPUsername string        `env:"SHOUTBOX_SMTP_USERNAME" envDefault:"shoutbox"`

	// Timeout bounds each HTTP request and each SMTP session.
	Timeout time.Duration `env:"SHOUTBOX_TIMEOUT" envDefault:"30s"`
}

func (c Config) withDefaults() Config {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.SMTPHost == "" {
		c.SMTPHost = DefaultSMTPHost
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = DefaultSMTPPort
	}
	if c.SMTPUsername == "" {
		c.SMTPUsername = DefaultSMTPUsername
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

func (c Config) validateAPI() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("%w: Endpoint must be an absolute http(s) URL", ErrInvalidConfig)
	}
	return nil
}

func (c Config) validateSMTP(tlsConfig *tls.Config) error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}
	if c.SMTPPort < 1 || c.SMTPPort > 65535 {
		return fmt.Errorf("%w: SMTPPort %d is out of range", ErrInvalidConfig, c.SMTPPort)
	}
	if tlsConfig != nil && tlsConfig.InsecureSkipVerify {
		return fmt.Errorf("%w: certificate verification cannot be disabled", ErrInvalidConfig)
	}
	return nil
}
