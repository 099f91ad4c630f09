package email

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"

	"github.com/shoutboxnet/shoutbox-go/pkg/email/templates"
	"github.com/shoutboxnet/shoutbox-go/pkg/file"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, opts EmailOptions) error
}

var (
	_ EmailSender = (*APIClient)(nil)
	_ EmailSender = (*SMTPClient)(nil)
	_ EmailSender = (*DevSender)(nil)
)

// Option configures APIClient, SMTPClient and DevSender. Options that do
// not apply to a client are ignored by it.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	logger     *slog.Logger
	files      file.Reader
	renderer   TemplateRenderer
	tlsConfig  *tls.Config
	dialer     SMTPDialer
}

func newClientOptions(opts []Option) *clientOptions {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.renderer == nil {
		o.renderer = templates.NewRenderer()
	}
	return o
}

func (o *clientOptions) normalizer() *Normalizer {
	return NewNormalizer(o.files, o.renderer)
}

// WithHTTPClient sets the HTTP client used by APIClient.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		if c != nil {
			o.httpClient = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFileReader sets the source for attachments given only by filepath.
func WithFileReader(r file.Reader) Option {
	return func(o *clientOptions) {
		if r != nil {
			o.files = r
		}
	}
}

// WithTemplateRenderer replaces the default templ based renderer.
func WithTemplateRenderer(r TemplateRenderer) Option {
	return func(o *clientOptions) {
		if r != nil {
			o.renderer = r
		}
	}
}

// WithTLSConfig sets the TLS configuration used for STARTTLS, for example
// to trust a private CA. The config is cloned.
func WithTLSConfig(c *tls.Config) Option {
	return func(o *clientOptions) {
		if c != nil {
			o.tlsConfig = c.Clone()
		}
	}
}

// WithSMTPDialer replaces the function that opens SMTP sessions.
func WithSMTPDialer(d SMTPDialer) Option {
	return func(o *clientOptions) {
		if d != nil {
			o.dialer = d
		}
	}
}
