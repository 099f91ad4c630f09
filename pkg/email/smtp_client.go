package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/shoutboxnet/shoutbox-go/pkg/async"
	"github.com/shoutboxnet/shoutbox-go/pkg/logger"
)

// SMTPSession is the subset of *smtp.Client used by SMTPClient.
type SMTPSession interface {
	Auth(a sasl.Client) error
	SendMail(from string, to []string, r io.Reader) error
	Noop() error
	Quit() error
	Close() error
}

// SMTPDialer opens a session to addr that has already completed STARTTLS.
type SMTPDialer func(ctx context.Context, addr string, tlsConfig *tls.Config) (SMTPSession, error)

// SMTPClient submits email to the Shoutbox SMTP relay on port 587 with
// STARTTLS and AUTH PLAIN. A new session is opened for every operation.
type SMTPClient struct {
	addr       string
	host       string
	username   string
	apiKey     string
	timeout    time.Duration
	tlsConfig  *tls.Config
	dial       SMTPDialer
	normalizer *Normalizer
	logger     *slog.Logger
	now        func() time.Time
}

// Delivery describes a message accepted by the SMTP relay.
type Delivery struct {
	MessageID  string
	From       string
	Recipients []string
	Size       int
}

// NewSMTPClient creates an SMTP client. An empty APIKey or a TLS config
// with InsecureSkipVerify is a configuration error.
func NewSMTPClient(cfg Config, opts ...Option) (*SMTPClient, error) {
	cfg = cfg.withDefaults()
	o := newClientOptions(opts)
	if err := cfg.validateSMTP(o.tlsConfig); err != nil {
		return nil, err
	}

	tlsConfig := o.tlsConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{}
	}
	if tlsConfig.ServerName == "" {
		tlsConfig.ServerName = cfg.SMTPHost
	}
	if tlsConfig.MinVersion == 0 {
		tlsConfig.MinVersion = tls.VersionTLS12
	}

	dial := o.dialer
	if dial == nil {
		dial = dialStartTLS
	}

	return &SMTPClient{
		addr:       net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		host:       cfg.SMTPHost,
		username:   cfg.SMTPUsername,
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout,
		tlsConfig:  tlsConfig,
		dial:       dial,
		normalizer: o.normalizer(),
		logger:     o.logger.With(logger.Component("shoutbox.smtp")),
		now:        time.Now,
	}, nil
}

// MustNewSMTPClient is like NewSMTPClient but panics on invalid config.
func MustNewSMTPClient(cfg Config, opts ...Option) *SMTPClient {
	c, err := NewSMTPClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// VerifyConnection dials, authenticates and issues NOOP. Every failure is
// logged and reported as false.
func (c *SMTPClient) VerifyConnection(ctx context.Context) bool {
	err := c.withSession(ctx, func(s SMTPSession) error {
		return s.Noop()
	})
	if err != nil {
		c.logger.WarnContext(ctx, "smtp connection check failed", logger.Error(err))
		return false
	}
	return true
}

// Send normalizes opts, builds a MIME message and submits it.
// Transport failures match ErrFailedToSendEmail.
func (c *SMTPClient) Send(ctx context.Context, opts EmailOptions) (*Delivery, error) {
	start := time.Now()

	msg, err := c.normalizer.Normalize(ctx, opts, TransportSMTP)
	if err != nil {
		c.logger.ErrorContext(ctx, "email not sent", logger.Error(err))
		return nil, err
	}

	built, err := buildMIME(msg, c.now(), c.host)
	if err != nil {
		c.logger.ErrorContext(ctx, "email not sent", logger.Error(err))
		return nil, errors.Join(ErrFailedToSendEmail, err)
	}

	err = c.withSession(ctx, func(s SMTPSession) error {
		return s.SendMail(built.envelopeFrom, built.envelopeTo, bytes.NewReader(built.data))
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "email not sent",
			logger.Recipients(built.envelopeTo),
			logger.MessageID(built.messageID),
			logger.Error(err),
		)
		return nil, errors.Join(ErrFailedToSendEmail, err)
	}

	c.logger.InfoContext(ctx, "email sent",
		logger.Transport(TransportSMTP.String()),
		logger.Recipients(built.envelopeTo),
		logger.MessageID(built.messageID),
		logger.PayloadSize(len(built.data)),
		logger.Attachments(len(msg.Attachments)),
		logger.Duration(time.Since(start)),
	)

	return &Delivery{
		MessageID:  built.messageID,
		From:       built.envelopeFrom,
		Recipients: built.envelopeTo,
		Size:       len(built.data),
	}, nil
}

// SendEmail implements EmailSender.
func (c *SMTPClient) SendEmail(ctx context.Context, opts EmailOptions) error {
	_, err := c.Send(ctx, opts)
	return err
}

// SendManyAllOrNothing sends every message concurrently. If any send fails,
// the first failure to complete is returned and no deliveries are reported;
// sends already in flight are not recalled.
func (c *SMTPClient) SendManyAllOrNothing(ctx context.Context, list []EmailOptions) ([]*Delivery, error) {
	deliveries, err := async.All(async.Map(ctx, list, c.Send)...)
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}

// withSession runs fn on a freshly dialed and authenticated session and
// closes it afterwards. The whole session is bounded by Config.Timeout or
// the ctx deadline, whichever comes first.
func (c *SMTPClient) withSession(ctx context.Context, fn func(SMTPSession) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	s, err := c.dial(ctx, c.addr, c.tlsConfig)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.addr, err)
	}
	defer s.Close()

	if err := s.Auth(sasl.NewPlainClient("", c.username, c.apiKey)); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := fn(s); err != nil {
		return err
	}
	if err := s.Quit(); err != nil {
		return fmt.Errorf("quit: %w", err)
	}
	return nil
}

// dialStartTLS connects over TCP and upgrades with STARTTLS. The ctx deadline
// applies to every read and write; cancelling ctx closes the connection.
func dialStartTLS(ctx context.Context, addr string, tlsConfig *tls.Config) (SMTPSession, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

	client, err := smtp.NewClientStartTLS(conn, tlsConfig)
	if err != nil {
		stop()
		_ = conn.Close()
		return nil, err
	}

	return &contextSession{Client: client, stop: stop}, nil
}

type contextSession struct {
	*smtp.Client
	stop func() bool
}

func (s *contextSession) Close() error {
	s.stop()
	return s.Client.Close()
}
