package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/shoutboxnet/shoutbox-go/pkg/logger"
	"github.com/shoutboxnet/shoutbox-go/pkg/sanitizer"
)

// DevSender implements EmailSender for local development.
// It runs the HTTP normalization and size check, then writes the request
// to a directory instead of sending it.
type DevSender struct {
	dir        string
	normalizer *Normalizer
	logger     *slog.Logger
	now        func() time.Time
}

// NewDevSender creates a development email sender that saves emails to disk.
// The directory will be created if it doesn't exist.
func NewDevSender(dir string, opts ...Option) *DevSender {
	o := newClientOptions(opts)
	return &DevSender{
		dir:        dir,
		normalizer: o.normalizer(),
		logger:     o.logger.With(logger.Component("shoutbox.dev")),
		now:        time.Now,
	}
}

// devRecord is the JSON file written for every message.
type devRecord struct {
	Timestamp string            `json:"timestamp"`
	Headers   map[string]string `json:"headers,omitempty"`
	Payload   json.RawMessage   `json:"payload"`
}

// Send writes <timestamp>_<subject>_<id>.json and, when the message has an
// HTML body, a matching .html file. It returns the paths written.
func (d *DevSender) Send(ctx context.Context, opts EmailOptions) ([]string, error) {
	msg, err := d.normalizer.Normalize(ctx, opts, TransportHTTP)
	if err != nil {
		return nil, err
	}

	body, err := encodePayload(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode payload: %v", ErrFailedToSendEmail, err)
	}
	if len(body) > MaxPayloadSize {
		return nil, &PayloadTooLargeError{Size: len(body), Limit: MaxPayloadSize}
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := d.now()
	base := fmt.Sprintf("%s_%s_%s", now.Format("2006_01_02_150405"), sanitizer.Slug(msg.Subject), uuid.NewString()[:8])

	record, err := json.MarshalIndent(devRecord{
		Timestamp: now.Format(time.RFC3339),
		Headers:   msg.Headers,
		Payload:   body,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal record: %v", ErrFailedToSendEmail, err)
	}

	jsonPath := filepath.Join(d.dir, base+".json")
	if err := os.WriteFile(jsonPath, record, 0o644); err != nil {
		return nil, fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}
	written := []string{jsonPath}

	if msg.HTML != "" {
		htmlPath := filepath.Join(d.dir, base+".html")
		if err := os.WriteFile(htmlPath, []byte(msg.HTML), 0o644); err != nil {
			return written, fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSendEmail, err)
		}
		written = append(written, htmlPath)
	}

	d.logger.InfoContext(ctx, "email saved",
		logger.Transport("dev"),
		logger.Recipients(msg.To),
		logger.PayloadSize(len(body)),
		slog.String("path", jsonPath),
	)

	return written, nil
}

// SendEmail implements EmailSender.
func (d *DevSender) SendEmail(ctx context.Context, opts EmailOptions) error {
	_, err := d.Send(ctx, opts)
	return err
}
