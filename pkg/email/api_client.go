package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shoutboxnet/shoutbox-go/pkg/async"
	"github.com/shoutboxnet/shoutbox-go/pkg/logger"
)

// UserAgent is sent with every API request.
const UserAgent = "shoutbox-go"

const maxResponseSize = 1 << 20

// APIClient sends email through the Shoutbox HTTP API.
// It keeps no state between calls and is safe for concurrent use.
type APIClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	normalizer *Normalizer
	logger     *slog.Logger
}

// Response is the decoded result of a successful API call.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("%w: empty response body", ErrInvalidResponse)
	}
	return json.Unmarshal(r.Body, v)
}

// Outcome is the result of one element of SendManyIndependent.
type Outcome struct {
	Response *Response
	Err      error
}

// NewAPIClient creates an HTTP API client. An empty APIKey is a
// configuration error.
func NewAPIClient(cfg Config, opts ...Option) (*APIClient, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validateAPI(); err != nil {
		return nil, err
	}

	o := newClientOptions(opts)
	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &APIClient{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
		httpClient: httpClient,
		normalizer: o.normalizer(),
		logger:     o.logger.With(logger.Component("shoutbox.api")),
	}, nil
}

// MustNewAPIClient is like NewAPIClient but panics on invalid config.
func MustNewAPIClient(cfg Config, opts ...Option) *APIClient {
	c, err := NewAPIClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Send normalizes opts, enforces MaxPayloadSize and POSTs the message.
// A non-2xx status returns *APIError; network failures match ErrTransport.
func (c *APIClient) Send(ctx context.Context, opts EmailOptions) (*Response, error) {
	start := time.Now()

	msg, err := c.normalizer.Normalize(ctx, opts, TransportHTTP)
	if err != nil {
		return nil, err
	}

	body, err := encodePayload(msg)
	if err != nil {
		return nil, errors.Join(ErrInvalidParams, err)
	}
	if len(body) > MaxPayloadSize {
		c.logger.WarnContext(ctx, "email payload too large",
			logger.Recipients(msg.To),
			logger.PayloadSize(len(body)),
		)
		return nil, &PayloadTooLargeError{Size: len(body), Limit: MaxPayloadSize}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	for name, value := range msg.Headers {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "email request failed",
			logger.Recipients(msg.To),
			logger.Error(err),
		)
		return nil, errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Join(ErrTransport, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "email rejected",
			logger.Recipients(msg.To),
			logger.StatusCode(resp.StatusCode),
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) > 0 && !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: response body is not JSON", ErrInvalidResponse)
	}

	c.logger.InfoContext(ctx, "email sent",
		logger.Transport(TransportHTTP.String()),
		logger.Recipients(msg.To),
		logger.StatusCode(resp.StatusCode),
		logger.PayloadSize(len(body)),
		logger.Attachments(len(msg.Attachments)),
		logger.Duration(time.Since(start)),
	)

	return &Response{StatusCode: resp.StatusCode, Body: json.RawMessage(trimmed)}, nil
}

// SendEmail implements EmailSender.
func (c *APIClient) SendEmail(ctx context.Context, opts EmailOptions) error {
	_, err := c.Send(ctx, opts)
	return err
}

// SendManyIndependent sends every message concurrently and waits for all of
// them. Outcomes are in input order; a failure does not affect other sends.
func (c *APIClient) SendManyIndependent(ctx context.Context, list []EmailOptions) []Outcome {
	results := async.Settle(async.Map(ctx, list, c.Send)...)

	outcomes := make([]Outcome, len(results))
	for i, r := range results {
		outcomes[i] = Outcome{Response: r.Value, Err: r.Err}
	}
	return outcomes
}
