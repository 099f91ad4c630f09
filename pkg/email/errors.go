package email

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig     = errors.New("email.errors.invalid_config")
	ErrInvalidParams     = errors.New("email.errors.invalid_params")
	ErrPayloadTooLarge   = errors.New("email.errors.payload_too_large")
	ErrRemoteRejected    = errors.New("email.errors.remote_rejected")
	ErrInvalidResponse   = errors.New("email.errors.invalid_response")
	ErrTransport         = errors.New("email.errors.transport_failure")
	ErrFailedToSendEmail = errors.New("email.errors.failed_to_send_email")
	ErrInvalidAttachment = errors.New("email.errors.invalid_attachment")
	ErrTemplateRender    = errors.New("email.errors.template_render_failed")
)

// PayloadTooLargeError reports an encoded request body above MaxPayloadSize.
// No request was sent.
type PayloadTooLargeError struct {
	Size  int
	Limit int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("%s: payload is %d bytes, limit is %d", ErrPayloadTooLarge, e.Size, e.Limit)
}

func (e *PayloadTooLargeError) Is(target error) bool {
	return target == ErrPayloadTooLarge
}

// APIError is a non-2xx response from the Shoutbox API. Body holds the
// response text as received.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", ErrRemoteRejected, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrRemoteRejected, e.StatusCode, e.Body)
}

func (e *APIError) Is(target error) bool {
	return target == ErrRemoteRejected
}
