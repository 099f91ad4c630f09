package logger

import (
	"log/slog"
	"strings"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Transport records the delivery transport ("api", "smtp", "dev").
func Transport(name string) slog.Attr {
	return slog.String("transport", name)
}

// Recipients records a comma separated recipient list under the key "recipients".
func Recipients(addrs []string) slog.Attr {
	return slog.String("recipients", strings.Join(addrs, ","))
}

// MessageID records the message identifier under the key "message_id".
// If id is empty, it returns an empty Attr.
func MessageID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("message_id", id)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// PayloadSize records an encoded request size in bytes.
func PayloadSize(n int) slog.Attr {
	return slog.Int("payload_size", n)
}

func Attachments(n int) slog.Attr {
	return slog.Int("attachments", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
