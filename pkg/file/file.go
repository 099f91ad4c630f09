package file

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
)

// DefaultContentType is used when no MIME type can be derived from a name.
const DefaultContentType = "application/octet-stream"

// DefaultMaxSize caps how many bytes a reader loads into memory unless the
// reader is configured otherwise.
const DefaultMaxSize int64 = 25 << 20

// Reader loads the full content of a file.
type Reader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(ctx context.Context, path string) ([]byte, error)

func (f ReaderFunc) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// ContentTypeByName returns the MIME type registered for the extension of
// name. The second result is false when the extension is unknown.
func ContentTypeByName(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "", false
	}
	ct := mime.TypeByExtension(ext)
	if ct == "" {
		return "", false
	}
	return ct, true
}

// BaseName returns the last element of a local path or an object key.
// The scheme and bucket of "s3://bucket/key" paths are ignored.
func BaseName(path string) string {
	if _, rest, ok := strings.Cut(path, "://"); ok {
		path = rest
	}
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	return path
}
