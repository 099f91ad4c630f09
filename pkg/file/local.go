package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalReader reads files from the local filesystem.
// When a base directory is configured, relative paths are resolved against
// it and paths escaping it are refused.
type LocalReader struct {
	baseDir string
	maxSize int64
}

// LocalOption configures LocalReader.
type LocalOption func(*LocalReader)

// WithBaseDir confines reads to dir.
func WithBaseDir(dir string) LocalOption {
	return func(r *LocalReader) {
		r.baseDir = dir
	}
}

// WithMaxSize overrides DefaultMaxSize. Non-positive values are ignored.
func WithMaxSize(n int64) LocalOption {
	return func(r *LocalReader) {
		if n > 0 {
			r.maxSize = n
		}
	}
}

// WithNoSizeLimit lifts the size cap entirely.
func WithNoSizeLimit() LocalOption {
	return func(r *LocalReader) {
		r.maxSize = 0
	}
}

func NewLocalReader(opts ...LocalOption) *LocalReader {
	r := &LocalReader{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(r)
	}
	if r.baseDir != "" {
		if abs, err := filepath.Abs(r.baseDir); err == nil {
			r.baseDir = abs
		}
	}
	return r
}

// ReadFile returns the content of the file at path.
func (r *LocalReader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved, err := r.resolvePath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrFailedToReadFile, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if r.maxSize > 0 && info.Size() > r.maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFailedToReadFile, path, err)
	}
	return data, nil
}

// resolvePath keeps resolved paths within baseDir when one is set.
func (r *LocalReader) resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if r.baseDir == "" {
		return filepath.Clean(path), nil
	}

	absPath := filepath.Join(r.baseDir, filepath.Clean(path))
	if filepath.IsAbs(path) {
		absPath = filepath.Clean(path)
	}

	if !strings.HasPrefix(absPath, r.baseDir+string(filepath.Separator)) && absPath != r.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}
