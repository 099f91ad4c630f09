package file

import "errors"

var (
	ErrInvalidPath       = errors.New("invalid path") // Prevents path traversal attacks
	ErrFileNotFound      = errors.New("file not found")
	ErrIsDirectory       = errors.New("path is a directory")
	ErrFileTooLarge      = errors.New("file size exceeds maximum allowed size")
	ErrFailedToReadFile  = errors.New("failed to read file")
	ErrUnsupportedScheme = errors.New("unsupported path scheme")

	// S3-specific errors for proper error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrInvalidObjectState = errors.New("invalid object state")

	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
