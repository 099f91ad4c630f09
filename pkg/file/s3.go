package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client defines the interface for S3 operations used by S3Reader.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Reader reads attachment content from Amazon S3 and S3-compatible services.
// It is safe for concurrent use.
type S3Reader struct {
	client        S3Client
	defaultBucket string
	maxSize       int64
}

// S3Config contains configuration for S3Reader.
type S3Config struct {
	Region         string `env:"SHOUTBOX_S3_REGION"`
	AccessKeyID    string `env:"SHOUTBOX_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"SHOUTBOX_S3_SECRET_KEY"`
	Endpoint       string `env:"SHOUTBOX_S3_ENDPOINT"`        // Optional: for S3-compatible services
	ForcePathStyle bool   `env:"SHOUTBOX_S3_FORCE_PATH_STYLE"` // For S3-compatible services like MinIO
	DefaultBucket  string `env:"SHOUTBOX_S3_BUCKET"`           // Used for keys given without s3://bucket/
}

// S3Option defines a function that configures S3Reader.
type S3Option func(*s3Options)

type s3Options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3.Options)
	maxSize         int64
}

// WithS3Client sets a custom pre-configured S3 client.
// Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithS3ClientOption adds a custom S3 client option.
func WithS3ClientOption(option func(*s3.Options)) S3Option {
	return func(o *s3Options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// WithS3MaxSize overrides DefaultMaxSize for objects.
func WithS3MaxSize(n int64) S3Option {
	return func(o *s3Options) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// NewS3Reader creates a new S3 reader. Region is required unless a client
// is injected with WithS3Client.
func NewS3Reader(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Reader, error) {
	options := &s3Options{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		if cfg.Region == "" {
			return nil, fmt.Errorf("%w: region is required", ErrInvalidConfig)
		}

		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if options.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
		}
		awsOptions = append(awsOptions, options.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range options.s3ClientOptions {
				opt(o)
			}
		})
	}

	return &S3Reader{
		client:        client,
		defaultBucket: cfg.DefaultBucket,
		maxSize:       options.maxSize,
	}, nil
}

// ReadFile downloads the object addressed by path. Both "s3://bucket/key"
// and bare keys (read from the default bucket) are accepted.
func (r *S3Reader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	bucket, key, err := r.parsePath(path)
	if err != nil {
		return nil, err
	}

	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "get object")
	}
	defer out.Body.Close()

	if out.ContentLength != nil && *out.ContentLength > r.maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, *out.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(out.Body, r.maxSize+1))
	if err != nil {
		return nil, classifyS3Error(err, "read object")
	}
	if int64(len(data)) > r.maxSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, path)
	}

	return data, nil
}

func (r *S3Reader) parsePath(path string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(path, "s3://")
	if !ok {
		if r.defaultBucket == "" {
			return "", "", fmt.Errorf("%w: %s: no bucket given and no default bucket configured", ErrInvalidPath, path)
		}
		bucket, key = r.defaultBucket, strings.TrimPrefix(path, "/")
	} else {
		bucket, key, _ = strings.Cut(rest, "/")
	}

	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return bucket, key, nil
}

// classifyS3Error converts S3 errors to domain-specific errors.
func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return fmt.Errorf("%w: %w", ErrBucketNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch code {
		case "AccessDenied":
			return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
		case "RequestTimeout":
			return fmt.Errorf("%w: %s operation", ErrRequestTimeout, operation)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: %s operation", ErrServiceUnavailable, operation)
		case "InvalidObjectState":
			return fmt.Errorf("%w: %s operation", ErrInvalidObjectState, operation)
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %w", ErrFileNotFound, err)
		case "NoSuchBucket":
			return fmt.Errorf("%w: %w", ErrBucketNotFound, err)
		default:
			return fmt.Errorf("%s operation failed (code: %s): %w", operation, code, err)
		}
	}

	return fmt.Errorf("%s operation failed: %w", operation, err)
}
