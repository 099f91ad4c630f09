package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load parses environment variables into v based on its `env` struct tags.
//
// Example:
//
//	type SMTPConfig struct {
//		Host string `env:"SMTP_HOST" envDefault:"localhost"`
//		Port int    `env:"SMTP_PORT" envDefault:"587"`
//		Key  string `env:"SMTP_KEY,required"`
//	}
//
//	var cfg SMTPConfig
//	err := config.Load(&cfg, config.WithEnvFiles(".env"))
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	environment, err := buildEnvironment(o)
	if err != nil {
		return err
	}

	if err := env.ParseWithOptions(v, env.Options{
		Environment: environment,
		Prefix:      o.prefix,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// buildEnvironment layers .env file values beneath the base environment.
func buildEnvironment(o *options) (map[string]string, error) {
	base := o.environment
	if base == nil {
		base = environToMap(os.Environ())
	}

	merged := make(map[string]string, len(base))
	for _, path := range o.files {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && !o.required {
				continue
			}
			return nil, errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", path, err))
		}
		for k, val := range values {
			merged[k] = val
		}
	}

	for k, val := range base {
		merged[k] = val
	}

	return merged, nil
}

func environToMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
