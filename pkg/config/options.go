package config

type options struct {
	files       []string
	required    bool
	prefix      string
	environment map[string]string
}

// Option configures Load.
type Option func(*options)

// WithEnvFiles reads the given .env files before parsing. Later files take
// precedence over earlier ones. Files that do not exist are skipped.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.files = append(o.files, paths...)
	}
}

// WithRequiredEnvFiles is like WithEnvFiles but fails if a file is missing.
func WithRequiredEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.files = append(o.files, paths...)
		o.required = true
	}
}

// WithPrefix prepends prefix to every env tag, e.g. "STAGING_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment replaces the process environment as the source of values.
// Mostly useful in tests.
func WithEnvironment(environment map[string]string) Option {
	return func(o *options) {
		o.environment = environment
	}
}
