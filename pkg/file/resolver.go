package file

import (
	"context"
	"fmt"
	"strings"
)

// Resolver dispatches reads by path scheme. Paths without a scheme go to the
// fallback reader.
type Resolver struct {
	fallback Reader
	schemes  map[string]Reader
}

// ResolverOption configures Resolver.
type ResolverOption func(*Resolver)

// WithScheme routes "scheme://..." paths to r.
func WithScheme(scheme string, r Reader) ResolverOption {
	return func(res *Resolver) {
		if r != nil {
			res.schemes[strings.ToLower(scheme)] = r
		}
	}
}

func NewResolver(fallback Reader, opts ...ResolverOption) *Resolver {
	res := &Resolver{fallback: fallback, schemes: make(map[string]Reader)}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (res *Resolver) ReadFile(ctx context.Context, path string) ([]byte, error) {
	scheme, _, ok := strings.Cut(path, "://")
	if !ok {
		if res.fallback == nil {
			return nil, fmt.Errorf("%w: no reader for local paths", ErrUnsupportedScheme)
		}
		return res.fallback.ReadFile(ctx, path)
	}

	r, found := res.schemes[strings.ToLower(scheme)]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
	return r.ReadFile(ctx, path)
}
