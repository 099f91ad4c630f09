package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// ErrUnsupportedTemplate is returned by Renderer for values it cannot render.
var ErrUnsupportedTemplate = errors.New("templates: unsupported template value")

// Render takes a templ.Component and renders it to a string.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	err := tpl.Render(ctx, &sb)
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Renderer renders template values used as email bodies. It accepts a
// templ.Component, a plain HTML string, or a func(context.Context) (string, error).
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(ctx context.Context, tpl any) (string, error) {
	switch v := tpl.(type) {
	case templ.Component:
		return Render(ctx, v)
	case string:
		return v, nil
	case func(context.Context) (string, error):
		return v(ctx)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedTemplate, tpl)
	}
}
