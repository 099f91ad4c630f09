package email

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/shoutboxnet/shoutbox-go/pkg/file"
	"github.com/shoutboxnet/shoutbox-go/pkg/sanitizer"
)

// Transport selects the normalization variant.
type Transport uint8

const (
	TransportHTTP Transport = iota + 1
	TransportSMTP
)

func (t Transport) String() string {
	switch t {
	case TransportHTTP:
		return "api"
	case TransportSMTP:
		return "smtp"
	default:
		return "unknown"
	}
}

// TemplateRenderer turns an opaque template value into HTML.
type TemplateRenderer interface {
	Render(ctx context.Context, tpl any) (string, error)
}

// Message is the resolved form of EmailOptions for a single transport.
// Every attachment has a filename, a content type and content in the
// representation the transport needs: base64 text for HTTP, raw bytes for SMTP.
type Message struct {
	Transport   Transport
	From        string
	Name        string
	To          []string
	Cc          []string
	Subject     string
	HTML        string
	Text        string
	ReplyTo     string
	Tags        map[string]string
	Headers     map[string]string
	Attachments []Attachment
}

// Normalizer resolves EmailOptions into a Message. It is safe for
// concurrent use.
type Normalizer struct {
	files    file.Reader
	renderer TemplateRenderer
}

// NewNormalizer returns a Normalizer. A nil files reader defaults to a
// file.LocalReader with no base directory and no size cap; pass a configured
// reader to restrict either. A nil renderer makes TemplateContent an error.
func NewNormalizer(files file.Reader, renderer TemplateRenderer) *Normalizer {
	if files == nil {
		files = file.NewLocalReader(file.WithNoSizeLimit())
	}
	return &Normalizer{files: files, renderer: renderer}
}

// Normalize validates opts and resolves it for transport t. Attachment read
// errors are returned as produced by the file reader.
func (n *Normalizer) Normalize(ctx context.Context, opts EmailOptions, t Transport) (*Message, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	msg := &Message{
		Transport: t,
		From:      opts.From,
		Name:      opts.Name,
		To:        append([]string(nil), opts.To...),
		Cc:        append([]string(nil), opts.Cc...),
		Subject:   opts.Subject,
		HTML:      opts.HTML,
		Text:      opts.Text,
		ReplyTo:   opts.ReplyTo,
		Tags:      maps.Clone(opts.Tags),
		Headers:   maps.Clone(opts.Headers),
	}

	if opts.TemplateContent != nil {
		html, err := n.render(ctx, opts.TemplateContent)
		if err != nil {
			return nil, err
		}
		if t == TransportSMTP {
			html = StripRenderArtifacts(html)
		}
		msg.HTML = html
	}

	if len(opts.Attachments) > 0 {
		msg.Attachments = make([]Attachment, 0, len(opts.Attachments))
		for i, a := range opts.Attachments {
			resolved, err := n.resolveAttachment(ctx, i, a, t)
			if err != nil {
				return nil, err
			}
			msg.Attachments = append(msg.Attachments, resolved)
		}
	}

	if t == TransportSMTP && msg.Text == "" && msg.HTML != "" {
		msg.Text = sanitizer.StripTags(msg.HTML)
	}

	return msg, nil
}

func (n *Normalizer) render(ctx context.Context, tpl any) (string, error) {
	if n.renderer == nil {
		return "", fmt.Errorf("%w: no template renderer configured", ErrTemplateRender)
	}
	html, err := n.renderer.Render(ctx, tpl)
	if err != nil {
		return "", errors.Join(ErrTemplateRender, err)
	}
	return html, nil
}

func (n *Normalizer) resolveAttachment(ctx context.Context, i int, a Attachment, t Transport) (Attachment, error) {
	content := a.Content
	if content.IsZero() {
		data, err := n.files.ReadFile(ctx, a.Filepath)
		if err != nil {
			return Attachment{}, err
		}
		content = RawContent(data)
	}

	filename := a.Filename
	if filename == "" {
		filename = file.BaseName(a.Filepath)
	}
	if filename == "" {
		return Attachment{}, fmt.Errorf("%w: attachment %d has no filename", ErrInvalidAttachment, i)
	}

	contentType := a.ContentType
	if contentType == "" {
		if ct, ok := file.ContentTypeByName(filename); ok {
			contentType = ct
		} else {
			contentType = file.DefaultContentType
		}
	}

	switch t {
	case TransportSMTP:
		raw, err := content.Bytes()
		if err != nil {
			return Attachment{}, fmt.Errorf("%w: attachment %d (%s): %w", ErrInvalidAttachment, i, filename, err)
		}
		content = RawContent(raw)
	default:
		content = Base64Content(content.Base64())
	}

	return Attachment{
		Filepath:    a.Filepath,
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}
