package email

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shoutboxnet/shoutbox-go/pkg/validator"
)

// EmailOptions is a single send request. It is built per call and consumed
// by exactly one dispatcher.
type EmailOptions struct {
	From    string     `json:"from" yaml:"from"`
	Name    string     `json:"name,omitempty" yaml:"name,omitempty"`
	To      Recipients `json:"to" yaml:"to"`
	Cc      Recipients `json:"cc,omitempty" yaml:"cc,omitempty"`
	Subject string     `json:"subject" yaml:"subject"`
	HTML    string     `json:"html,omitempty" yaml:"html,omitempty"`
	Text    string     `json:"text,omitempty" yaml:"text,omitempty"`
	ReplyTo string     `json:"replyTo,omitempty" yaml:"replyTo,omitempty"`

	// TemplateContent is rendered by the configured TemplateRenderer and
	// replaces HTML when set.
	TemplateContent any `json:"-" yaml:"-"`

	Attachments []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`

	// Headers are sent out of band: as HTTP request headers by APIClient and
	// as message headers by SMTPClient.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Tags    map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Attachment is a file attached to a message. Content wins over Filepath;
// Filepath is only read when Content is not supplied.
type Attachment struct {
	Filepath    string  `json:"filepath,omitempty" yaml:"filepath,omitempty"`
	Filename    string  `json:"filename,omitempty" yaml:"filename,omitempty"`
	ContentType string  `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Content     Content `json:"content,omitzero" yaml:"content,omitempty"`
}

// Validate checks required fields and address syntax.
// The returned error matches ErrInvalidParams and wraps validator.ValidationErrors.
func (o EmailOptions) Validate() error {
	rules := []validator.Rule{
		validator.RequiredString("from", o.From),
		validator.RequiredSlice("to", o.To),
		validator.RequiredString("subject", o.Subject),
		validator.SingleLine("subject", o.Subject),
		validator.SingleLine("name", o.Name),
	}

	if strings.TrimSpace(o.From) != "" {
		rules = append(rules, validator.ValidAddress("from", o.From))
	}
	rules = append(rules, validator.ValidAddressList("to", o.To)...)
	rules = append(rules, validator.ValidAddressList("cc", o.Cc)...)
	if o.ReplyTo != "" {
		rules = append(rules, validator.ValidAddress("replyTo", o.ReplyTo))
	}

	for _, name := range slices.Sorted(maps.Keys(o.Headers)) {
		rules = append(rules,
			validator.ValidHeaderName("headers", name),
			validator.SingleLine("headers."+name, o.Headers[name]),
		)
	}

	for i, a := range o.Attachments {
		rules = append(rules, attachmentSourceRule(i, a))
	}

	if err := validator.Apply(rules...); err != nil {
		return errors.Join(ErrInvalidParams, err)
	}
	return nil
}

// attachmentSourceRule requires a way to obtain both the bytes and a filename.
func attachmentSourceRule(i int, a Attachment) validator.Rule {
	field := fmt.Sprintf("attachments[%d]", i)
	return validator.Rule{
		Check: func() bool {
			if a.Filepath != "" {
				return true
			}
			return !a.Content.IsZero() && a.Filename != ""
		},
		Error: validator.ValidationError{
			Field:          field,
			Message:        "requires filepath, or content together with filename",
			TranslationKey: "validation.attachment_source",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
