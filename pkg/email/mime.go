package email

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

type mimeMessage struct {
	data         []byte
	messageID    string
	envelopeFrom string
	envelopeTo   []string
}

// buildMIME renders msg as an RFC 5322 message. Without attachments the
// top level is multipart/alternative; with attachments it is multipart/mixed.
func buildMIME(msg *Message, now time.Time, domain string) (*mimeMessage, error) {
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return nil, fmt.Errorf("parse from: %w", err)
	}
	if msg.Name != "" {
		from.Name = msg.Name
	}

	to, err := parseAddresses(msg.To)
	if err != nil {
		return nil, fmt.Errorf("parse to: %w", err)
	}
	cc, err := parseAddresses(msg.Cc)
	if err != nil {
		return nil, fmt.Errorf("parse cc: %w", err)
	}

	var h mail.Header
	h.SetDate(now)
	h.SetAddressList("From", []*mail.Address{from})
	h.SetAddressList("To", to)
	if len(cc) > 0 {
		h.SetAddressList("Cc", cc)
	}
	if msg.ReplyTo != "" {
		replyTo, err := mail.ParseAddress(msg.ReplyTo)
		if err != nil {
			return nil, fmt.Errorf("parse replyTo: %w", err)
		}
		h.SetAddressList("Reply-To", []*mail.Address{replyTo})
	}
	h.SetSubject(msg.Subject)

	h.SetMessageID(uuid.NewString() + "@" + domain)

	for _, name := range slices.Sorted(maps.Keys(msg.Headers)) {
		h.Set(name, msg.Headers[name])
	}
	// A custom Message-Id header replaces the generated one.
	messageID := h.Get("Message-Id")

	var buf bytes.Buffer
	if len(msg.Attachments) == 0 {
		iw, err := mail.CreateInlineWriter(&buf, h)
		if err != nil {
			return nil, err
		}
		if err := writeBodies(iw, msg); err != nil {
			return nil, err
		}
		if err := iw.Close(); err != nil {
			return nil, err
		}
	} else {
		mw, err := mail.CreateWriter(&buf, h)
		if err != nil {
			return nil, err
		}
		if msg.Text != "" || msg.HTML != "" {
			iw, err := mw.CreateInline()
			if err != nil {
				return nil, err
			}
			if err := writeBodies(iw, msg); err != nil {
				return nil, err
			}
			if err := iw.Close(); err != nil {
				return nil, err
			}
		}
		for _, a := range msg.Attachments {
			if err := writeAttachment(mw, a); err != nil {
				return nil, err
			}
		}
		if err := mw.Close(); err != nil {
			return nil, err
		}
	}

	rcpts := make([]string, 0, len(to)+len(cc))
	for _, a := range to {
		rcpts = append(rcpts, a.Address)
	}
	for _, a := range cc {
		rcpts = append(rcpts, a.Address)
	}

	return &mimeMessage{
		data:         buf.Bytes(),
		messageID:    messageID,
		envelopeFrom: from.Address,
		envelopeTo:   rcpts,
	}, nil
}

func parseAddresses(list []string) ([]*mail.Address, error) {
	out := make([]*mail.Address, 0, len(list))
	for _, s := range list {
		a, err := mail.ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// writeBodies writes the text part before the HTML part so clients prefer HTML.
func writeBodies(iw *mail.InlineWriter, msg *Message) error {
	if msg.Text != "" {
		if err := writeInlinePart(iw, "text/plain", msg.Text); err != nil {
			return err
		}
	}
	if msg.HTML != "" {
		if err := writeInlinePart(iw, "text/html", msg.HTML); err != nil {
			return err
		}
	}
	return nil
}

func writeInlinePart(iw *mail.InlineWriter, contentType, body string) error {
	var h mail.InlineHeader
	h.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	w, err := iw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func writeAttachment(mw *mail.Writer, a Attachment) error {
	raw, err := a.Content.Bytes()
	if err != nil {
		return err
	}

	var h mail.AttachmentHeader
	h.Set("Content-Type", a.ContentType)
	h.SetFilename(a.Filename)

	w, err := mw.CreateAttachment(h)
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
