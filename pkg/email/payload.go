package email

import (
	"bytes"
	"encoding/json"
)

// apiPayload is the JSON body of a send request. Headers travel as HTTP
// headers and filepaths stay local, so neither has a field here.
type apiPayload struct {
	From        string            `json:"from"`
	Name        string            `json:"name,omitempty"`
	To          Recipients        `json:"to"`
	Cc          Recipients        `json:"cc,omitempty"`
	Subject     string            `json:"subject"`
	HTML        string            `json:"html,omitempty"`
	Text        string            `json:"text,omitempty"`
	ReplyTo     string            `json:"replyTo,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Attachments []apiAttachment   `json:"attachments,omitempty"`
}

type apiAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

func newAPIPayload(msg *Message) apiPayload {
	p := apiPayload{
		From:    msg.From,
		Name:    msg.Name,
		To:      msg.To,
		Cc:      msg.Cc,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
		Tags:    msg.Tags,
	}
	for _, a := range msg.Attachments {
		p.Attachments = append(p.Attachments, apiAttachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Content:     a.Content.Base64(),
		})
	}
	return p
}

// encodePayload returns the request body. HTML escaping is disabled so
// markup is sent, and measured, byte for byte.
func encodePayload(msg *Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(newAPIPayload(msg)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
