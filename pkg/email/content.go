package email

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type contentKind uint8

const (
	contentNone contentKind = iota
	contentBase64
	contentRaw
)

// Content is attachment data held either as base64 text or as raw bytes.
// The zero value means "not supplied"; the normalizer then reads the file.
type Content struct {
	kind contentKind
	text string
	raw  []byte
}

// Base64Content wraps already base64-encoded text.
func Base64Content(s string) Content {
	return Content{kind: contentBase64, text: s}
}

// RawContent wraps raw bytes. An empty slice is still supplied content.
func RawContent(b []byte) Content {
	if b == nil {
		b = []byte{}
	}
	return Content{kind: contentRaw, raw: b}
}

func (c Content) IsZero() bool { return c.kind == contentNone }

// IsBase64 reports whether c holds base64 text.
func (c Content) IsBase64() bool { return c.kind == contentBase64 }

// Base64 returns the content as base64 text. Text supplied through
// Base64Content is returned as given.
func (c Content) Base64() string {
	switch c.kind {
	case contentBase64:
		return c.text
	case contentRaw:
		return base64.StdEncoding.EncodeToString(c.raw)
	default:
		return ""
	}
}

// Bytes returns the decoded content.
func (c Content) Bytes() ([]byte, error) {
	switch c.kind {
	case contentBase64:
		b, err := base64.StdEncoding.DecodeString(c.text)
		if err != nil {
			return nil, fmt.Errorf("decode base64 content: %w", err)
		}
		return b, nil
	case contentRaw:
		return c.raw, nil
	default:
		return nil, nil
	}
}

// Len returns the size of the content in its current representation.
func (c Content) Len() int {
	if c.kind == contentBase64 {
		return len(c.text)
	}
	return len(c.raw)
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(c.Base64())
}

func (c *Content) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Content{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("content must be a base64 string: %w", err)
	}
	*c = Base64Content(s)
	return nil
}

func (c *Content) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("content must be a base64 string, got %s", nodeKindName(value.Kind))
	}
	if value.Tag == "!!null" {
		*c = Content{}
		return nil
	}
	*c = Base64Content(value.Value)
	return nil
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "scalar"
	}
}
