package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shoutboxnet/shoutbox-go/pkg/sanitizer"
)

func TestStripTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "adjacent block elements",
			input:    "<h1>Hi</h1><p>Bye</p>",
			expected: "HiBye",
		},
		{
			name:     "nested inline tags",
			input:    "<p>Hello <strong>world</strong></p>",
			expected: "Hello world",
		},
		{
			name:     "self-closing tags",
			input:    "Hello<br/>world",
			expected: "Helloworld",
		},
		{
			name:     "attributes are removed with the tag",
			input:    `<a href="https://example.com" target="_blank">link</a>`,
			expected: "link",
		},
		{
			name:     "entities are left encoded",
			input:    "<p>Fish &amp; chips</p>",
			expected: "Fish &amp; chips",
		},
		{
			name:     "unterminated bracket is kept",
			input:    "a < b",
			expected: "a < b",
		},
		{
			name:     "comments are stripped",
			input:    "before<!-- note -->after",
			expected: "beforeafter",
		},
		{
			name:     "multiline tag",
			input:    "<div\nclass=\"x\">text</div>",
			expected: "text",
		},
		{
			name:     "plain text",
			input:    "no markup here",
			expected: "no markup here",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripTags(tt.input))
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "spaces become underscores", input: "Hello World", expected: "hello_world"},
		{name: "special characters dropped", input: "Test@Email#Subject!", expected: "testemailsubject"},
		{name: "multiple spaces kept as underscores", input: "Multiple   Spaces", expected: "multiple___spaces"},
		{name: "only special characters", input: "!@#$%^&*()", expected: "email"},
		{name: "empty string", input: "", expected: "email"},
		{name: "allowed characters preserved", input: "test-file_name.backup", expected: "test-file_name.backup"},
		{name: "unicode dropped", input: "Unicode 🚀 test", expected: "unicode__test"},
		{name: "truncated to 100", input: strings.Repeat("a", 150), expected: strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Slug(tt.input))
		})
	}
}
