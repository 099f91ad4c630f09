package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoutboxnet/shoutbox-go/pkg/validator"
)

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "simple", value: "user@example.com", valid: true},
		{name: "plus and subdomain", value: "test.user+tag@sub.example.com", valid: true},
		{name: "display name rejected", value: "User <user@example.com>", valid: false},
		{name: "missing domain", value: "user@", valid: false},
		{name: "missing local part", value: "@example.com", valid: false},
		{name: "undotted domain", value: "user@localhost", valid: false},
		{name: "empty domain label", value: "user@example..com", valid: false},
		{name: "empty", value: "", valid: false},
		{name: "whitespace", value: "   ", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.ValidEmail("from", tt.value))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "bare address", value: "user@example.com", valid: true},
		{name: "display name", value: "Jane Doe <jane@example.com>", valid: true},
		{name: "quoted display name", value: `"Doe, Jane" <jane@example.com>`, valid: true},
		{name: "garbage", value: "not an address", valid: false},
		{name: "display name with bad address", value: "Jane <jane@>", valid: false},
		{name: "empty", value: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.ValidAddress("to", tt.value))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidAddressList(t *testing.T) {
	t.Parallel()

	rules := validator.ValidAddressList("to", []string{"a@example.com", "broken", "Bob <b@example.com>"})
	require.Len(t, rules, 3)

	verrs := validator.ExtractValidationErrors(validator.Apply(rules...))
	require.Len(t, verrs, 1)
	assert.Equal(t, "to[1]", verrs[0].Field)
	assert.Equal(t, "validation.email", verrs[0].TranslationKey)
}

func TestValidHeaderName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "custom header", value: "X-Campaign-Id", valid: true},
		{name: "token punctuation", value: "X-A!#$%&'*+.^_`|~", valid: true},
		{name: "space", value: "X A", valid: false},
		{name: "colon", value: "X-A:", valid: false},
		{name: "newline injection", value: "X-A\r\nBcc", valid: false},
		{name: "empty", value: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.ValidHeaderName("headers", tt.value))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
