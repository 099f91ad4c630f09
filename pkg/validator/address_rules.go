package validator

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidEmail validates a bare email address ("user@example.com").
// Display names are rejected; use ValidAddress to allow them.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, ok := parseAddress(value)
			return ok && addr.Name == "" && addr.Address == strings.TrimSpace(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidAddress validates an RFC 5322 mailbox, with or without a display name
// ("user@example.com" or "User <user@example.com>").
func ValidAddress(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, ok := parseAddress(value)
			return ok
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidAddressList returns one ValidAddress rule per element, named field[i].
func ValidAddressList(field string, values []string) []Rule {
	rules := make([]Rule, 0, len(values))
	for i, v := range values {
		rules = append(rules, ValidAddress(fmt.Sprintf("%s[%d]", field, i), v))
	}
	return rules
}

// ValidHeaderName validates that value is an RFC 7230 header field name token.
func ValidHeaderName(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return false
			}
			for i := 0; i < len(value); i++ {
				if !isTokenChar(value[i]) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid header name",
			TranslationKey: "validation.header_name",
			TranslationValues: map[string]any{
				"field": field,
				"value": value,
			},
		},
	}
}

// parseAddress parses value and applies the domain checks typical web
// forms expect: a non-empty local part and a dotted domain.
func parseAddress(value string) (*mail.Address, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil {
		return nil, false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return nil, false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return nil, false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return nil, false
		}
	}

	return addr, true
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0
}
