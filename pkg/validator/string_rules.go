package validator

import "strings"

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func RequiredSlice[T any](field string, value []T) Rule {
	return Rule{
		Check: func() bool {
			return len(value) > 0
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// SingleLine validates that value contains no CR or LF characters.
func SingleLine(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return !strings.ContainsAny(value, "\r\n")
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must not contain line breaks",
			TranslationKey: "validation.single_line",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
