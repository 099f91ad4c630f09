package sanitizer

import "strings"

// maxSlugLength keeps generated names well under filesystem limits.
const maxSlugLength = 100

// Slug converts s into a lowercase token usable inside a file name.
// Spaces become underscores, other unsafe characters are dropped and the
// result is truncated to 100 bytes. An empty result falls back to "email".
func Slug(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeSlugRegex.ReplaceAllString(s, "")

	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
	}

	if s == "" {
		s = "email"
	}

	return strings.ToLower(s)
}
