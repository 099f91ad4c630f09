package sanitizer

// StripTags removes every "<...>" sequence from s.
// HTML entities are not decoded and unterminated "<" is kept as is.
func StripTags(s string) string {
	if s == "" {
		return s
	}
	return htmlTagRegex.ReplaceAllString(s, "")
}
