package sanitizer

import "regexp"

// Pre-compiled regular expressions for performance
var (
	// HTML stripping
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

	// Slug filtering: anything but alphanumerics, dash, underscore and dot
	unsafeSlugRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)
)
