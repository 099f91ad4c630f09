package email

import (
	"regexp"
	"strings"
)

var leadingDoctypeRegex = regexp.MustCompile(`(?i)^\s*<!DOCTYPE[^>]*>\s*`)

// renderMarkers are the comment markers streaming HTML renderers leave
// around text nodes and suspense boundaries.
var renderMarkers = strings.NewReplacer(
	"<!-- -->", "",
	"<!--$-->", "",
	"<!--/$-->", "",
	"<!--$?-->", "",
	"<!--$!-->", "",
)

// StripRenderArtifacts removes a leading DOCTYPE declaration and the
// renderer marker comments from rendered HTML. It is a narrow compatibility
// shim for template output, not an HTML sanitizer.
func StripRenderArtifacts(html string) string {
	html = leadingDoctypeRegex.ReplaceAllString(html, "")
	return renderMarkers.Replace(html)
}
