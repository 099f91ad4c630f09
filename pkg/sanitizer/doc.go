// Package sanitizer holds the small string-cleaning helpers the SDK applies to
// outgoing message content.
//
// StripTags removes markup from an HTML body to build a plain-text fallback.
// It is a single regular-expression pass, not an HTML parser: every "<" up to
// the next ">" is dropped and entities are left untouched.
//
//	text := sanitizer.StripTags("<h1>Hi</h1><p>Bye</p>") // "HiBye"
//
// Slug turns free text (a subject line, a tag) into a lowercase token that is
// safe to use as part of a file name.
//
//	name := sanitizer.Slug("Password Reset!") // "password_reset"
//
// All helpers are stateless and safe for concurrent use.
package sanitizer
