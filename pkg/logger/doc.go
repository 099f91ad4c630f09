// Package logger builds *slog.Logger instances through functional options
// and provides attribute helpers with consistent keys for email delivery.
//
// Three output formats are available: JSON for log aggregation, text for
// plain terminals and pretty, a colourised human format rendered by
// github.com/charmbracelet/log and used by the command-line tool.
//
//	log := logger.New(logger.WithEnvironment("development", "shoutbox"))
//	log.InfoContext(ctx, "email sent",
//	    logger.Transport("smtp"),
//	    logger.Recipients(to),
//	    logger.Duration(time.Since(start)),
//	)
//
// Attribute helpers that take an error or an optional value return an empty
// slog.Attr when there is nothing to record, so they can be passed
// unconditionally.
package logger
