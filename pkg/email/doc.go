// Package email is a client for the Shoutbox transactional email service.
//
// A message is described once with EmailOptions and sent through one of two
// dispatchers:
//   - APIClient posts JSON to the Shoutbox HTTP API
//   - SMTPClient submits MIME to mail.shoutbox.net:587 over STARTTLS
//
// Both run the same Normalizer first. It validates the options, moves custom
// headers out of the body, renders TemplateContent into HTML, and resolves
// attachments: missing content is read from Filepath, a missing filename is
// taken from the path, and a missing content type is looked up by extension.
// The SMTP variant also strips renderer artifacts from template output and
// derives a plain-text body from HTML when none is given.
//
// DevSender writes the would-be API request to disk for local development.
//
// # Usage
//
//	client, err := email.NewAPIClient(email.Config{APIKey: key})
//	if err != nil {
//	    return err
//	}
//
//	resp, err := client.Send(ctx, email.EmailOptions{
//	    From:    "no-reply@example.com",
//	    To:      email.Recipients{"user@example.com"},
//	    Subject: "Welcome",
//	    HTML:    "<h1>Welcome!</h1>",
//	    Attachments: []email.Attachment{
//	        {Filepath: "./terms.pdf"},
//	    },
//	})
//
// Templates built with github.com/a-h/templ can be passed directly:
//
//	opts.TemplateContent = views.Welcome(user)
//
// # Batches
//
// APIClient.SendManyIndependent sends concurrently and reports one Outcome
// per message. SMTPClient.SendManyAllOrNothing sends concurrently and fails
// as a whole when any message fails.
//
// # Error Handling
//
// Errors match the sentinels in errors.go via errors.Is:
//   - ErrInvalidConfig: missing API key or bad settings, at construction
//   - ErrInvalidParams: missing or malformed fields; wraps validator.ValidationErrors
//   - ErrPayloadTooLarge: *PayloadTooLargeError, nothing was sent
//   - ErrRemoteRejected: *APIError with the status code and response body
//   - ErrTransport: the HTTP request did not complete
//   - ErrFailedToSendEmail: the SMTP submission failed
//
// Errors from reading attachment files are returned unchanged.
// Nothing is retried.
package email
