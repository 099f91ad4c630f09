package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shoutboxnet/shoutbox-go/pkg/email"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check SMTP connectivity and credentials",
		Long: `Connect to the Shoutbox SMTP relay, upgrade with STARTTLS,
authenticate and issue NOOP. Exits with status 1 if any step fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if a.settings.Email.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.settings.Email.Timeout)
				defer cancel()
			}

			client, err := email.NewSMTPClient(a.settings.Email, email.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if !client.VerifyConnection(ctx) {
				return errors.New("smtp connection check failed")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ SMTP connection to %s:%d is working\n", a.settings.Email.SMTPHost, a.settings.Email.SMTPPort)
			return nil
		},
	}
}
