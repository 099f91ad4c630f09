package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shoutboxnet/shoutbox-go/pkg/email"
)

const (
	transportAPI  = "api"
	transportSMTP = "smtp"
	transportDev  = "dev"
)

type sendOptions struct {
	file        string
	transport   string
	out         string
	attachments []string
	msg         email.EmailOptions
}

func newSendCmd(a *app) *cobra.Command {
	o := &sendOptions{}

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Send one message or a batch",
		Long: `Send a message described by flags, a YAML/JSON file, or both.

A file holding a list sends a batch. Flags override the matching fields of
every message in the file; SHOUTBOX_FROM and SHOUTBOX_FROM_NAME fill in a
missing sender.

Transports:
  api   Shoutbox HTTP API; every message succeeds or fails on its own
  smtp  Shoutbox SMTP relay; the batch fails if any message fails
  dev   write the request to --out instead of sending`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.send(cmd.Context(), cmd.OutOrStdout(), o)
		},
	}

	f := sendCmd.Flags()
	f.StringVarP(&o.file, "file", "f", "", "YAML or JSON file with a message or a list of messages")
	f.StringVarP(&o.transport, "transport", "t", transportAPI, "api, smtp or dev")
	f.StringVar(&o.out, "out", "outbox", "output directory for the dev transport")
	f.StringVar(&o.msg.From, "from", "", "sender address")
	f.StringVar(&o.msg.Name, "name", "", "sender display name")
	f.StringSliceVar((*[]string)(&o.msg.To), "to", nil, "recipient addresses")
	f.StringSliceVar((*[]string)(&o.msg.Cc), "cc", nil, "carbon copy addresses")
	f.StringVarP(&o.msg.Subject, "subject", "s", "", "subject line")
	f.StringVar(&o.msg.HTML, "html", "", "HTML body")
	f.StringVar(&o.msg.Text, "text", "", "plain text body")
	f.StringVar(&o.msg.ReplyTo, "reply-to", "", "reply-to address")
	f.StringToStringVar(&o.msg.Headers, "header", nil, "custom header as Name=value")
	f.StringToStringVar(&o.msg.Tags, "tag", nil, "tag as key=value")
	f.StringSliceVarP(&o.attachments, "attach", "a", nil, "file to attach (local path or s3://bucket/key)")

	return sendCmd
}

func (o *sendOptions) flagMessage() email.EmailOptions {
	msg := o.msg
	for _, path := range o.attachments {
		msg.Attachments = append(msg.Attachments, email.Attachment{Filepath: path})
	}
	return msg
}

func (a *app) send(ctx context.Context, out io.Writer, o *sendOptions) error {
	var fromFile []email.EmailOptions
	if o.file != "" {
		var err error
		if fromFile, err = readMessageFile(o.file); err != nil {
			return err
		}
	}

	msgs, err := composeMessages(fromFile, o.flagMessage(), email.EmailOptions{
		From: a.settings.From,
		Name: a.settings.FromName,
	})
	if err != nil {
		return err
	}

	opts, err := a.clientOptions(ctx)
	if err != nil {
		return err
	}

	switch o.transport {
	case transportAPI:
		return a.sendAPI(ctx, out, msgs, opts)
	case transportSMTP:
		return a.sendSMTP(ctx, out, msgs, opts)
	case transportDev:
		return a.sendDev(ctx, out, o.out, msgs, opts)
	default:
		return fmt.Errorf("unknown transport %q: must be %s, %s or %s", o.transport, transportAPI, transportSMTP, transportDev)
	}
}

func (a *app) sendAPI(ctx context.Context, out io.Writer, msgs []email.EmailOptions, opts []email.Option) error {
	client, err := email.NewAPIClient(a.settings.Email, opts...)
	if err != nil {
		return err
	}

	var failed int
	for i, outcome := range client.SendManyIndependent(ctx, msgs) {
		if outcome.Err != nil {
			failed++
			fmt.Fprintf(out, "#%d failed: %v\n", i+1, outcome.Err)
			continue
		}
		fmt.Fprintf(out, "#%d accepted (%d) %s\n", i+1, outcome.Response.StatusCode, outcome.Response.Body)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d messages failed", failed, len(msgs))
	}
	return nil
}

func (a *app) sendSMTP(ctx context.Context, out io.Writer, msgs []email.EmailOptions, opts []email.Option) error {
	client, err := email.NewSMTPClient(a.settings.Email, opts...)
	if err != nil {
		return err
	}

	deliveries, err := client.SendManyAllOrNothing(ctx, msgs)
	if err != nil {
		return err
	}
	for i, d := range deliveries {
		fmt.Fprintf(out, "#%d accepted %s for %s\n", i+1, d.MessageID, strings.Join(d.Recipients, ", "))
	}
	return nil
}

func (a *app) sendDev(ctx context.Context, out io.Writer, dir string, msgs []email.EmailOptions, opts []email.Option) error {
	sender := email.NewDevSender(dir, opts...)

	var errs []error
	for i, msg := range msgs {
		paths, err := sender.Send(ctx, msg)
		if err != nil {
			errs = append(errs, fmt.Errorf("message %d: %w", i+1, err))
			fmt.Fprintf(out, "#%d failed: %v\n", i+1, err)
			continue
		}
		fmt.Fprintf(out, "#%d saved %s\n", i+1, strings.Join(paths, ", "))
	}
	return errors.Join(errs...)
}
