/*
Package cmd provides the CLI commands for shoutbox.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shoutboxnet/shoutbox-go/pkg/config"
	"github.com/shoutboxnet/shoutbox-go/pkg/email"
	"github.com/shoutboxnet/shoutbox-go/pkg/file"
	"github.com/shoutboxnet/shoutbox-go/pkg/logger"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=v1.2.3".
var Version = "dev"

// settings is everything the CLI reads from the environment and .env files.
type settings struct {
	Email email.Config
	S3    file.S3Config

	// Applied to messages that leave these fields empty.
	From     string `env:"SHOUTBOX_FROM"`
	FromName string `env:"SHOUTBOX_FROM_NAME"`
}

type app struct {
	envFiles  []string
	logFormat string
	debug     bool

	loadOptions []config.Option
	settings    settings
	logger      *slog.Logger
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd(loadOptions ...config.Option) *cobra.Command {
	a := &app{loadOptions: loadOptions}

	rootCmd := &cobra.Command{
		Use:   "shoutbox",
		Short: "Send transactional email through Shoutbox",
		Long: `shoutbox sends transactional email through the Shoutbox HTTP API
or its SMTP relay.

Credentials and defaults come from the environment (SHOUTBOX_API_KEY,
SHOUTBOX_FROM, ...) and optional .env files.

Example:
  shoutbox send --to user@example.com --subject Hi --html "<p>Hello</p>"
  shoutbox send --file batch.yaml --transport smtp
  shoutbox send --file welcome.json --transport dev --out ./outbox
  shoutbox verify`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "env files to load, missing files are skipped")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", string(logger.FormatPretty), "log format: pretty, text or json")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(newSendCmd(a))
	rootCmd.AddCommand(newVerifyCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	format, err := logger.ParseFormat(a.logFormat)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = logger.New(
		logger.WithFormat(format),
		logger.WithLevel(level),
		logger.WithOutput(cmd.ErrOrStderr()),
	)

	opts := append([]config.Option{config.WithEnvFiles(a.envFiles...)}, a.loadOptions...)
	if err := config.Load(&a.settings, opts...); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// fileReader reads local paths, and s3:// paths when an S3 region is set.
func (a *app) fileReader(ctx context.Context) (file.Reader, error) {
	local := file.NewLocalReader(file.WithNoSizeLimit())
	if a.settings.S3.Region == "" {
		return local, nil
	}

	s3Reader, err := file.NewS3Reader(ctx, a.settings.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 reader: %w", err)
	}
	return file.NewResolver(local, file.WithScheme("s3", s3Reader)), nil
}

func (a *app) clientOptions(ctx context.Context) ([]email.Option, error) {
	reader, err := a.fileReader(ctx)
	if err != nil {
		return nil, err
	}
	return []email.Option{
		email.WithLogger(a.logger),
		email.WithFileReader(reader),
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shoutbox %s\n", Version)
		},
	}
}
