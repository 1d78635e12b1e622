// Command mailkit composes transactional emails from templates and content
// documents and delivers them through a configured provider.
//
//	mailkit serve                                   run the HTTP API
//	mailkit compose welcome -v name=Ann             print a composed email
//	mailkit send welcome --to ann@example.com       compose and deliver
//	mailkit keys                                    list content keys
//	mailkit publish ./assets                        upload documents to S3 or Redis
//
// Configuration is read from the environment and an optional .env file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailkit/pkg/config"
	"github.com/dmitrymomot/mailkit/pkg/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg      AppConfig
		envFiles []string
	)

	root := &cobra.Command{
		Use:           "mailkit",
		Short:         "Compose and send transactional emails",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.Load(&cfg, envFiles...)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env)")

	root.AddCommand(
		newServeCmd(&cfg),
		newComposeCmd(&cfg),
		newSendCmd(&cfg),
		newKeysCmd(&cfg),
		newPublishCmd(&cfg),
	)
	return root
}

func newLogger(cfg AppConfig) *slog.Logger {
	return logger.NewWithSentry(cfg.Logger, cfg.Sentry, logger.RequestIDExtractor())
}
