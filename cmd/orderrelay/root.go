package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/orderrelay/pkg/config"
	"github.com/dmitrymomot/orderrelay/pkg/logger"
	"github.com/dmitrymomot/orderrelay/pkg/requestid"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:   "orderrelay",
		Short: "Relay order lifecycle events to live subscribers and email",
		Long: "orderrelay consumes order events from a Redis stream, pushes a notification to every\n" +
			"connected live subscriber and emails customers when their order is preparing or ready.",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.LoadEnv(envFiles...)
		},
		RunE: runServe,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "additional .env files to load")

	root.AddCommand(newServeCmd(), newPublishCmd())
	return root
}

// setup parses the environment and installs the process logger.
func setup() (appConfig, *slog.Logger, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return cfg, nil, err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithRotatingFile(cfg.LogFile),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)
	return cfg, log, nil
}
