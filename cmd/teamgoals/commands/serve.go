package commands

import (
	"github.com/riskibarqy/match-goals/internal/app"
	"github.com/riskibarqy/match-goals/internal/platform/logging"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Runs the HTTP API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
			logging.SetDefault(logger)
			defer func() { _ = logger.Sync() }()

			return app.Serve(cmd.Context(), cfg, logger)
		},
	}
}
