package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/riskibarqy/match-goals/internal/config"
	"github.com/riskibarqy/match-goals/internal/platform/logging"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "teamgoals",
		Short:         "teamgoals extracts per-match goals and head-to-head tallies from Flashscore results.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGoalsCommand(), newBatchCommand(), newServeCommand(), newMigrateCommand())
	return root
}

func ExecuteContext(ctx context.Context) {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and builds a console logger writing to the command's stderr.
func loadConfig(cmd *cobra.Command) (config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logging.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel), nil
}
