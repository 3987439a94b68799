package commands

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/match-goals/internal/app"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("migrate <%s> [args]", strings.Join(app.MigrationCommands, "|")),
		Short: "Applies the snapshot table migrations in db/migrations to DB_URL.",
		Example: strings.Join([]string{
			"  teamgoals migrate up",
			"  teamgoals migrate down 1",
			"  teamgoals migrate version",
			"  teamgoals migrate force 1",
			"  teamgoals migrate goto 1",
		}, "\n"),
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: app.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return app.RunMigration(cfg, logger, args[0], args[1:])
		},
	}
}
