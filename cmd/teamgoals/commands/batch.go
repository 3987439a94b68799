package commands

import (
	"github.com/riskibarqy/match-goals/internal/app"
	"github.com/riskibarqy/match-goals/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-goals/internal/usecase"
	"github.com/spf13/cobra"
)

func newBatchCommand() *cobra.Command {
	var (
		input      usecase.TeamGoalsBatchInput
		blocksFile string
	)

	cmd := &cobra.Command{
		Use:   "batch --team <name> --opponents <a,b,...> --start-year <year>",
		Short: "Scrapes one team once and prints a report per opponent.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			container, err := app.New(ctx, cfg, logger, app.Options{BlocksFile: blocksFile})
			if err != nil {
				return err
			}
			defer func() { _ = container.Close() }()

			items, err := container.TeamGoals.GetTeamGoalsBatch(ctx, input)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), httpapi.NewTeamGoalsBatchResponse(ctx, input.Team, items))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Team, "team", "", "Team name as typed into the Flashscore search box.")
	flags.StringSliceVar(&input.Opponents, "opponents", nil, "Comma separated opponents.")
	flags.IntVar(&input.StartYear, "start-year", 0, "Oldest season year to include.")
	flags.StringVar(&blocksFile, "blocks-file", "", "Replay rows from a JSON file instead of scraping.")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("opponents")
	_ = cmd.MarkFlagRequired("start-year")

	return cmd
}
