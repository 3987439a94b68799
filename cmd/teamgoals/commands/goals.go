package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-goals/external/blockfile"
	"github.com/riskibarqy/match-goals/internal/app"
	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	"github.com/riskibarqy/match-goals/internal/interfaces/httpapi"
	"github.com/spf13/cobra"
)

type goalsOptions struct {
	team       string
	opponent   string
	startYear  int
	blocksFile string
	saveBlocks string
}

func newGoalsCommand() *cobra.Command {
	var opts goalsOptions

	cmd := &cobra.Command{
		Use:   "goals --team <name> --start-year <year> [--opponent <name>]",
		Short: "Prints goals scored, results and head-to-head tallies for one team as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGoals(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.team, "team", "", "Team name as typed into the Flashscore search box.")
	flags.StringVar(&opts.opponent, "opponent", "", "Opponent for the head-to-head tally.")
	flags.IntVar(&opts.startYear, "start-year", 0, "Oldest season year to include.")
	flags.StringVar(&opts.blocksFile, "blocks-file", "", "Replay rows from a JSON file instead of scraping.")
	flags.StringVar(&opts.saveBlocks, "save-blocks", "", "Write the fetched rows to this JSON file.")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("start-year")

	return cmd
}

func runGoals(cmd *cobra.Command, opts goalsOptions) error {
	ctx := cmd.Context()
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	recorder := &recordingSource{}
	container, err := app.New(ctx, cfg, logger, app.Options{
		BlocksFile: opts.blocksFile,
		WrapSource: recorder.wrap,
	})
	if err != nil {
		return err
	}
	defer func() { _ = container.Close() }()

	report, err := container.TeamGoals.GetTeamGoals(ctx, matchresult.Query{
		Team:      opts.team,
		Opponent:  opts.opponent,
		StartYear: opts.startYear,
	})
	if err != nil {
		return err
	}

	if path := strings.TrimSpace(opts.saveBlocks); path != "" {
		if err := blockfile.Write(path, report.Query.Team, recorder.blocks()); err != nil {
			return err
		}
		logger.Info("rows saved", "path", path)
	}

	return printJSON(cmd.OutOrStdout(), httpapi.NewTeamGoalsResponse(report))
}

func printJSON(w io.Writer, v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

// recordingSource keeps the rows of the last successful fetch for --save-blocks.
type recordingSource struct {
	next matchresult.Source

	mu   sync.Mutex
	last []string
}

func (r *recordingSource) wrap(next matchresult.Source) matchresult.Source {
	r.next = next
	return r
}

func (r *recordingSource) FetchMatchBlocks(ctx context.Context, teamName string, startYear int) (matchresult.ScrapeResult, error) {
	result, err := r.next.FetchMatchBlocks(ctx, teamName, startYear)
	if err != nil {
		return result, err
	}
	r.mu.Lock()
	r.last = append([]string(nil), result.Blocks...)
	r.mu.Unlock()
	return result, nil
}

func (r *recordingSource) blocks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return []string{}
	}
	return append([]string(nil), r.last...)
}
