package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	"github.com/riskibarqy/match-goals/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// TeamGoalsReport is the answer to one team/opponent/start-year query.
type TeamGoalsReport struct {
	Query        matchresult.Query
	GoalsScored  matchresult.GoalsScored
	HeadToHead   matchresult.HeadToHead
	Summary      matchresult.Summary
	Stats        ExtractionStats
	Source       string
	FromSnapshot bool
	ScrapedAt    time.Time
}

type ExtractionStats struct {
	Blocks             int
	Accepted           int
	SkippedMalformed   int
	SkippedNotInvolved int
	TruncatedAt        int
	Pages              []matchresult.PaginationOutcome
}

type TeamGoalsServiceConfig struct {
	SourceName      string
	BatchMaxWorkers int
	MaxOpponents    int
}

type TeamGoalsService struct {
	source    matchresult.Source
	snapshots matchresult.SnapshotRepository
	cfg       TeamGoalsServiceConfig
	logger    *logging.Logger
	now       func() time.Time
}

// NewTeamGoalsService wires the extractor to a match source. snapshots may be nil, in which case
// scrapes are neither persisted nor replayed.
func NewTeamGoalsService(
	source matchresult.Source,
	snapshots matchresult.SnapshotRepository,
	cfg TeamGoalsServiceConfig,
	logger *logging.Logger,
) *TeamGoalsService {
	if cfg.SourceName == "" {
		cfg.SourceName = matchresult.SourceFlashscore
	}
	if cfg.BatchMaxWorkers <= 0 {
		cfg.BatchMaxWorkers = 4
	}
	if cfg.MaxOpponents <= 0 {
		cfg.MaxOpponents = 20
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamGoalsService{
		source:    source,
		snapshots: snapshots,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *TeamGoalsService) GetTeamGoals(ctx context.Context, query matchresult.Query) (TeamGoalsReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamGoalsService.GetTeamGoals")
	defer span.End()

	query = query.Normalize()
	if err := query.Validate(s.now()); err != nil {
		return TeamGoalsReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	span.SetAttributes(
		attribute.String("team", query.Team),
		attribute.String("opponent", query.Opponent),
		attribute.Int("start_year", query.StartYear),
	)

	loaded, err := s.loadBlocks(ctx, query.Team, query.StartYear)
	if err != nil {
		return TeamGoalsReport{}, err
	}

	report := s.buildReport(query, loaded, matchresult.ParseBlocks(loaded.result.Blocks))
	s.logger.InfoContext(ctx, "team goals extracted",
		"team", query.Team,
		"opponent", query.Opponent,
		"start_year", query.StartYear,
		"blocks", report.Stats.Blocks,
		"accepted", report.Stats.Accepted,
		"skipped_malformed", report.Stats.SkippedMalformed,
		"truncated_at", report.Stats.TruncatedAt,
		"from_snapshot", report.FromSnapshot,
	)

	return report, nil
}

type loadedBlocks struct {
	result       matchresult.ScrapeResult
	source       string
	fromSnapshot bool
	scrapedAt    time.Time
}

// loadBlocks fetches from the live source and records a snapshot. When the source fails the
// newest stored snapshot for the same team and start year is replayed instead.
func (s *TeamGoalsService) loadBlocks(ctx context.Context, team string, startYear int) (loadedBlocks, error) {
	if s.source == nil {
		return loadedBlocks{}, fmt.Errorf("%w: match source is not configured", ErrDependencyUnavailable)
	}

	result, fetchErr := s.source.FetchMatchBlocks(ctx, team, startYear)
	if fetchErr == nil {
		scrapedAt := s.now().UTC()
		s.saveSnapshot(ctx, matchresult.NewSnapshot(s.cfg.SourceName, team, startYear, result.Blocks, scrapedAt))
		return loadedBlocks{result: result, source: s.cfg.SourceName, scrapedAt: scrapedAt}, nil
	}

	if errors.Is(fetchErr, matchresult.ErrTeamNotFound) {
		return loadedBlocks{}, fmt.Errorf("%w: team=%s: %v", ErrNotFound, team, fetchErr)
	}
	if s.snapshots == nil {
		return loadedBlocks{}, fmt.Errorf("%w: fetch match blocks: %v", ErrDependencyUnavailable, fetchErr)
	}

	snapshot, exists, err := s.snapshots.Latest(ctx, team, startYear)
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot lookup failed", "team", team, "start_year", startYear, "error", err)
		return loadedBlocks{}, fmt.Errorf("%w: fetch match blocks: %v", ErrDependencyUnavailable, fetchErr)
	}
	if !exists {
		return loadedBlocks{}, fmt.Errorf("%w: fetch match blocks: %v", ErrDependencyUnavailable, fetchErr)
	}

	s.logger.WarnContext(ctx, "match source failed, replaying snapshot",
		"team", team,
		"start_year", startYear,
		"snapshot_source", snapshot.Source,
		"scraped_at", snapshot.ScrapedAt,
		"error", fetchErr,
	)
	return loadedBlocks{
		result:       matchresult.ScrapeResult{Blocks: snapshot.Blocks},
		source:       snapshot.Source,
		fromSnapshot: true,
		scrapedAt:    snapshot.ScrapedAt,
	}, nil
}

func (s *TeamGoalsService) saveSnapshot(ctx context.Context, snapshot matchresult.Snapshot) {
	if s.snapshots == nil || len(snapshot.Blocks) == 0 {
		return
	}
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		s.logger.WarnContext(ctx, "save snapshot failed",
			"team", snapshot.TeamName,
			"start_year", snapshot.StartYear,
			"error", err,
		)
	}
}

func (s *TeamGoalsService) buildReport(query matchresult.Query, loaded loadedBlocks, blocks []matchresult.ParsedBlock) TeamGoalsReport {
	extraction := matchresult.Extract(query, blocks)
	pages := loaded.result.Pages
	if pages == nil {
		pages = []matchresult.PaginationOutcome{}
	}

	return TeamGoalsReport{
		Query:       query,
		GoalsScored: extraction.Goals,
		HeadToHead:  extraction.HeadToHead,
		Summary:     matchresult.Summarize(extraction.Goals),
		Stats: ExtractionStats{
			Blocks:             len(blocks),
			Accepted:           extraction.Count(matchresult.RecordAccepted),
			SkippedMalformed:   extraction.Count(matchresult.RecordSkippedMalformed),
			SkippedNotInvolved: extraction.Count(matchresult.RecordSkippedNotInvolved),
			TruncatedAt:        extraction.TruncatedAt,
			Pages:              pages,
		},
		Source:       loaded.source,
		FromSnapshot: loaded.fromSnapshot,
		ScrapedAt:    loaded.scrapedAt,
	}
}
