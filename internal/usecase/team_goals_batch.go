package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
)

type TeamGoalsBatchInput struct {
	Team      string
	Opponents []string
	StartYear int
}

// TeamGoalsBatchItem holds either a report or the error for one opponent.
type TeamGoalsBatchItem struct {
	Opponent string
	Report   TeamGoalsReport
	Err      error
}

// GetTeamGoalsBatch scrapes the team once and extracts a report per opponent. Items keep the
// order of input.Opponents; a bad opponent fails only its own item.
func (s *TeamGoalsService) GetTeamGoalsBatch(ctx context.Context, input TeamGoalsBatchInput) ([]TeamGoalsBatchItem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamGoalsService.GetTeamGoalsBatch")
	defer span.End()

	base := matchresult.Query{Team: input.Team, StartYear: input.StartYear}.Normalize()
	if err := base.Validate(s.now()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(input.Opponents) == 0 {
		return nil, fmt.Errorf("%w: at least one opponent is required", ErrInvalidInput)
	}
	if len(input.Opponents) > s.cfg.MaxOpponents {
		return nil, fmt.Errorf("%w: at most %d opponents per batch, got %d", ErrInvalidInput, s.cfg.MaxOpponents, len(input.Opponents))
	}

	loaded, err := s.loadBlocks(ctx, base.Team, base.StartYear)
	if err != nil {
		return nil, err
	}
	blocks := matchresult.ParseBlocks(loaded.result.Blocks)

	workerCount := s.cfg.BatchMaxWorkers
	if workerCount > len(input.Opponents) {
		workerCount = len(input.Opponents)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	items := make([]TeamGoalsBatchItem, len(input.Opponents))
	var workers sync.WaitGroup
	for i, opponent := range input.Opponents {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			query := matchresult.Query{Team: base.Team, Opponent: strings.TrimSpace(opponent), StartYear: base.StartYear}
			item := TeamGoalsBatchItem{Opponent: query.Opponent}
			if query.Opponent == "" {
				item.Err = fmt.Errorf("%w: opponent name is required", ErrInvalidInput)
			} else if err := query.Validate(s.now()); err != nil {
				item.Err = fmt.Errorf("%w: %v", ErrInvalidInput, err)
			} else {
				item.Report = s.buildReport(query, loaded, blocks)
			}
			items[i] = item
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	s.logger.InfoContext(ctx, "team goals batch extracted",
		"team", base.Team,
		"start_year", base.StartYear,
		"opponents", len(input.Opponents),
		"from_snapshot", loaded.fromSnapshot,
	)

	return items, nil
}
