package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	matchresultmock "github.com/riskibarqy/match-goals/internal/mocks/domain/matchresult"
)

func TestTeamGoalsService_GetTeamGoalsBatch_ScrapesOncePerBatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := matchresultmock.NewSource(t)
	source.On("FetchMatchBlocks", ctx, "A", 2020).Return(matchresult.ScrapeResult{Blocks: sampleBlocks}, nil).Once()

	svc := newTestTeamGoalsService(source, nil)
	items, err := svc.GetTeamGoalsBatch(ctx, TeamGoalsBatchInput{
		Team:      "A",
		Opponents: []string{"B", "C", " ", "A", "D"},
		StartYear: 2020,
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}

	if items[0].Opponent != "B" || items[0].Err != nil {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if !slices.Equal(items[0].Report.HeadToHead.OpponentGoals, []int{1, 0}) {
		t.Fatalf("unexpected B head-to-head: %v", items[0].Report.HeadToHead.OpponentGoals)
	}
	// C only appears in 2019, past the cutoff.
	if items[1].Err != nil || len(items[1].Report.HeadToHead.TeamGoals) != 0 {
		t.Fatalf("unexpected C item: %+v", items[1])
	}
	if !errors.Is(items[2].Err, ErrInvalidInput) {
		t.Fatalf("expected blank opponent to fail, got %v", items[2].Err)
	}
	if !errors.Is(items[3].Err, ErrInvalidInput) {
		t.Fatalf("expected opponent equal to team to fail, got %v", items[3].Err)
	}
	if items[4].Err != nil || !slices.Equal(items[4].Report.GoalsScored.Goals, []int{2, 3}) {
		t.Fatalf("unexpected D item: %+v", items[4])
	}
}

func TestTeamGoalsService_GetTeamGoalsBatch_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestTeamGoalsService(matchresultmock.NewSource(t), nil)

	if _, err := svc.GetTeamGoalsBatch(context.Background(), TeamGoalsBatchInput{Team: "A", StartYear: 2020}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing opponents, got %v", err)
	}

	tooMany := make([]string, 21)
	for i := range tooMany {
		tooMany[i] = "X"
	}
	if _, err := svc.GetTeamGoalsBatch(context.Background(), TeamGoalsBatchInput{Team: "A", Opponents: tooMany, StartYear: 2020}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for too many opponents, got %v", err)
	}

	if _, err := svc.GetTeamGoalsBatch(context.Background(), TeamGoalsBatchInput{Opponents: []string{"B"}, StartYear: 2020}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing team, got %v", err)
	}
}

func TestTeamGoalsService_GetTeamGoalsBatch_SourceFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := matchresultmock.NewSource(t)
	source.On("FetchMatchBlocks", ctx, "A", 2020).Return(matchresult.ScrapeResult{}, errors.New("circuit open")).Once()

	svc := newTestTeamGoalsService(source, nil)
	_, err := svc.GetTeamGoalsBatch(ctx, TeamGoalsBatchInput{Team: "A", Opponents: []string{"B"}, StartYear: 2020})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
