package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	basecache "github.com/riskibarqy/match-goals/internal/platform/cache"
)

type countingSource struct {
	calls  atomic.Int32
	result matchresult.ScrapeResult
	err    error
}

func (s *countingSource) FetchMatchBlocks(context.Context, string, int) (matchresult.ScrapeResult, error) {
	s.calls.Add(1)
	return s.result, s.err
}

func TestSource_CachesPerTeamAndYear(t *testing.T) {
	t.Parallel()

	next := &countingSource{result: matchresult.ScrapeResult{Blocks: []string{"row"}}}
	source := NewSource(next, basecache.NewStore[matchresult.ScrapeResult](time.Minute))
	ctx := context.Background()

	if _, err := source.FetchMatchBlocks(ctx, "Arsenal", 2020); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	got, err := source.FetchMatchBlocks(ctx, " arsenal ", 2020)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if len(got.Blocks) != 1 || got.Blocks[0] != "row" {
		t.Fatalf("unexpected blocks: %+v", got.Blocks)
	}
	if calls := next.calls.Load(); calls != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}

	if _, err := source.FetchMatchBlocks(ctx, "Arsenal", 2021); err != nil {
		t.Fatalf("third fetch: %v", err)
	}
	if calls := next.calls.Load(); calls != 2 {
		t.Fatalf("expected a new upstream call for another start year, got %d", calls)
	}
}

func TestSource_ReturnsCopies(t *testing.T) {
	t.Parallel()

	next := &countingSource{result: matchresult.ScrapeResult{Blocks: []string{"row"}}}
	source := NewSource(next, basecache.NewStore[matchresult.ScrapeResult](time.Minute))

	first, _ := source.FetchMatchBlocks(context.Background(), "A", 2020)
	first.Blocks[0] = "mutated"

	second, _ := source.FetchMatchBlocks(context.Background(), "A", 2020)
	if second.Blocks[0] != "row" {
		t.Fatalf("cached value was mutated through a returned slice")
	}
}

func TestSource_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("browser crashed")
	next := &countingSource{err: boom}
	source := NewSource(next, basecache.NewStore[matchresult.ScrapeResult](time.Minute))

	for i := 0; i < 2; i++ {
		if _, err := source.FetchMatchBlocks(context.Background(), "A", 2020); !errors.Is(err, boom) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	}
	if calls := next.calls.Load(); calls != 2 {
		t.Fatalf("expected errors to be retried, got %d calls", calls)
	}
}
