package cache

import (
	"context"

	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	basecache "github.com/riskibarqy/match-goals/internal/platform/cache"
)

// Source memoizes scrapes per team and start year. Concurrent callers for the same key
// share a single browser session.
type Source struct {
	next  matchresult.Source
	cache *basecache.Store[matchresult.ScrapeResult]
}

func NewSource(next matchresult.Source, cache *basecache.Store[matchresult.ScrapeResult]) *Source {
	return &Source{next: next, cache: cache}
}

func (s *Source) FetchMatchBlocks(ctx context.Context, teamName string, startYear int) (matchresult.ScrapeResult, error) {
	key := "scrape:" + matchresult.SnapshotKey(teamName, startYear)
	v, _, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (matchresult.ScrapeResult, error) {
		result, err := s.next.FetchMatchBlocks(ctx, teamName, startYear)
		if err != nil {
			return matchresult.ScrapeResult{}, err
		}
		return cloneScrapeResult(result), nil
	})
	if err != nil {
		return matchresult.ScrapeResult{}, err
	}

	return cloneScrapeResult(v), nil
}

func cloneScrapeResult(in matchresult.ScrapeResult) matchresult.ScrapeResult {
	return matchresult.ScrapeResult{
		Blocks: append([]string(nil), in.Blocks...),
		Pages:  append([]matchresult.PaginationOutcome(nil), in.Pages...),
	}
}
