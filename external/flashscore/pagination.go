package flashscore

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
)

// PaginationAttempts is how many times the listing is expanded to reach startYear: one click per
// season from the current year back to startYear, inclusive.
func PaginationAttempts(currentYear, startYear int) int {
	if startYear > currentYear {
		return 0
	}
	return currentYear - startYear + 1
}

// expandListing clicks "Show more matches" once per attempt. A wait that expires is logged and the
// next attempt proceeds; only an empty listing ends the loop early.
func (c *Client) expandListing(ctx context.Context, s session, startYear int) ([]matchresult.PaginationOutcome, error) {
	attempts := PaginationAttempts(c.now().Year(), startYear)
	pages := make([]matchresult.PaginationOutcome, 0, attempts)

	for i := 0; i < attempts; i++ {
		if err := c.sleep(ctx, c.cfg.ShowMoreDelay); err != nil {
			return nil, crerr.Wrap(err, "expand listing")
		}

		outcome := c.showMore(ctx, s)
		if ctx.Err() != nil {
			return nil, crerr.Wrap(ctx.Err(), "expand listing")
		}
		pages = append(pages, outcome)
		if outcome == matchresult.PageNoMoreAvailable {
			c.logger.DebugContext(ctx, "no more matches to load", "attempt", i+1, "attempts", attempts)
			break
		}
		if outcome == matchresult.PageTimedOut {
			continue
		}

		if err := c.sleep(ctx, c.cfg.ShowMoreSettleDelay); err != nil {
			return nil, crerr.Wrap(err, "expand listing")
		}
	}

	return pages, nil
}

func (c *Client) showMore(ctx context.Context, s session) matchresult.PaginationOutcome {
	err := s.ClickText(showMoreText, c.cfg.WaitTimeout)
	if err == nil {
		return matchresult.PageLoadedMore
	}

	if crerr.Is(err, errElementNotFound) {
		rows, countErr := s.Count(matchRowSelector)
		if countErr == nil && rows == 0 {
			return matchresult.PageNoMoreAvailable
		}
	}
	c.logger.WarnContext(ctx, "show more matches failed", "error", err)
	return matchresult.PageTimedOut
}
