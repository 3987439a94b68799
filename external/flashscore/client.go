package flashscore

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	"github.com/riskibarqy/match-goals/internal/platform/logging"
	"github.com/riskibarqy/match-goals/internal/platform/resilience"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL = "https://www.flashscore.com/"

	cookieRejectSelector = "#onetrust-reject-all-handler"
	searchWindowSelector = "#search-window"
	searchInputSelector  = ".searchInput__input"
	searchResultSelector = ".searchResult"
	matchRowSelector     = "div.event__match"
	resultsTabText       = "Results"
	showMoreText         = "Show more matches"
)

var errScrapeTransient = crerr.New("flashscore transient failure")

type ClientConfig struct {
	BaseURL             string
	Headless            bool
	BrowserBin          string
	WaitTimeout         time.Duration
	SearchSettleDelay   time.Duration
	ShowMoreDelay       time.Duration
	ShowMoreSettleDelay time.Duration
	ScrapeTimeout       time.Duration
	Logger              *logging.Logger
	CircuitBreaker      resilience.CircuitBreakerConfig
}

// Client drives a real browser through the Flashscore results listing of one team.
type Client struct {
	cfg     ClientConfig
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
	flight  singleflight.Group
	launch  launchFunc
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("flashscore")

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 10 * time.Second
	}
	if cfg.ScrapeTimeout <= 0 {
		cfg.ScrapeTimeout = 5 * time.Minute
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("flashscore circuit state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		cfg:     cfg,
		logger:  logger,
		breaker: breaker,
		launch:  launchRod,
		now:     time.Now,
		sleep:   sleepContext,
	}
}

// FetchMatchBlocks returns the text of every results row for teamName, newest first, after
// expanding the listing once per season back to startYear. Concurrent calls for the same team
// and start year share one browser session.
func (c *Client) FetchMatchBlocks(ctx context.Context, teamName string, startYear int) (matchresult.ScrapeResult, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return matchresult.ScrapeResult{}, fmt.Errorf("team name is required")
	}

	out, err, shared := c.flight.Do(matchresult.SnapshotKey(teamName, startYear), func() (any, error) {
		var result matchresult.ScrapeResult
		execErr := c.breaker.Execute(func() error {
			var scrapeErr error
			result, scrapeErr = c.scrape(ctx, teamName, startYear)
			return scrapeErr
		}, isScrapeCircuitFailure)
		return result, execErr
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			return matchresult.ScrapeResult{}, crerr.Wrap(err, "flashscore scrape rejected")
		}
		return matchresult.ScrapeResult{}, err
	}
	if shared {
		c.logger.DebugContext(ctx, "flashscore scrape shared", "team", teamName, "start_year", startYear)
	}

	result, ok := out.(matchresult.ScrapeResult)
	if !ok {
		return matchresult.ScrapeResult{}, fmt.Errorf("unexpected scrape result type %T", out)
	}
	return matchresult.ScrapeResult{
		Blocks: append([]string(nil), result.Blocks...),
		Pages:  append([]matchresult.PaginationOutcome(nil), result.Pages...),
	}, nil
}

func (c *Client) scrape(ctx context.Context, teamName string, startYear int) (matchresult.ScrapeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ScrapeTimeout)
	defer cancel()

	start := c.now()
	s, err := c.launch(ctx, c.cfg)
	if err != nil {
		return matchresult.ScrapeResult{}, transient(err, "start browser session")
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "close browser session failed", "error", closeErr)
		}
	}()

	if err := s.Navigate(c.cfg.BaseURL); err != nil {
		return matchresult.ScrapeResult{}, transient(err, "open "+c.cfg.BaseURL)
	}
	c.rejectCookies(ctx, s)

	if err := c.openTeamResults(ctx, s, teamName); err != nil {
		return matchresult.ScrapeResult{}, err
	}

	pages, err := c.expandListing(ctx, s, startYear)
	if err != nil {
		return matchresult.ScrapeResult{}, err
	}

	blocks, err := s.Texts(matchRowSelector, c.cfg.WaitTimeout)
	if ctx.Err() != nil {
		return matchresult.ScrapeResult{}, transient(ctx.Err(), "read match rows")
	}
	if err != nil {
		return matchresult.ScrapeResult{}, transient(err, "read match rows")
	}

	c.logger.InfoContext(ctx, "flashscore scrape finished",
		"team", teamName,
		"start_year", startYear,
		"rows", len(blocks),
		"pages", len(pages),
		"duration", c.now().Sub(start),
	)
	return matchresult.ScrapeResult{Blocks: blocks, Pages: pages}, nil
}

// rejectCookies dismisses the consent banner when it shows up; its absence is not an error.
func (c *Client) rejectCookies(ctx context.Context, s session) {
	if err := s.Click(cookieRejectSelector, c.cfg.WaitTimeout); err != nil {
		c.logger.DebugContext(ctx, "cookie banner not dismissed", "error", err)
	}
}

func (c *Client) openTeamResults(ctx context.Context, s session, teamName string) error {
	if err := s.Click(searchWindowSelector, c.cfg.WaitTimeout); err != nil {
		return transient(err, "open search")
	}
	if err := s.Type(searchInputSelector, teamName, c.cfg.WaitTimeout); err != nil {
		return transient(err, "type team name")
	}
	if err := c.sleep(ctx, c.cfg.SearchSettleDelay); err != nil {
		return err
	}

	if err := s.Click(searchResultSelector, c.cfg.WaitTimeout); err != nil {
		if ctx.Err() == nil && crerr.Is(err, errElementNotFound) {
			return crerr.Wrapf(matchresult.ErrTeamNotFound, "search %q", teamName)
		}
		return transient(err, "open search result")
	}
	if err := s.ClickText(resultsTabText, c.cfg.WaitTimeout); err != nil {
		return transient(err, "open results tab")
	}
	return nil
}

func transient(err error, msg string) error {
	return crerr.Mark(crerr.Wrap(err, msg), errScrapeTransient)
}

func isScrapeCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errScrapeTransient)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
