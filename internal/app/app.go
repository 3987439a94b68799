package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/match-goals/external/blockfile"
	"github.com/riskibarqy/match-goals/external/flashscore"
	"github.com/riskibarqy/match-goals/internal/config"
	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	cacherepo "github.com/riskibarqy/match-goals/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/match-goals/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-goals/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/match-goals/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/match-goals/internal/platform/cache"
	"github.com/riskibarqy/match-goals/internal/platform/logging"
	"github.com/riskibarqy/match-goals/internal/platform/resilience"
	"github.com/riskibarqy/match-goals/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Options selects the match source. An empty BlocksFile means a live Flashscore scrape.
type Options struct {
	BlocksFile string
	// WrapSource lets the caller decorate the source before it is cached.
	WrapSource func(matchresult.Source) matchresult.Source
}

// Container holds the wired service and the resources that must be released on exit.
type Container struct {
	TeamGoals *usecase.TeamGoalsService
	closers   []func() error
}

func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	container := &Container{}

	source, sourceName := newMatchSource(cfg, logger, opts)

	snapshots, closeSnapshots, err := newSnapshotRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if closeSnapshots != nil {
		container.closers = append(container.closers, closeSnapshots)
	}

	container.TeamGoals = usecase.NewTeamGoalsService(source, snapshots, usecase.TeamGoalsServiceConfig{
		SourceName:      sourceName,
		BatchMaxWorkers: cfg.BatchMaxWorkers,
	}, logger)

	return container, nil
}

func newMatchSource(cfg config.Config, logger *logging.Logger, opts Options) (matchresult.Source, string) {
	var (
		source     matchresult.Source
		sourceName string
	)
	if path := strings.TrimSpace(opts.BlocksFile); path != "" {
		source = blockfile.NewSource(path)
		sourceName = matchresult.SourceBlockFile
		logger.Info("match source configured", "source", sourceName, "path", path)
	} else {
		source = flashscore.NewClient(flashscore.ClientConfig{
			BaseURL:             cfg.FlashscoreBaseURL,
			Headless:            cfg.BrowserHeadless,
			BrowserBin:          cfg.BrowserBin,
			WaitTimeout:         cfg.BrowserWaitTimeout,
			SearchSettleDelay:   cfg.SearchSettleDelay,
			ShowMoreDelay:       cfg.ShowMoreDelay,
			ShowMoreSettleDelay: cfg.ShowMoreSettleDelay,
			ScrapeTimeout:       cfg.ScrapeTimeout,
			Logger:              logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ScrapeCircuitEnabled,
				FailureThreshold: cfg.ScrapeCircuitFailureCount,
				OpenTimeout:      cfg.ScrapeCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ScrapeCircuitHalfOpenMaxReq,
			},
		})
		sourceName = matchresult.SourceFlashscore
		logger.Info("match source configured",
			"source", sourceName,
			"base_url", cfg.FlashscoreBaseURL,
			"headless", cfg.BrowserHeadless,
		)
	}

	if opts.WrapSource != nil {
		source = opts.WrapSource(source)
	}
	if cfg.CacheEnabled {
		source = cacherepo.NewSource(source, basecache.NewStore[matchresult.ScrapeResult](cfg.CacheTTL))
	}

	return source, sourceName
}

func newSnapshotRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (matchresult.SnapshotRepository, func() error, error) {
	switch cfg.SnapshotStore {
	case config.SnapshotStorePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("snapshot store configured", "store", cfg.SnapshotStore, "db_name", dbNameFromURL(cfg.DBURL))
		return postgres.NewSnapshotRepository(db), db.Close, nil
	case config.SnapshotStoreMemory:
		logger.Info("snapshot store configured", "store", cfg.SnapshotStore)
		return memory.NewSnapshotRepository(), nil, nil
	default:
		logger.Info("snapshot store disabled", "store", cfg.SnapshotStore)
		return nil, nil, nil
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func NewHTTPServer(cfg config.Config, svc *usecase.TeamGoalsService, logger *logging.Logger) (*http.Server, error) {
	handler := httpapi.NewHandler(svc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
