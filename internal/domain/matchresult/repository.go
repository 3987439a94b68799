package matchresult

import "context"

// Source retrieves raw match rows for a team, newest first.
type Source interface {
	FetchMatchBlocks(ctx context.Context, teamName string, startYear int) (ScrapeResult, error)
}

// SnapshotRepository persists raw scrapes so they can be replayed when the source is unavailable.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Latest(ctx context.Context, teamName string, startYear int) (Snapshot, bool, error)
}
