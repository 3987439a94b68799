package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	qb "github.com/riskibarqy/match-goals/internal/platform/querybuilder"
)

const snapshotUpsertSuffix = `ON CONFLICT (source, team_key, start_year, payload_hash)
DO UPDATE SET
    team_name = EXCLUDED.team_name,
    scraped_at = GREATEST(match_snapshots.scraped_at, EXCLUDED.scraped_at)`

type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores the snapshot; an identical payload for the same team and start year only
// refreshes its timestamp.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot matchresult.Snapshot) error {
	query, args, err := qb.InsertModel(snapshotTable, newSnapshotInsertModel(snapshot), snapshotUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert snapshot team=%s start_year=%d: %w", snapshot.TeamName, snapshot.StartYear, err)
	}
	return nil
}

func (r *SnapshotRepository) Latest(ctx context.Context, teamName string, startYear int) (matchresult.Snapshot, bool, error) {
	query, args, err := latestSnapshotQuery(teamName, startYear)
	if err != nil {
		return matchresult.Snapshot{}, false, fmt.Errorf("build latest snapshot query: %w", err)
	}

	var row snapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matchresult.Snapshot{}, false, nil
		}
		return matchresult.Snapshot{}, false, fmt.Errorf("get latest snapshot team=%s start_year=%d: %w", teamName, startYear, err)
	}

	return row.toDomain(), true, nil
}

func latestSnapshotQuery(teamName string, startYear int) (string, []any, error) {
	return qb.Select("id", "source", "team_name", "start_year", "blocks", "payload_hash", "scraped_at").
		From(snapshotTable).
		Where(
			qb.Eq("team_key", teamKey(teamName)),
			qb.Eq("start_year", startYear),
		).
		OrderBy("scraped_at DESC", "id DESC").
		Limit(1).
		ToSQL()
}

func teamKey(teamName string) string {
	return strings.ToLower(strings.TrimSpace(teamName))
}
