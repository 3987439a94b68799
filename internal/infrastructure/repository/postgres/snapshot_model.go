package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
)

const snapshotTable = "match_snapshots"

type snapshotInsertModel struct {
	Source      string         `db:"source"`
	TeamKey     string         `db:"team_key"`
	TeamName    string         `db:"team_name"`
	StartYear   int            `db:"start_year"`
	Blocks      pq.StringArray `db:"blocks"`
	PayloadHash string         `db:"payload_hash"`
	ScrapedAt   time.Time      `db:"scraped_at"`
}

type snapshotTableModel struct {
	ID          int64          `db:"id"`
	Source      string         `db:"source"`
	TeamName    string         `db:"team_name"`
	StartYear   int            `db:"start_year"`
	Blocks      pq.StringArray `db:"blocks"`
	PayloadHash string         `db:"payload_hash"`
	ScrapedAt   time.Time      `db:"scraped_at"`
}

func newSnapshotInsertModel(snapshot matchresult.Snapshot) snapshotInsertModel {
	blocks := pq.StringArray(snapshot.Blocks)
	if blocks == nil {
		blocks = pq.StringArray{}
	}
	hash := snapshot.PayloadHash
	if hash == "" {
		hash = matchresult.PayloadHash(snapshot.Blocks)
	}
	return snapshotInsertModel{
		Source:      snapshot.Source,
		TeamKey:     teamKey(snapshot.TeamName),
		TeamName:    snapshot.TeamName,
		StartYear:   snapshot.StartYear,
		Blocks:      blocks,
		PayloadHash: hash,
		ScrapedAt:   snapshot.ScrapedAt.UTC(),
	}
}

func (m snapshotTableModel) toDomain() matchresult.Snapshot {
	blocks := []string(m.Blocks)
	if blocks == nil {
		blocks = []string{}
	}
	return matchresult.Snapshot{
		Source:      m.Source,
		TeamName:    m.TeamName,
		StartYear:   m.StartYear,
		Blocks:      blocks,
		PayloadHash: m.PayloadHash,
		ScrapedAt:   m.ScrapedAt.UTC(),
	}
}
