package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
	qb "github.com/riskibarqy/match-goals/internal/platform/querybuilder"
)

func TestLatestSnapshotQuery(t *testing.T) {
	query, args, err := latestSnapshotQuery("  Arsenal ", 2020)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT id, source, team_name, start_year, blocks, payload_hash, scraped_at FROM match_snapshots WHERE team_key = $1 AND start_year = $2 ORDER BY scraped_at DESC, id DESC LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "arsenal" || args[1] != 2020 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSnapshotUpsertQuery(t *testing.T) {
	at := time.Date(2026, 10, 17, 9, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	snapshot := matchresult.NewSnapshot(matchresult.SourceFlashscore, "Arsenal", 2020, []string{"row"}, at)

	query, args, err := qb.InsertModel(snapshotTable, newSnapshotInsertModel(snapshot), snapshotUpsertSuffix)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.HasPrefix(query, "INSERT INTO match_snapshots (source, team_key, team_name, start_year, blocks, payload_hash, scraped_at) VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (source, team_key, start_year, payload_hash)") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 7 {
		t.Fatalf("unexpected args length: %d", len(args))
	}
	if args[1] != "arsenal" || args[2] != "Arsenal" {
		t.Fatalf("unexpected team args: %v %v", args[1], args[2])
	}
	if blocks, ok := args[4].(pq.StringArray); !ok || len(blocks) != 1 {
		t.Fatalf("expected blocks as pq.StringArray, got %T", args[4])
	}
}

func TestNewSnapshotInsertModel_FillsMissingHash(t *testing.T) {
	model := newSnapshotInsertModel(matchresult.Snapshot{TeamName: "A", StartYear: 2020})
	if model.PayloadHash != matchresult.PayloadHash(nil) {
		t.Fatalf("expected hash of empty payload, got %q", model.PayloadHash)
	}
	if model.Blocks == nil {
		t.Fatalf("expected non-nil blocks for TEXT[] NOT NULL column")
	}
}

func TestSnapshotTableModel_ToDomain(t *testing.T) {
	row := snapshotTableModel{
		Source:      matchresult.SourceFlashscore,
		TeamName:    "Arsenal",
		StartYear:   2020,
		PayloadHash: "abc",
		ScrapedAt:   time.Date(2026, 10, 17, 16, 0, 0, 0, time.FixedZone("WIB", 7*3600)),
	}
	got := row.toDomain()
	if got.Blocks == nil || len(got.Blocks) != 0 {
		t.Fatalf("expected empty blocks, got %#v", got.Blocks)
	}
	if got.ScrapedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp")
	}
}
