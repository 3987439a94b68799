package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/match-goals/internal/domain/matchresult"
)

// SnapshotRepository keeps the newest snapshot per team and start year for the life of the process.
type SnapshotRepository struct {
	mu    sync.RWMutex
	items map[string]matchresult.Snapshot
}

func NewSnapshotRepository(seed ...matchresult.Snapshot) *SnapshotRepository {
	r := &SnapshotRepository{items: make(map[string]matchresult.Snapshot, len(seed))}
	for _, item := range seed {
		_ = r.Save(context.Background(), item)
	}
	return r
}

func (r *SnapshotRepository) Save(_ context.Context, snapshot matchresult.Snapshot) error {
	key := matchresult.SnapshotKey(snapshot.TeamName, snapshot.StartYear)
	snapshot.Blocks = append([]string(nil), snapshot.Blocks...)

	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.items[key]; ok && current.ScrapedAt.After(snapshot.ScrapedAt) {
		return nil
	}
	r.items[key] = snapshot
	return nil
}

func (r *SnapshotRepository) Latest(_ context.Context, teamName string, startYear int) (matchresult.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchresult.SnapshotKey(teamName, startYear)]
	if !ok {
		return matchresult.Snapshot{}, false, nil
	}
	item.Blocks = append([]string(nil), item.Blocks...)
	return item, true, nil
}
