package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/session"
)

const defaultArchiveCapacity = 1000

// ResultArchive keeps finished matches across session resets, bounded
// to the most recent capacity records.
type ResultArchive struct {
	mu       sync.RWMutex
	items    []session.HistoryRecord
	capacity int
	now      func() time.Time
}

func NewResultArchive(capacity int) *ResultArchive {
	if capacity <= 0 {
		capacity = defaultArchiveCapacity
	}
	return &ResultArchive{capacity: capacity, now: time.Now}
}

func (r *ResultArchive) Publish(_ context.Context, record session.HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ArchivedAt = r.now().UTC()
	r.items = append(r.items, record)
	if over := len(r.items) - r.capacity; over > 0 {
		r.items = append([]session.HistoryRecord(nil), r.items[over:]...)
	}
	return nil
}

// ListRecent returns up to filter.Limit matching records, newest first.
// A non-positive limit returns every match.
func (r *ResultArchive) ListRecent(_ context.Context, filter session.ArchiveFilter) ([]session.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 || limit > len(r.items) {
		limit = len(r.items)
	}
	out := make([]session.HistoryRecord, 0, limit)
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if filter.Court != "" && r.items[i].Court != filter.Court {
			continue
		}
		out = append(out, r.items[i])
	}
	return out, nil
}
