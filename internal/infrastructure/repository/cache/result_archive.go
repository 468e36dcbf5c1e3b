package cache

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/riskibarqy/courtside/internal/domain/session"
	basecache "github.com/riskibarqy/courtside/internal/platform/cache"
)

// ResultArchive serves recent-history pages from memory in front of a
// slower archive. Each publish starts a new generation so pages cached
// before it are never read again.
type ResultArchive struct {
	next       session.ResultArchive
	pages      *basecache.Store[[]session.HistoryRecord]
	generation atomic.Uint64
}

func NewResultArchive(next session.ResultArchive, pages *basecache.Store[[]session.HistoryRecord]) *ResultArchive {
	return &ResultArchive{next: next, pages: pages}
}

func (r *ResultArchive) Publish(ctx context.Context, record session.HistoryRecord) error {
	err := r.next.Publish(ctx, record)
	r.generation.Add(1)
	return err
}

func (r *ResultArchive) ListRecent(ctx context.Context, filter session.ArchiveFilter) ([]session.HistoryRecord, error) {
	key := "archive:recent:" + strconv.FormatUint(r.generation.Load(), 10) + ":" + strconv.Itoa(filter.Limit) + ":" + filter.Court
	items, err := r.pages.GetOrLoad(ctx, key, func(ctx context.Context) ([]session.HistoryRecord, error) {
		items, err := r.next.ListRecent(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]session.HistoryRecord(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]session.HistoryRecord(nil), items...), nil
}
