package session

import "context"

// Store serializes every access to the session State. View callbacks
// must not mutate the state they are given.
type Store interface {
	View(ctx context.Context, fn func(*State) error) error
	Update(ctx context.Context, fn func(*State) error) error
}

// ResultSink receives each finished match after the state commits.
type ResultSink interface {
	Publish(ctx context.Context, record HistoryRecord) error
}

// ArchiveFilter narrows an archive listing. An empty Court matches
// every court.
type ArchiveFilter struct {
	Court string
	Limit int
}

// ResultArchive is a durable log of finished matches.
type ResultArchive interface {
	ResultSink
	ListRecent(ctx context.Context, filter ArchiveFilter) ([]HistoryRecord, error)
}
