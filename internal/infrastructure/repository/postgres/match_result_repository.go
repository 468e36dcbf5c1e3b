package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/courtside/internal/domain/session"
	qb "github.com/riskibarqy/courtside/internal/platform/querybuilder"
)

// MatchResultRepository archives finished matches. Inserts are
// idempotent on the record id.
type MatchResultRepository struct {
	db *sqlx.DB
}

func NewMatchResultRepository(db *sqlx.DB) *MatchResultRepository {
	return &MatchResultRepository{db: db}
}

func (r *MatchResultRepository) Publish(ctx context.Context, record session.HistoryRecord) error {
	query, args, err := insertMatchResultQuery(record)
	if err != nil {
		return fmt.Errorf("build insert match result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match result %s: %w", record.ID, describe(err))
	}
	return nil
}

func (r *MatchResultRepository) ListRecent(ctx context.Context, filter session.ArchiveFilter) ([]session.HistoryRecord, error) {
	query, args, err := listRecentMatchResultsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build list match results query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match results: %w", describe(err))
	}

	out := make([]session.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchResultFromRow(row))
	}
	return out, nil
}

func insertMatchResultQuery(record session.HistoryRecord) (string, []any, error) {
	return qb.InsertModel(matchResultsTable, matchResultToRow(record), "ON CONFLICT (id) DO NOTHING")
}

func listRecentMatchResultsQuery(filter session.ArchiveFilter) (string, []any, error) {
	query := qb.Select(matchResultColumns...).From(matchResultsTable)
	if filter.Court != "" {
		query = query.Where(qb.Eq("court", filter.Court))
	}
	return query.
		OrderBy("finished_at DESC", "id DESC").
		Limit(filter.Limit).
		ToSQL()
}
