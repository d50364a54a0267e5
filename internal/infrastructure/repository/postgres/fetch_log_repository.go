package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/fetchlog"
	qb "github.com/james-henry-git/nhl-stats-tracker/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type FetchLogRepository struct {
	db *sqlx.DB
}

func NewFetchLogRepository(db *sqlx.DB) *FetchLogRepository {
	return &FetchLogRepository{db: db}
}

func (r *FetchLogRepository) Append(ctx context.Context, entry fetchlog.Entry) error {
	query, args, err := qb.InsertModel("fetch_logs", fetchLogInsertModel{
		Kind:            string(entry.Kind),
		FetchedAt:       ptrToNullTime(&entry.FetchedAt),
		Status:          string(entry.Status),
		RecordsFetched:  entry.RecordsFetched,
		ErrorMessage:    nullString(entry.ErrorMessage),
		DurationSeconds: entry.DurationSeconds,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert fetch log query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fetch log kind=%s: %w", entry.Kind, err)
	}
	return nil
}

func (r *FetchLogRepository) ListRecent(ctx context.Context, limit int) ([]fetchlog.Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	query, args, err := qb.Select("*").From("fetch_logs").
		OrderBy("fetched_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list recent fetch logs query: %w", err)
	}

	var rows []fetchLogTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recent fetch logs: %w", err)
	}

	out := make([]fetchlog.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type fetchLogTableModel struct {
	ID              int64          `db:"id"`
	Kind            string         `db:"kind"`
	FetchedAt       sql.NullTime   `db:"fetched_at"`
	Status          string         `db:"status"`
	RecordsFetched  int            `db:"records_fetched"`
	ErrorMessage    sql.NullString `db:"error_message"`
	DurationSeconds float64        `db:"duration_seconds"`
}

type fetchLogInsertModel struct {
	Kind            string         `db:"kind"`
	FetchedAt       sql.NullTime   `db:"fetched_at"`
	Status          string         `db:"status"`
	RecordsFetched  int            `db:"records_fetched"`
	ErrorMessage    sql.NullString `db:"error_message"`
	DurationSeconds float64        `db:"duration_seconds"`
}

func (m fetchLogTableModel) toDomain() fetchlog.Entry {
	entry := fetchlog.Entry{
		ID:              m.ID,
		Kind:            fetchlog.Kind(m.Kind),
		Status:          fetchlog.Status(m.Status),
		RecordsFetched:  m.RecordsFetched,
		ErrorMessage:    m.ErrorMessage.String,
		DurationSeconds: m.DurationSeconds,
	}
	if m.FetchedAt.Valid {
		entry.FetchedAt = m.FetchedAt.Time.UTC()
	}
	return entry
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
