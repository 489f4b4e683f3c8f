package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/homegarden/gardenpages/internal/db"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Store persists copy failures.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new event. If ev.ID is empty a UUID is generated; a zero
// OccurredAt is set to now.
func (s *Store) Log(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO copy_failures (id, occurred_at, kind, text, error)
		VALUES (?, ?, ?, ?, ?)`,
		ev.ID,
		ev.OccurredAt.UTC().Format(timeLayout),
		ev.Kind,
		ev.Text,
		ev.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting copy failure: %w", err)
	}
	return nil
}

// GetByID retrieves a single event.
func (s *Store) GetByID(ctx context.Context, id string) (*Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, occurred_at, kind, text, error
		FROM copy_failures WHERE id = ?`, id)
	return scanInto(row)
}

// QueryFilter controls which events are returned by Query.
type QueryFilter struct {
	Kind   string
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}

// Query returns events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, filter.Kind)
	}
	if filter.Since != nil {
		clauses = append(clauses, "occurred_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}
	if filter.Until != nil {
		clauses = append(clauses, "occurred_at <= ?")
		args = append(args, filter.Until.UTC().Format(timeLayout))
	}

	query := "SELECT id, occurred_at, kind, text, error FROM copy_failures"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY occurred_at DESC, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying copy failures: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		ev, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// Count returns the number of stored events of the given kind, or of all
// kinds when kind is empty.
func (s *Store) Count(ctx context.Context, kind string) (int, error) {
	query := "SELECT COUNT(*) FROM copy_failures"
	var args []any
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting copy failures: %w", err)
	}
	return n, nil
}

// DeleteBefore removes all events older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM copy_failures WHERE occurred_at < ?",
		before.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old copy failures: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Event, error) {
	var (
		ev Event
		ts string
	)
	if err := sc.Scan(&ev.ID, &ts, &ev.Kind, &ev.Text, &ev.Error); err != nil {
		return nil, err
	}
	if t, err := time.Parse(timeLayout, ts); err == nil {
		ev.OccurredAt = t
	}
	return &ev, nil
}
