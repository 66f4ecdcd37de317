package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybermarket/server/internal/domain"
)

// OutboxStore reads and settles pending event rows
type OutboxStore struct {
	db *pgxpool.Pool
}

// NewOutboxStore creates a new OutboxStore
func NewOutboxStore(db *pgxpool.Pool) *OutboxStore {
	return &OutboxStore{db: db}
}

// ListPending returns unpublished entries oldest first
func (s *OutboxStore) ListPending(ctx context.Context, limit int) ([]domain.OutboxEntry, error) {
	query := `
		SELECT outbox_id, event_type, payload, created_at, attempts
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOutbox, err)
	}
	defer rows.Close()

	entries := []domain.OutboxEntry{}
	for rows.Next() {
		var e domain.OutboxEntry
		if err := rows.Scan(&e.ID, &e.EventType, &e.Payload, &e.CreatedAt, &e.Attempts); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOutbox, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOutbox, err)
	}
	return entries, nil
}

// MarkPublished settles an entry so it is never delivered again
func (s *OutboxStore) MarkPublished(ctx context.Context, id int64) error {
	query := `UPDATE outbox SET published_at = NOW() WHERE outbox_id = $1`
	if _, err := s.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkPublished, err)
	}
	return nil
}

// MarkFailed bumps the attempt counter for a later retry
func (s *OutboxStore) MarkFailed(ctx context.Context, id int64) error {
	query := `UPDATE outbox SET attempts = attempts + 1 WHERE outbox_id = $1`
	if _, err := s.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordFailure, err)
	}
	return nil
}
