package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/repository"
)

// UserRecordStore persists user records as JSONB documents keyed by user ID.
// The whole record travels as one document, so every mutation is a read,
// modify, write cycle inside a transaction holding the row lock.
type UserRecordStore struct {
	db *pgxpool.Pool
}

// NewUserRecordStore creates a new UserRecordStore
func NewUserRecordStore(db *pgxpool.Pool) *UserRecordStore {
	return &UserRecordStore{db: db}
}

// CreateRecord inserts a fresh record for a new user
func (s *UserRecordStore) CreateRecord(ctx context.Context, record *domain.UserRecord) error {
	userUUID, err := parseUserUUID(record.UserID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}

	query := `
		INSERT INTO user_records (user_id, record_data, updated_at)
		VALUES ($1, $2, NOW())
	`
	if _, err := s.db.Exec(ctx, query, userUUID, data); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRecord, err)
	}
	return nil
}

// GetRecord retrieves a user's record without locking
func (s *UserRecordStore) GetRecord(ctx context.Context, userID string) (*domain.UserRecord, error) {
	return getRecordInternal(ctx, s.db, userID, false)
}

// BeginTx starts a transaction for record mutations
func (s *UserRecordStore) BeginTx(ctx context.Context) (repository.UserRecordTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &userRecordTx{tx: tx}, nil
}

type userRecordTx struct {
	tx pgx.Tx
}

// GetRecordForUpdate retrieves a record with a row lock held until commit
func (t *userRecordTx) GetRecordForUpdate(ctx context.Context, userID string) (*domain.UserRecord, error) {
	return getRecordInternal(ctx, t.tx, userID, true)
}

// UpdateRecord writes the full record document back
func (t *userRecordTx) UpdateRecord(ctx context.Context, record *domain.UserRecord) error {
	userUUID, err := parseUserUUID(record.UserID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}

	query := `
		UPDATE user_records
		SET record_data = $2, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := t.tx.Exec(ctx, query, userUUID, data)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateRecord, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AppendOutbox writes an event row in the same transaction as the state change
func (t *userRecordTx) AppendOutbox(ctx context.Context, eventType string, payload []byte) error {
	query := `
		INSERT INTO outbox (event_type, payload)
		VALUES ($1, $2)
	`
	if _, err := t.tx.Exec(ctx, query, eventType, payload); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAppendOutbox, err)
	}
	return nil
}

func (t *userRecordTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *userRecordTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return errors.New(domain.ErrMsgTxClosed)
		}
		return err
	}
	return nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getRecordInternal(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.UserRecord, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT record_data FROM user_records WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var data []byte
	if err := q.QueryRow(ctx, query, userUUID).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRecord, err)
	}

	var record domain.UserRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
	}
	record.Normalize()

	return &record, nil
}
