package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybermarket/server/internal/domain"
)

// AccountStore persists login credentials
type AccountStore struct {
	db *pgxpool.Pool
}

// NewAccountStore creates a new AccountStore
func NewAccountStore(db *pgxpool.Pool) *AccountStore {
	return &AccountStore{db: db}
}

// CreateAccount inserts a new account and fills in the generated ID
func (s *AccountStore) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (username, password_hash, created_at)
		VALUES ($1, $2, NOW())
		RETURNING account_id, created_at
	`
	var createdAt time.Time
	err := s.db.QueryRow(ctx, query, account.Username, account.PasswordHash).
		Scan(&account.ID, &createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertAccount, err)
	}
	account.CreatedAt = createdAt.Unix()
	return nil
}

// GetAccountByUsername retrieves an account by its unique username
func (s *AccountStore) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `
		SELECT account_id, username, password_hash, created_at
		FROM accounts
		WHERE username = $1
	`
	return s.scanAccount(s.db.QueryRow(ctx, query, username))
}

// GetAccountByID retrieves an account by ID
func (s *AccountStore) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	userUUID, err := parseUserUUID(id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT account_id, username, password_hash, created_at
		FROM accounts
		WHERE account_id = $1
	`
	return s.scanAccount(s.db.QueryRow(ctx, query, userUUID))
}

func (s *AccountStore) scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var createdAt time.Time
	if err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}
	account.CreatedAt = createdAt.Unix()
	return &account, nil
}
