package repository

import (
	"context"

	"github.com/cybermarket/server/internal/domain"
)

// Accounts defines the interface for credential persistence
type Accounts interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, id string) (*domain.Account, error)
}

// UserRecords defines the interface for user record persistence. A record is
// the single document holding a user's credits, cart, inventory, loadout,
// favorites, transactions and profile.
type UserRecords interface {
	CreateRecord(ctx context.Context, record *domain.UserRecord) error
	GetRecord(ctx context.Context, userID string) (*domain.UserRecord, error)

	BeginTx(ctx context.Context) (UserRecordTx, error)
}

// UserRecordTx defines the interface for transactional record mutations.
// GetRecordForUpdate takes a row lock so concurrent writers serialize.
type UserRecordTx interface {
	GetRecordForUpdate(ctx context.Context, userID string) (*domain.UserRecord, error)
	UpdateRecord(ctx context.Context, record *domain.UserRecord) error
	AppendOutbox(ctx context.Context, eventType string, payload []byte) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Catalog defines the interface for product persistence
type Catalog interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	InsertItem(ctx context.Context, item *domain.Item) error
	UpdateItem(ctx context.Context, item *domain.Item) error
	DeleteItem(ctx context.Context, id string) error
	CountItems(ctx context.Context) (int, error)
}

// Outbox defines the interface for pending event persistence
type Outbox interface {
	ListPending(ctx context.Context, limit int) ([]domain.OutboxEntry, error)
	MarkPublished(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64) error
}
