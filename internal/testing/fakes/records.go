// Package fakes provides stateful in-memory repository implementations for
// integration-style unit tests.
package fakes

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/repository"
)

// OutboxWrite captures one AppendOutbox call made through a fake transaction.
type OutboxWrite struct {
	EventType string
	Payload   []byte
}

// UserRecords is a stateful fake of repository.UserRecords. Records are
// deep-copied across the transaction boundary, so uncommitted mutations are
// invisible and rollback genuinely discards them.
type UserRecords struct {
	mu      sync.Mutex
	records map[string]*domain.UserRecord

	// Outbox collects committed outbox writes in order.
	Outbox []OutboxWrite

	// FailUpdate forces the next UpdateRecord to fail, for error-path tests.
	FailUpdate bool
}

// NewUserRecords creates an empty fake store
func NewUserRecords() *UserRecords {
	return &UserRecords{records: make(map[string]*domain.UserRecord)}
}

// Seed installs a record directly, bypassing the transaction machinery
func (f *UserRecords) Seed(record *domain.UserRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.UserID] = deepCopy(record)
}

// Snapshot returns a deep copy of the stored record for assertions
func (f *UserRecords) Snapshot(userID string) *domain.UserRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[userID]
	if !ok {
		return nil
	}
	return deepCopy(record)
}

func (f *UserRecords) CreateRecord(ctx context.Context, record *domain.UserRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.UserID] = deepCopy(record)
	return nil
}

func (f *UserRecords) GetRecord(ctx context.Context, userID string) (*domain.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return deepCopy(record), nil
}

func (f *UserRecords) BeginTx(ctx context.Context) (repository.UserRecordTx, error) {
	return &fakeTx{store: f}, nil
}

type fakeTx struct {
	store   *UserRecords
	pending *domain.UserRecord
	outbox  []OutboxWrite
	closed  bool
}

func (t *fakeTx) GetRecordForUpdate(ctx context.Context, userID string) (*domain.UserRecord, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	record, ok := t.store.records[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return deepCopy(record), nil
}

func (t *fakeTx) UpdateRecord(ctx context.Context, record *domain.UserRecord) error {
	if t.store.FailUpdate {
		return errors.New("forced update failure")
	}
	t.pending = deepCopy(record)
	return nil
}

func (t *fakeTx) AppendOutbox(ctx context.Context, eventType string, payload []byte) error {
	t.outbox = append(t.outbox, OutboxWrite{EventType: eventType, Payload: append([]byte{}, payload...)})
	return nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.pending != nil {
		t.store.records[t.pending.UserID] = t.pending
	}
	t.store.Outbox = append(t.store.Outbox, t.outbox...)
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	t.pending = nil
	t.outbox = nil
	return nil
}

// Accounts is a stateful fake of repository.Accounts
type Accounts struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	nextID   int
}

// NewAccounts creates an empty fake account store
func NewAccounts() *Accounts {
	return &Accounts{accounts: make(map[string]*domain.Account)}
}

func (f *Accounts) CreateAccount(ctx context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[account.Username]; exists {
		return domain.ErrUsernameTaken
	}
	f.nextID++
	account.ID = fakeUUID(f.nextID)
	account.CreatedAt = time.Now().Unix()
	stored := *account
	f.accounts[account.Username] = &stored
	return nil
}

func (f *Accounts) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *account
	return &out, nil
}

func (f *Accounts) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.ID == id {
			out := *account
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func fakeUUID(n int) string {
	// Stable, readable, unique per store. Not a real UUID on purpose.
	return "00000000-0000-0000-0000-" + padLeft(n)
}

func padLeft(n int) string {
	s := ""
	for i := 0; i < 12; i++ {
		s = string(rune('0'+n%10)) + s
		n /= 10
	}
	return s
}

func deepCopy(record *domain.UserRecord) *domain.UserRecord {
	data, err := json.Marshal(record)
	if err != nil {
		panic(err)
	}
	var out domain.UserRecord
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	out.Normalize()
	return &out
}
