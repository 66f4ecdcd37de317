package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cybermarket/server/internal/catalog"
	"github.com/cybermarket/server/internal/concurrency"
	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/event"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/metrics"
	"github.com/cybermarket/server/internal/repository"
)

// CheckoutResult is the structured outcome of a checkout attempt. A declined
// checkout is a result, not an error.
type CheckoutResult struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Transaction *domain.Transaction `json:"transaction,omitempty"`
	Balance     int                 `json:"balance"`
}

// Service defines the interface for cart, checkout, favorites and ledger
// operations
type Service interface {
	GetCart(ctx context.Context, userID string) ([]domain.Item, error)
	AddToCart(ctx context.Context, userID, itemID string) ([]domain.Item, error)
	RemoveFromCart(ctx context.Context, userID string, index int) ([]domain.Item, error)
	ClearCart(ctx context.Context, userID string) error
	Checkout(ctx context.Context, userID string) (*CheckoutResult, error)

	ToggleFavorite(ctx context.Context, userID, itemID string) ([]string, error)
	ListFavorites(ctx context.Context, userID string) ([]string, error)

	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	GetBalance(ctx context.Context, userID string) (int, error)
	GetInventory(ctx context.Context, userID string) ([]domain.Item, error)
}

type service struct {
	records repository.UserRecords
	catalog catalog.Service
	locks   *concurrency.LockManager
	now     func() time.Time
}

// NewService creates a new store service
func NewService(records repository.UserRecords, catalogSvc catalog.Service, locks *concurrency.LockManager) Service {
	return &service{
		records: records,
		catalog: catalogSvc,
		locks:   locks,
		now:     time.Now,
	}
}

// GetCart returns the current cart contents
func (s *service) GetCart(ctx context.Context, userID string) ([]domain.Item, error) {
	record, err := s.records.GetRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	return record.Cart, nil
}

// AddToCart snapshots the catalog item into the cart. Duplicates are allowed;
// a full cart is an error.
func (s *service) AddToCart(ctx context.Context, userID, itemID string) ([]domain.Item, error) {
	item, err := s.catalog.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var cart []domain.Item
	err = s.mutate(ctx, userID, func(record *domain.UserRecord) error {
		if len(record.Cart) >= domain.MaxCartSize {
			return domain.ErrCartFull
		}
		record.Cart = append(record.Cart, *item)
		cart = record.Cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveFromCart removes the item at the given position. An out-of-range
// index is an explicit error, never a silent no-op.
func (s *service) RemoveFromCart(ctx context.Context, userID string, index int) ([]domain.Item, error) {
	var cart []domain.Item
	err := s.mutate(ctx, userID, func(record *domain.UserRecord) error {
		if index < 0 || index >= len(record.Cart) {
			return fmt.Errorf("%w: %d", domain.ErrInvalidCartIndex, index)
		}
		record.Cart = append(record.Cart[:index], record.Cart[index+1:]...)
		cart = record.Cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart empties the cart
func (s *service) ClearCart(ctx context.Context, userID string) error {
	return s.mutate(ctx, userID, func(record *domain.UserRecord) error {
		record.Cart = []domain.Item{}
		return nil
	})
}

// Checkout settles the cart against the credit balance. The whole mutation
// commits in one database transaction together with its outbox row, so a
// crash can never leave items transferred but credits unspent or vice versa.
func (s *service) Checkout(ctx context.Context, userID string) (*CheckoutResult, error) {
	log := logger.FromContext(ctx)

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.records.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	record, err := tx.GetRecordForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, item := range record.Cart {
		total += item.Price
	}

	if record.Credits < total {
		metrics.CheckoutsTotal.WithLabelValues(metrics.ResultDeclined).Inc()
		log.Info("Checkout declined", "user_id", userID, "total", total, "balance", record.Credits)
		return &CheckoutResult{
			Success: false,
			Message: domain.MsgInsufficientFunds,
			Balance: record.Credits,
		}, nil
	}

	now := s.now()
	transaction := domain.Transaction{
		ID:        uuid.NewString(),
		Items:     append([]domain.Item{}, record.Cart...),
		Total:     total,
		Timestamp: now.UnixMilli(),
	}

	record.Credits -= total
	record.Inventory = append(record.Inventory, record.Cart...)
	record.Transactions = append([]domain.Transaction{transaction}, record.Transactions...)
	record.Cart = []domain.Item{}

	if err := tx.UpdateRecord(ctx, record); err != nil {
		return nil, err
	}

	evt := event.NewCheckoutCompletedEvent(userID, transaction.ID, total, len(transaction.Items), now)
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout event: %w", err)
	}
	if err := tx.AppendOutbox(ctx, string(evt.Type), payload); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.CheckoutsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.CreditsSpent.Add(float64(total))
	for _, item := range transaction.Items {
		metrics.ItemsPurchased.WithLabelValues(item.Name).Inc()
	}

	log.Info("Checkout completed", "user_id", userID, "transaction_id", transaction.ID,
		"total", total, "items", len(transaction.Items), "balance", record.Credits)

	return &CheckoutResult{
		Success:     true,
		Message:     domain.MsgCheckoutComplete,
		Transaction: &transaction,
		Balance:     record.Credits,
	}, nil
}

// ToggleFavorite adds the item ID to the favorites set, or removes it if
// present. Applying it twice always restores the original set.
func (s *service) ToggleFavorite(ctx context.Context, userID, itemID string) ([]string, error) {
	var favorites []string
	err := s.mutate(ctx, userID, func(record *domain.UserRecord) error {
		if record.HasFavorite(itemID) {
			next := make([]string, 0, len(record.Favorites)-1)
			for _, id := range record.Favorites {
				if id != itemID {
					next = append(next, id)
				}
			}
			record.Favorites = next
		} else {
			record.Favorites = append(record.Favorites, itemID)
		}
		favorites = record.Favorites
		return nil
	})
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// ListFavorites returns the favorite item IDs
func (s *service) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	record, err := s.records.GetRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	return record.Favorites, nil
}

// ListTransactions returns the ledger, newest first
func (s *service) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	record, err := s.records.GetRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	return record.Transactions, nil
}

// GetBalance returns the current credit balance
func (s *service) GetBalance(ctx context.Context, userID string) (int, error) {
	record, err := s.records.GetRecord(ctx, userID)
	if err != nil {
		return 0, err
	}
	return record.Credits, nil
}

// GetInventory returns the owned item multiset
func (s *service) GetInventory(ctx context.Context, userID string) ([]domain.Item, error) {
	record, err := s.records.GetRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	return record.Inventory, nil
}

// mutate runs fn against the locked record and persists the result. The
// per-user lock serializes writers ahead of the row lock so lock ordering
// stays consistent across services.
func (s *service) mutate(ctx context.Context, userID string, fn func(record *domain.UserRecord) error) error {
	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.records.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	record, err := tx.GetRecordForUpdate(ctx, userID)
	if err != nil {
		return err
	}

	if err := fn(record); err != nil {
		return err
	}

	if err := tx.UpdateRecord(ctx, record); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
