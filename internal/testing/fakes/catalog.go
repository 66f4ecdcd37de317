package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/cybermarket/server/internal/domain"
)

// Catalog is an in-memory product store preserving insertion order.
type Catalog struct {
	mu    sync.Mutex
	items []domain.Item
	next  int
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (f *Catalog) ListItems(ctx context.Context) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *Catalog) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (f *Catalog) InsertItem(ctx context.Context, item *domain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.ID == "" {
		f.next++
		item.ID = fmt.Sprintf("product-%04d", f.next)
	}
	f.items = append(f.items, *item)
	return nil
}

func (f *Catalog) UpdateItem(ctx context.Context, item *domain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = *item
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func (f *Catalog) DeleteItem(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func (f *Catalog) CountItems(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items), nil
}
