package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/repository"
)

const defaultCacheTTL = 30 * time.Second

// Service defines the interface for catalog operations
type Service interface {
	List(ctx context.Context, filter Filter) ([]domain.Item, error)
	Get(ctx context.Context, itemID string) (*domain.Item, error)

	// Admin operations
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, itemID string) error

	// EnsureSeeded loads the embedded default products when the catalog is empty
	EnsureSeeded(ctx context.Context) error
}

type service struct {
	repo  repository.Catalog
	cache *listingCache
}

// NewService creates a new catalog service
func NewService(repo repository.Catalog) Service {
	return &service{
		repo:  repo,
		cache: newListingCache(defaultCacheTTL),
	}
}

// List returns the filtered catalog. The unfiltered listing is cached; the
// filter itself is a pure in-memory projection.
func (s *service) List(ctx context.Context, filter Filter) ([]domain.Item, error) {
	items, ok := s.cache.Get()
	if !ok {
		var err error
		items, err = s.repo.ListItems(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list catalog: %w", err)
		}
		s.cache.Set(items)
	}
	return FilterItems(items, filter), nil
}

// Get returns a single catalog item
func (s *service) Get(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Create validates and inserts a new product
func (s *service) Create(ctx context.Context, item *domain.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.repo.InsertItem(ctx, item); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	s.cache.Invalidate()
	return nil
}

// Update validates and overwrites an existing product
func (s *service) Update(ctx context.Context, item *domain.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// Delete removes a product
func (s *service) Delete(ctx context.Context, itemID string) error {
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// EnsureSeeded inserts the embedded default products into an empty catalog
func (s *service) EnsureSeeded(ctx context.Context) error {
	count, err := s.repo.CountItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	log := logger.FromContext(ctx)
	seed := defaultProducts()
	for i := range seed {
		if err := s.repo.InsertItem(ctx, &seed[i]); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", seed[i].Name, err)
		}
	}
	log.Info("Seeded catalog with default products", "count", len(seed))
	return nil
}

func validateItem(item *domain.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !domain.ValidCategory(item.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, item.Category)
	}
	if !domain.ValidSubcategory(item.Category, item.Subcategory) {
		return fmt.Errorf("%w: subcategory %q not valid for category %q",
			domain.ErrInvalidInput, item.Subcategory, item.Category)
	}
	if !domain.ValidRarity(item.Rarity) {
		return fmt.Errorf("%w: unknown rarity %q", domain.ErrInvalidInput, item.Rarity)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidInput)
	}
	return nil
}
