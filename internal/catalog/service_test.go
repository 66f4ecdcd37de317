package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cybermarket/server/internal/domain"
)

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *mockCatalogRepo) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *mockCatalogRepo) InsertItem(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockCatalogRepo) UpdateItem(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockCatalogRepo) DeleteItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCatalogRepo) CountItems(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestList_CachesListing(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("ListItems", mock.Anything).Return(sampleItems(), nil).Once()

	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, first, 4)

	// Second call must be served from cache; the mock would fail on a
	// second ListItems call because of Once().
	second, err := svc.List(ctx, Filter{Category: "weapon"})
	require.NoError(t, err)
	assert.Len(t, second, 2)

	repo.AssertExpectations(t)
}

func TestCreate_ValidatesAndInvalidatesCache(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("ListItems", mock.Anything).Return(sampleItems(), nil).Twice()
	repo.On("InsertItem", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.List(ctx, Filter{})
	require.NoError(t, err)

	item := &domain.Item{Name: "FLATHEAD", Category: domain.CategoryGear, Price: 9000, Rarity: domain.RarityRare}
	require.NoError(t, svc.Create(ctx, item))

	// Cache was invalidated, so this hits the repo again.
	_, err = svc.List(ctx, Filter{})
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestCreate_RejectsInvalidItems(t *testing.T) {
	svc := NewService(new(mockCatalogRepo))
	ctx := context.Background()

	tests := []struct {
		name string
		item domain.Item
	}{
		{"missing name", domain.Item{Category: domain.CategoryWeapon, Rarity: domain.RarityCommon}},
		{"bad category", domain.Item{Name: "X", Category: "vehicle", Rarity: domain.RarityCommon}},
		{"bad rarity", domain.Item{Name: "X", Category: domain.CategoryWeapon, Rarity: "mythic"}},
		{"negative price", domain.Item{Name: "X", Category: domain.CategoryWeapon, Rarity: domain.RarityCommon, Price: -1}},
		{"gear without subcategory", domain.Item{Name: "MYSTERY GEAR", Category: domain.CategoryGear, Rarity: domain.RarityCommon}},
		{"gear with bogus subcategory", domain.Item{Name: "X", Category: domain.CategoryGear, Subcategory: "stealth", Rarity: domain.RarityCommon}},
		{"subcategory on a weapon", domain.Item{Name: "X", Category: domain.CategoryWeapon, Subcategory: domain.SubcategoryArmor, Rarity: domain.RarityCommon}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.item
			err := svc.Create(ctx, &item)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreate_AcceptsGearWithSlotClass(t *testing.T) {
	repo := new(mockCatalogRepo)
	repo.On("InsertItem", mock.Anything, mock.Anything).Return(nil).Twice()

	svc := NewService(repo)
	ctx := context.Background()

	armor := domain.Item{Name: "SUBDERMAL PLATING", Category: domain.CategoryGear, Subcategory: domain.SubcategoryArmor, Rarity: domain.RarityRare, Price: 9000}
	require.NoError(t, svc.Create(ctx, &armor))

	tactical := domain.Item{Name: "FLASH GRENADE", Category: domain.CategoryGear, Subcategory: domain.SubcategoryTactical, Rarity: domain.RarityCommon, Price: 300}
	require.NoError(t, svc.Create(ctx, &tactical))

	repo.AssertExpectations(t)
}

func TestDefaultProducts_AllValid(t *testing.T) {
	for _, item := range defaultProducts() {
		item := item
		t.Run(item.Name, func(t *testing.T) {
			assert.NoError(t, validateItem(&item))
		})
	}
}

func TestEnsureSeeded(t *testing.T) {
	t.Run("empty catalog gets seeded", func(t *testing.T) {
		repo := new(mockCatalogRepo)
		repo.On("CountItems", mock.Anything).Return(0, nil)
		repo.On("InsertItem", mock.Anything, mock.Anything).Return(nil).Times(len(defaultProducts()))

		svc := NewService(repo)
		require.NoError(t, svc.EnsureSeeded(context.Background()))
		repo.AssertExpectations(t)
	})

	t.Run("populated catalog left alone", func(t *testing.T) {
		repo := new(mockCatalogRepo)
		repo.On("CountItems", mock.Anything).Return(8, nil)

		svc := NewService(repo)
		require.NoError(t, svc.EnsureSeeded(context.Background()))
		repo.AssertNotCalled(t, "InsertItem", mock.Anything, mock.Anything)
	})
}
