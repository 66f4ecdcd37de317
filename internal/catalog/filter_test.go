package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybermarket/server/internal/domain"
)

func sampleItems() []domain.Item {
	return []domain.Item{
		{ID: "1", Name: "M-179 ACHILLES", Category: domain.CategoryWeapon, Price: 12500, Rarity: domain.RarityEpic},
		{ID: "2", Name: "ARASAKA MK.IV", Category: domain.CategoryImplant, Price: 45000, Rarity: domain.RarityLegendary},
		{ID: "3", Name: "OPTICAL CAMO", Category: domain.CategoryGear, Price: 8500, Rarity: domain.RarityRare},
		{ID: "4", Name: "UNITY", Category: domain.CategoryWeapon, Price: 4500, Rarity: domain.RarityCommon},
	}
}

func TestFilterItems_Category(t *testing.T) {
	items := sampleItems()

	weapons := FilterItems(items, Filter{Category: "weapon"})
	require.Len(t, weapons, 2)
	// Catalog order is preserved
	assert.Equal(t, "M-179 ACHILLES", weapons[0].Name)
	assert.Equal(t, "UNITY", weapons[1].Name)

	all := FilterItems(items, Filter{Category: CategoryAll})
	assert.Len(t, all, 4)

	none := FilterItems(items, Filter{Category: "vehicle"})
	assert.Empty(t, none)
}

func TestFilterItems_SearchCaseInsensitive(t *testing.T) {
	items := sampleItems()

	tests := []struct {
		search string
		want   []string
	}{
		{"achilles", []string{"M-179 ACHILLES"}},
		{"ARASAKA", []string{"ARASAKA MK.IV"}},
		{"camo", []string{"OPTICAL CAMO"}},
		{"a", []string{"M-179 ACHILLES", "ARASAKA MK.IV", "OPTICAL CAMO"}},
		{"flathead", nil},
	}

	for _, tt := range tests {
		got := FilterItems(items, Filter{Search: tt.search})
		names := make([]string, 0, len(got))
		for _, item := range got {
			names = append(names, item.Name)
		}
		if tt.want == nil {
			assert.Empty(t, names, "search %q", tt.search)
		} else {
			assert.Equal(t, tt.want, names, "search %q", tt.search)
		}
	}
}

func TestFilterItems_Sort(t *testing.T) {
	items := sampleItems()

	asc := FilterItems(items, Filter{Sort: SortPriceAsc})
	assert.Equal(t, []int{4500, 8500, 12500, 45000}, prices(asc))

	desc := FilterItems(items, Filter{Sort: SortPriceDesc})
	assert.Equal(t, []int{45000, 12500, 8500, 4500}, prices(desc))

	byName := FilterItems(items, Filter{Sort: SortName})
	assert.Equal(t, "ARASAKA MK.IV", byName[0].Name)
}

func TestFilterItems_DoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	_ = FilterItems(items, Filter{Sort: SortPriceDesc})
	assert.Equal(t, "M-179 ACHILLES", items[0].Name)
}

func TestFilterItems_CombinedFilters(t *testing.T) {
	items := sampleItems()

	got := FilterItems(items, Filter{Category: "weapon", Search: "unity"})
	require.Len(t, got, 1)
	assert.Equal(t, "UNITY", got[0].Name)
}

func prices(items []domain.Item) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.Price
	}
	return out
}
