package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/cybermarket/server/internal/domain"
)

// Sort options accepted by List
const (
	SortDefault   = ""
	SortName      = "name"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// CategoryAll matches every category in a filter
const CategoryAll = "all"

// Filter narrows and orders a catalog listing. Zero value means "everything
// in catalog order".
type Filter struct {
	Category string
	Search   string
	Sort     string
}

var folder = cases.Fold()

// FilterItems applies the filter as a pure projection of the input slice.
// Search is a Unicode case-insensitive substring match on the item name.
func FilterItems(items []domain.Item, f Filter) []domain.Item {
	out := make([]domain.Item, 0, len(items))

	var needle string
	if f.Search != "" {
		needle = folder.String(f.Search)
	}

	for _, item := range items {
		if f.Category != "" && f.Category != CategoryAll && string(item.Category) != f.Category {
			continue
		}
		if needle != "" && !strings.Contains(folder.String(item.Name), needle) {
			continue
		}
		out = append(out, item)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}

	return out
}
