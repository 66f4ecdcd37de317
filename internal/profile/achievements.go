package profile

import (
	"time"

	"github.com/cybermarket/server/internal/domain"
)

// Achievement thresholds
const (
	bigSpenderThreshold = 100000
	collectorThreshold  = 10
	veteranDays         = 30
	shopaholicThreshold = 50
	arsenalThreshold    = 5
)

// Achievement describes one unlockable badge and the predicate that earns it.
type Achievement struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Rarity      domain.Rarity `json:"rarity"`

	// Check reports whether the record currently satisfies the unlock
	// condition. It must be a pure function of the record and clock.
	Check func(record *domain.UserRecord, now time.Time) bool `json:"-"`
}

// Achievements is the fixed badge catalog in display order.
var Achievements = []Achievement{
	{
		ID:          "first_purchase",
		Name:        "First Blood",
		Description: "Complete your first transaction",
		Icon:        "🛒",
		Rarity:      domain.RarityCommon,
		Check: func(r *domain.UserRecord, _ time.Time) bool {
			return len(r.Transactions) >= 1
		},
	},
	{
		ID:          "big_spender",
		Name:        "Big Spender",
		Description: "Spend 100,000 credits total",
		Icon:        "💰",
		Rarity:      domain.RarityRare,
		Check: func(r *domain.UserRecord, _ time.Time) bool {
			return r.TotalSpent() >= bigSpenderThreshold
		},
	},
	{
		ID:          "collector",
		Name:        "Collector",
		Description: "Own 10 or more items",
		Icon:        "📦",
		Rarity:      domain.RarityRare,
		Check: func(r *domain.UserRecord, _ time.Time) bool {
			return len(r.Inventory) >= collectorThreshold
		},
	},
	{
		ID:          "legendary_hunter",
		Name:        "Legendary Hunter",
		Description: "Acquire a legendary item",
		Icon:        "⭐",
		Rarity:      domain.RarityEpic,
		Check: func(r *domain.UserRecord, _ time.Time) bool {
			return r.OwnsRarity(domain.RarityLegendary)
		},
	},
	{
		ID:          "fully_equipped",
		Name:        "Fully Equipped",
		Description: "Fill all loadout slots",
		Icon:        "🎯",
		Rarity:      domain.RarityEpic,
		Check: func(r *domain.UserRecord, _ time.Time) bool {
			return r.Loadout.FullyEquipped()
		},
	},
	{
		ID:          "veteran",
		Name:        "Veteran",
		Description: "30 days since account creation",
		Icon:        "🏆",
		Rarity:      domain.RarityLegendary,
		Check: func(r *domain.UserRecord, now time.Time) bool {
			joined := time.Unix(r.Profile.JoinedAt, 0)
			return now.Sub(joined) >= veteranDays*24*time.Hour
		},
	},
	{
		ID:          "shopaholic",
		Name:        "Shopaholic",
		Description: "Complete 50 transactions",
		Icon:        "🛍️",
		Rarity:      domain.RarityEpic,
		Check: func(r *domain.UserRecord, _ time.Time) bool {
			return len(r.Transactions) >= shopaholicThreshold
		},
	},
	{
		ID:          "arsenal",
		Name:        "Arsenal",
		Description: "Own 5 weapons",
		Icon:        "🔫",
		Rarity:      domain.RarityRare,
		Check: func(r *domain.UserRecord, _ time.Time) bool {
			return r.CountByCategory(domain.CategoryWeapon) >= arsenalThreshold
		},
	},
}

// AchievementByID looks up a badge definition.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
