package domain

// Account holds login credentials. Everything mutable about a user lives in
// the UserRecord document instead.
type Account struct {
	ID           string `json:"account_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    int64  `json:"created_at"`
}

// Profile is the user-editable sub-record. Level is always derived from XP
// (floor(xp/1000)+1) and never stored.
type Profile struct {
	Avatar         string   `json:"avatar"`
	AvatarImageURL string   `json:"avatar_image_url,omitempty"`
	Bio            string   `json:"bio"`
	XP             int      `json:"xp"`
	Achievements   []string `json:"achievements"`
	JoinedAt       int64    `json:"joined_at"`
}

// Level derives the current level from accumulated XP.
func (p Profile) Level() int {
	return p.XP/XPPerLevel + 1
}

// HasAchievement reports whether the achievement id is already unlocked.
func (p Profile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Transaction is an immutable record of one completed checkout. Items is a
// snapshot taken at purchase time, never a live reference.
type Transaction struct {
	ID        string `json:"id"`
	Items     []Item `json:"items"`
	Total     int    `json:"total"`
	Timestamp int64  `json:"timestamp"`
}

// UserRecord is the full per-user document persisted as one JSONB value.
// It mirrors one authenticated session's state: credits, cart, owned items,
// loadout, favorites, ledger and profile.
type UserRecord struct {
	UserID       string        `json:"user_id"`
	Username     string        `json:"username"`
	Credits      int           `json:"credits"`
	Cart         []Item        `json:"cart"`
	Inventory    []Item        `json:"inventory"`
	Loadout      Loadout       `json:"loadout"`
	Favorites    []string      `json:"favorites"`
	Transactions []Transaction `json:"transactions"`
	Profile      Profile       `json:"profile"`
	IsAdmin      bool          `json:"is_admin"`
}

// NewUserRecord builds the default record for a freshly registered user.
func NewUserRecord(userID, username string, isAdmin bool, joinedAt int64) *UserRecord {
	return &UserRecord{
		UserID:       userID,
		Username:     username,
		Credits:      StartingCredits,
		Cart:         []Item{},
		Inventory:    []Item{},
		Favorites:    []string{},
		Transactions: []Transaction{},
		IsAdmin:      isAdmin,
		Profile: Profile{
			Avatar:       DefaultAvatar,
			Achievements: []string{},
			JoinedAt:     joinedAt,
		},
	}
}

// Normalize replaces nil slice fields with empty slices so callers and JSON
// encoding never see null where a list belongs.
func (u *UserRecord) Normalize() {
	if u.Cart == nil {
		u.Cart = []Item{}
	}
	if u.Inventory == nil {
		u.Inventory = []Item{}
	}
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	if u.Transactions == nil {
		u.Transactions = []Transaction{}
	}
	if u.Profile.Achievements == nil {
		u.Profile.Achievements = []string{}
	}
}

// OwnedCount returns how many copies of the item the user owns.
func (u *UserRecord) OwnedCount(itemID string) int {
	count := 0
	for _, it := range u.Inventory {
		if it.ID == itemID {
			count++
		}
	}
	return count
}

// CountByCategory returns how many owned items fall in the category.
func (u *UserRecord) CountByCategory(c Category) int {
	count := 0
	for _, it := range u.Inventory {
		if it.Category == c {
			count++
		}
	}
	return count
}

// OwnsRarity reports whether any owned item has the given rarity.
func (u *UserRecord) OwnsRarity(r Rarity) bool {
	for _, it := range u.Inventory {
		if it.Rarity == r {
			return true
		}
	}
	return false
}

// TotalSpent sums the totals of every recorded transaction.
func (u *UserRecord) TotalSpent() int {
	total := 0
	for _, tx := range u.Transactions {
		total += tx.Total
	}
	return total
}

// HasFavorite reports whether the item id is in the favorites set.
func (u *UserRecord) HasFavorite(itemID string) bool {
	for _, id := range u.Favorites {
		if id == itemID {
			return true
		}
	}
	return false
}
