package domain

// Category is the closed set of catalog item categories.
type Category string

const (
	CategoryWeapon  Category = "weapon"
	CategoryImplant Category = "implant"
	CategoryGear    Category = "gear"
)

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryWeapon, CategoryImplant, CategoryGear:
		return true
	}
	return false
}

// Subcategory refines gear items into a loadout slot class. It replaces the
// legacy practice of sniffing the display name for substrings like "ARMOR".
type Subcategory string

const (
	SubcategoryNone     Subcategory = ""
	SubcategoryArmor    Subcategory = "armor"
	SubcategoryTactical Subcategory = "tactical"
)

// ValidSubcategory reports whether sub is allowed for the given category.
// Gear must declare its slot class; weapons and implants carry none.
func ValidSubcategory(category Category, sub Subcategory) bool {
	if category == CategoryGear {
		return sub == SubcategoryArmor || sub == SubcategoryTactical
	}
	return sub == SubcategoryNone
}

// Rarity is the ordered classification of an item.
// Ordering: common < rare < epic < legendary.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// rarityRank maps rarities to their position in the ordering.
var rarityRank = map[Rarity]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityLegendary: 3,
}

// Rank returns the ordinal position of the rarity, or -1 if unknown.
func (r Rarity) Rank() int {
	if rank, ok := rarityRank[r]; ok {
		return rank
	}
	return -1
}

// ValidRarity reports whether r is a known rarity.
func ValidRarity(r Rarity) bool {
	_, ok := rarityRank[r]
	return ok
}

// Item is a catalog entry. Once snapshotted into a cart, inventory or
// transaction it is immutable; equality is by ID.
type Item struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    Category          `json:"category"`
	Subcategory Subcategory       `json:"subcategory,omitempty"`
	Price       int               `json:"price"`
	Rarity      Rarity            `json:"rarity"`
	Stats       map[string]string `json:"stats,omitempty"`
	Description string            `json:"description,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
	ModelRef    string            `json:"model_ref,omitempty"`
}
