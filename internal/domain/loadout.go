package domain

// Slot identifies one of the five loadout positions.
type Slot string

const (
	SlotPrimary   Slot = "primary"
	SlotSecondary Slot = "secondary"
	SlotArmor     Slot = "armor"
	SlotImplant   Slot = "implant"
	SlotGear      Slot = "gear"
)

// AllSlots lists every slot in display order.
var AllSlots = []Slot{SlotPrimary, SlotSecondary, SlotArmor, SlotImplant, SlotGear}

// ValidSlot reports whether s is a known slot.
func ValidSlot(s Slot) bool {
	switch s {
	case SlotPrimary, SlotSecondary, SlotArmor, SlotImplant, SlotGear:
		return true
	}
	return false
}

// SlotAccepts reports whether an item of the given category/subcategory may
// occupy the slot. Weapons go in either weapon slot, implants in the implant
// slot; gear splits on subcategory (armor vs tactical).
func SlotAccepts(s Slot, item Item) bool {
	switch s {
	case SlotPrimary, SlotSecondary:
		return item.Category == CategoryWeapon
	case SlotImplant:
		return item.Category == CategoryImplant
	case SlotArmor:
		return item.Category == CategoryGear && item.Subcategory == SubcategoryArmor
	case SlotGear:
		return item.Category == CategoryGear && item.Subcategory != SubcategoryArmor
	}
	return false
}

// Loadout holds the five equip slots. Each slot references at most one owned
// item snapshot; an empty slot is nil.
type Loadout struct {
	Primary   *Item `json:"primary"`
	Secondary *Item `json:"secondary"`
	Armor     *Item `json:"armor"`
	Implant   *Item `json:"implant"`
	Gear      *Item `json:"gear"`
}

// Get returns the item in the given slot, or nil.
func (l *Loadout) Get(s Slot) *Item {
	switch s {
	case SlotPrimary:
		return l.Primary
	case SlotSecondary:
		return l.Secondary
	case SlotArmor:
		return l.Armor
	case SlotImplant:
		return l.Implant
	case SlotGear:
		return l.Gear
	}
	return nil
}

// Set writes the item into the given slot, overwriting any occupant.
func (l *Loadout) Set(s Slot, item *Item) {
	switch s {
	case SlotPrimary:
		l.Primary = item
	case SlotSecondary:
		l.Secondary = item
	case SlotArmor:
		l.Armor = item
	case SlotImplant:
		l.Implant = item
	case SlotGear:
		l.Gear = item
	}
}

// EquippedCount returns how many slots other than exclude hold the item.
// Pass an empty Slot to count across all slots.
func (l *Loadout) EquippedCount(itemID string, exclude Slot) int {
	count := 0
	for _, s := range AllSlots {
		if s == exclude {
			continue
		}
		if it := l.Get(s); it != nil && it.ID == itemID {
			count++
		}
	}
	return count
}

// FullyEquipped reports whether every slot is occupied.
func (l *Loadout) FullyEquipped() bool {
	for _, s := range AllSlots {
		if l.Get(s) == nil {
			return false
		}
	}
	return true
}
