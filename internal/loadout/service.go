package loadout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cybermarket/server/internal/concurrency"
	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/event"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/metrics"
	"github.com/cybermarket/server/internal/repository"
)

// Service defines the interface for loadout operations
type Service interface {
	Get(ctx context.Context, userID string) (*domain.Loadout, error)

	// Equip places an owned item into an explicit slot.
	Equip(ctx context.Context, userID, itemID string, slot domain.Slot) (*domain.Loadout, error)

	// EquipAuto routes the item to a slot by category policy.
	EquipAuto(ctx context.Context, userID, itemID string) (*domain.Loadout, error)

	// Unequip clears a slot. Clearing an empty slot is a no-op.
	Unequip(ctx context.Context, userID string, slot domain.Slot) (*domain.Loadout, error)
}

type service struct {
	records repository.UserRecords
	locks   *concurrency.LockManager
	now     func() time.Time
}

// NewService creates a new loadout service
func NewService(records repository.UserRecords, locks *concurrency.LockManager) Service {
	return &service{
		records: records,
		locks:   locks,
		now:     time.Now,
	}
}

// ResolveSlot picks the slot an item naturally routes to: weapons take the
// primary slot unless occupied, then secondary; implants take the implant
// slot; gear splits on subcategory.
func ResolveSlot(item domain.Item, loadout *domain.Loadout) (domain.Slot, error) {
	switch item.Category {
	case domain.CategoryWeapon:
		if loadout.Primary == nil {
			return domain.SlotPrimary, nil
		}
		return domain.SlotSecondary, nil
	case domain.CategoryImplant:
		return domain.SlotImplant, nil
	case domain.CategoryGear:
		if item.Subcategory == domain.SubcategoryArmor {
			return domain.SlotArmor, nil
		}
		return domain.SlotGear, nil
	}
	return "", fmt.Errorf("%w: no slot accepts category %q", domain.ErrSlotMismatch, item.Category)
}

// Get returns the current loadout
func (s *service) Get(ctx context.Context, userID string) (*domain.Loadout, error) {
	record, err := s.records.GetRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &record.Loadout, nil
}

// Equip places an owned item into the slot. The owned quantity must exceed
// the count already equipped in other slots, so one physical copy can never
// occupy two slots. Equipping never consumes inventory.
func (s *service) Equip(ctx context.Context, userID, itemID string, slot domain.Slot) (*domain.Loadout, error) {
	if !domain.ValidSlot(slot) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSlot, slot)
	}
	return s.equip(ctx, userID, itemID, func(item domain.Item, loadout *domain.Loadout) (domain.Slot, error) {
		if !domain.SlotAccepts(slot, item) {
			return "", fmt.Errorf("%w: %s does not accept %s", domain.ErrSlotMismatch, slot, item.Category)
		}
		return slot, nil
	})
}

// EquipAuto routes the item to its natural slot
func (s *service) EquipAuto(ctx context.Context, userID, itemID string) (*domain.Loadout, error) {
	return s.equip(ctx, userID, itemID, func(item domain.Item, loadout *domain.Loadout) (domain.Slot, error) {
		return ResolveSlot(item, loadout)
	})
}

func (s *service) equip(ctx context.Context, userID, itemID string, pick func(domain.Item, *domain.Loadout) (domain.Slot, error)) (*domain.Loadout, error) {
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

	var item *domain.Item
	for i := range record.Inventory {
		if record.Inventory[i].ID == itemID {
			item = &record.Inventory[i]
			break
		}
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s not in inventory", domain.ErrItemNotFound, itemID)
	}

	slot, err := pick(*item, &record.Loadout)
	if err != nil {
		return nil, err
	}

	owned := record.OwnedCount(itemID)
	equippedElsewhere := record.Loadout.EquippedCount(itemID, slot)
	if owned <= equippedElsewhere {
		return nil, fmt.Errorf("%w: own %d, %d already equipped", domain.ErrInsufficientQuantity, owned, equippedElsewhere)
	}

	snapshot := *item
	record.Loadout.Set(slot, &snapshot)

	if err := tx.UpdateRecord(ctx, record); err != nil {
		return nil, err
	}

	evt := event.NewLoadoutEquippedEvent(userID, string(slot), itemID, s.now())
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode equip event: %w", err)
	}
	if err := tx.AppendOutbox(ctx, string(evt.Type), payload); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ItemsEquipped.WithLabelValues(string(slot)).Inc()
	log.Info("Item equipped", "user_id", userID, "item_id", itemID, "slot", slot)

	return &record.Loadout, nil
}

// Unequip clears the slot unconditionally
func (s *service) Unequip(ctx context.Context, userID string, slot domain.Slot) (*domain.Loadout, error) {
	if !domain.ValidSlot(slot) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSlot, slot)
	}

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

	if record.Loadout.Get(slot) == nil {
		// Already empty; nothing to persist.
		return &record.Loadout, nil
	}

	record.Loadout.Set(slot, nil)

	if err := tx.UpdateRecord(ctx, record); err != nil {
		return nil, err
	}

	evt := event.NewLoadoutUnequippedEvent(userID, string(slot), s.now())
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode unequip event: %w", err)
	}
	if err := tx.AppendOutbox(ctx, string(evt.Type), payload); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Slot cleared", "user_id", userID, "slot", slot)
	return &record.Loadout, nil
}
