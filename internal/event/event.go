package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Common event types
const (
	CheckoutCompleted   Type = "checkout.completed"
	LoadoutEquipped     Type = "loadout.equipped"
	LoadoutUnequipped   Type = "loadout.unequipped"
	ProfileUpdated      Type = "profile.updated"
	ProfileLevelUp      Type = "profile.levelup"
	AchievementUnlocked Type = "achievement.unlocked"
)

// EventSchemaVersion is the current payload schema version.
const EventSchemaVersion = "1.0"

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// CheckoutCompletedPayloadV1 is the typed payload for completed checkouts.
type CheckoutCompletedPayloadV1 struct {
	UserID        string `json:"user_id"`
	TransactionID string `json:"transaction_id"`
	Total         int    `json:"total"`
	ItemCount     int    `json:"item_count"`
	Timestamp     int64  `json:"timestamp"`
}

// LoadoutChangedPayloadV1 is the typed payload for equip/unequip events.
type LoadoutChangedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Slot      string `json:"slot"`
	ItemID    string `json:"item_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ProfileUpdatedPayloadV1 is the typed payload for profile edits.
type ProfileUpdatedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Avatar    string `json:"avatar"`
	Timestamp int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for derived level increases.
type LevelUpPayloadV1 struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	XP       int    `json:"xp"`
}

// AchievementUnlockedPayloadV1 is the typed payload for achievement unlocks.
type AchievementUnlockedPayloadV1 struct {
	UserID        string `json:"user_id"`
	AchievementID string `json:"achievement_id"`
	Timestamp     int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewCheckoutCompletedEvent creates a checkout event with type-safe payload.
func NewCheckoutCompletedEvent(userID, transactionID string, total, itemCount int, ts time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CheckoutCompleted,
		Payload: CheckoutCompletedPayloadV1{
			UserID:        userID,
			TransactionID: transactionID,
			Total:         total,
			ItemCount:     itemCount,
			Timestamp:     ts.Unix(),
		},
	}
}

// NewLoadoutEquippedEvent creates an equip event.
func NewLoadoutEquippedEvent(userID, slot, itemID string, ts time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LoadoutEquipped,
		Payload: LoadoutChangedPayloadV1{
			UserID:    userID,
			Slot:      slot,
			ItemID:    itemID,
			Timestamp: ts.Unix(),
		},
	}
}

// NewLoadoutUnequippedEvent creates an unequip event.
func NewLoadoutUnequippedEvent(userID, slot string, ts time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LoadoutUnequipped,
		Payload: LoadoutChangedPayloadV1{
			UserID:    userID,
			Slot:      slot,
			Timestamp: ts.Unix(),
		},
	}
}

// NewProfileUpdatedEvent creates a profile updated event.
func NewProfileUpdatedEvent(userID, avatar string, ts time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ProfileUpdated,
		Payload: ProfileUpdatedPayloadV1{
			UserID:    userID,
			Avatar:    avatar,
			Timestamp: ts.Unix(),
		},
	}
}

// NewLevelUpEvent creates a level up event.
func NewLevelUpEvent(userID string, oldLevel, newLevel, xp int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ProfileLevelUp,
		Payload: LevelUpPayloadV1{
			UserID:   userID,
			OldLevel: oldLevel,
			NewLevel: newLevel,
			XP:       xp,
		},
	}
}

// NewAchievementUnlockedEvent creates an achievement unlocked event.
func NewAchievementUnlockedEvent(userID, achievementID string, ts time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AchievementUnlocked,
		Payload: AchievementUnlockedPayloadV1{
			UserID:        userID,
			AchievementID: achievementID,
			Timestamp:     ts.Unix(),
		},
	}
}

// DecodePayload unmarshals the event payload into out. It handles payloads
// that arrive as raw JSON (from the outbox) as well as in-process structs.
func DecodePayload(e Event, out interface{}) error {
	switch p := e.Payload.(type) {
	case json.RawMessage:
		return json.Unmarshal(p, out)
	case []byte:
		return json.Unmarshal(p, out)
	default:
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to re-encode payload: %w", err)
		}
		return json.Unmarshal(data, out)
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// errors are collected rather than short-circuiting the remaining handlers.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler error(s) for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
