package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(CheckoutCompleted, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	evt := NewCheckoutCompletedEvent("user-1", "tx-1", 12500, 2, time.Now())
	err := bus.Publish(context.Background(), evt)
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, CheckoutCompleted, received[0].Type)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewLevelUpEvent("user-1", 1, 2, 1300))
	assert.NoError(t, err)
}

func TestMemoryBus_HandlerErrorDoesNotShortCircuit(t *testing.T) {
	bus := NewMemoryBus()

	var secondRan bool
	bus.Subscribe(ProfileUpdated, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	bus.Subscribe(ProfileUpdated, func(ctx context.Context, e Event) error {
		secondRan = true
		return nil
	})

	err := bus.Publish(context.Background(), NewProfileUpdatedEvent("user-1", "corpo", time.Now()))
	assert.Error(t, err)
	assert.True(t, secondRan)
}

func TestDecodePayload_Struct(t *testing.T) {
	evt := NewCheckoutCompletedEvent("user-1", "tx-9", 45000, 1, time.Unix(1700000000, 0))

	var p CheckoutCompletedPayloadV1
	require.NoError(t, DecodePayload(evt, &p))

	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, "tx-9", p.TransactionID)
	assert.Equal(t, 45000, p.Total)
	assert.Equal(t, int64(1700000000), p.Timestamp)
}

func TestDecodePayload_RawJSON(t *testing.T) {
	raw := json.RawMessage(`{"user_id":"user-2","achievement_id":"first_purchase","timestamp":100}`)
	evt := Event{Version: EventSchemaVersion, Type: AchievementUnlocked, Payload: raw}

	var p AchievementUnlockedPayloadV1
	require.NoError(t, DecodePayload(evt, &p))
	assert.Equal(t, "first_purchase", p.AchievementID)
}
