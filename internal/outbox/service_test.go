package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/event"
	"github.com/cybermarket/server/internal/testing/leaktest"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListPending(ctx context.Context, limit int) ([]domain.OutboxEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutboxEntry), args.Error(1)
}

func (m *mockRepository) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepository) MarkFailed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestDrain_PublishesPendingEntries(t *testing.T) {
	repo := new(mockRepository)
	bus := event.NewMemoryBus()

	var got []event.Event
	bus.Subscribe(event.CheckoutCompleted, func(ctx context.Context, e event.Event) error {
		got = append(got, e)
		return nil
	})

	entries := []domain.OutboxEntry{
		{ID: 1, EventType: "checkout.completed", Payload: []byte(`{"user_id":"u1","total":12500}`)},
		{ID: 2, EventType: "checkout.completed", Payload: []byte(`{"user_id":"u2","total":500}`)},
	}
	repo.On("ListPending", mock.Anything, drainBatchSize).Return(entries, nil)
	repo.On("MarkPublished", mock.Anything, int64(1)).Return(nil)
	repo.On("MarkPublished", mock.Anything, int64(2)).Return(nil)

	svc := NewService(repo, bus, time.Second)
	svc.Drain(context.Background())

	require.Len(t, got, 2)

	var p event.CheckoutCompletedPayloadV1
	require.NoError(t, event.DecodePayload(got[0], &p))
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, 12500, p.Total)

	repo.AssertExpectations(t)
}

func TestDrain_HandlerFailureMarksFailed(t *testing.T) {
	repo := new(mockRepository)
	bus := event.NewMemoryBus()

	bus.Subscribe(event.ProfileUpdated, func(ctx context.Context, e event.Event) error {
		return errors.New("handler blew up")
	})

	entries := []domain.OutboxEntry{
		{ID: 7, EventType: "profile.updated", Payload: []byte(`{"user_id":"u1"}`), Attempts: 1},
	}
	repo.On("ListPending", mock.Anything, drainBatchSize).Return(entries, nil)
	repo.On("MarkFailed", mock.Anything, int64(7)).Return(nil)

	svc := NewService(repo, bus, time.Second)
	svc.Drain(context.Background())

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "MarkPublished", mock.Anything, int64(7))
}

func TestDrain_AbandonsAfterMaxAttempts(t *testing.T) {
	repo := new(mockRepository)
	bus := event.NewMemoryBus()

	var published bool
	bus.Subscribe(event.ProfileUpdated, func(ctx context.Context, e event.Event) error {
		published = true
		return nil
	})

	entries := []domain.OutboxEntry{
		{ID: 3, EventType: "profile.updated", Payload: []byte(`{}`), Attempts: maxAttempts},
	}
	repo.On("ListPending", mock.Anything, drainBatchSize).Return(entries, nil)
	repo.On("MarkPublished", mock.Anything, int64(3)).Return(nil)

	svc := NewService(repo, bus, time.Second)
	svc.Drain(context.Background())

	assert.False(t, published)
	repo.AssertExpectations(t)
}

func TestService_StartShutdown(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListPending", mock.Anything, drainBatchSize).Return([]domain.OutboxEntry{}, nil).Maybe()

	leaktest.CheckNoGoroutineLeak(t, func() {
		svc := NewService(repo, event.NewMemoryBus(), 10*time.Millisecond)
		svc.Start(context.Background())

		time.Sleep(30 * time.Millisecond)
		svc.Shutdown()
	})
}
