package outbox

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/event"
	"github.com/cybermarket/server/internal/logger"
	"github.com/cybermarket/server/internal/metrics"
)

// Repository provides access to persisted outbox entries.
type Repository interface {
	ListPending(ctx context.Context, limit int) ([]domain.OutboxEntry, error)
	MarkPublished(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64) error
}

const (
	drainBatchSize = 100

	// Entries that keep failing are abandoned rather than retried forever.
	maxAttempts = 10
)

// Service drains persisted events to the in-process bus. Events are written
// to the outbox table in the same transaction as the state change they
// describe, so a publish is never lost to a crash between commit and dispatch.
type Service struct {
	repo     Repository
	bus      event.Bus
	interval time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewService creates a new outbox drain service.
func NewService(repo Repository, bus event.Bus, interval time.Duration) *Service {
	return &Service{
		repo:     repo,
		bus:      bus,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the drain loop in a background goroutine.
func (s *Service) Start(ctx context.Context) {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.Drain(ctx)
			}
		}
	}()
}

// Shutdown stops the drain loop and waits for it to exit.
func (s *Service) Shutdown() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// Drain publishes one batch of pending entries. Exported so callers can
// flush synchronously, e.g. in tests or during shutdown.
func (s *Service) Drain(ctx context.Context) {
	log := logger.FromContext(ctx)

	entries, err := s.repo.ListPending(ctx, drainBatchSize)
	if err != nil {
		log.Error("Failed to list pending outbox entries", "error", err)
		return
	}

	for _, entry := range entries {
		if entry.Attempts >= maxAttempts {
			log.Warn("Abandoning outbox entry after repeated failures",
				"id", entry.ID, "type", entry.EventType, "attempts", entry.Attempts)
			if err := s.repo.MarkPublished(ctx, entry.ID); err != nil {
				log.Error("Failed to abandon outbox entry", "error", err, "id", entry.ID)
			}
			continue
		}

		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.Type(entry.EventType),
			Payload: json.RawMessage(entry.Payload),
		}

		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Error("Failed to publish outbox entry", "error", err, "id", entry.ID, "type", entry.EventType)
			metrics.EventHandlerErrors.WithLabelValues(entry.EventType).Inc()
			if err := s.repo.MarkFailed(ctx, entry.ID); err != nil {
				log.Error("Failed to record outbox failure", "error", err, "id", entry.ID)
			}
			continue
		}

		metrics.EventsPublished.WithLabelValues(entry.EventType).Inc()
		if err := s.repo.MarkPublished(ctx, entry.ID); err != nil {
			log.Error("Failed to mark outbox entry published", "error", err, "id", entry.ID)
		}
	}
}
