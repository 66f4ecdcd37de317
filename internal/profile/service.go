package profile

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

// XPResult reports the outcome of an XP award
type XPResult struct {
	XP        int  `json:"xp"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveled_up"`
}

// Service defines the interface for profile and progression operations
type Service interface {
	Get(ctx context.Context, userID string) (*domain.UserRecord, error)

	// UpdateProfile replaces avatar, bio and optional avatar image URL.
	UpdateProfile(ctx context.Context, userID, avatar, bio, imageURL string) (*domain.Profile, error)

	// AddXP awards experience. Level is derived, never stored.
	AddXP(ctx context.Context, userID string, amount int) (*XPResult, error)

	// UnlockAchievement unlocks by ID, idempotently.
	UnlockAchievement(ctx context.Context, userID, achievementID string) (*domain.Profile, error)

	// EvaluateAchievements unlocks every badge whose predicate the record
	// now satisfies, returning the newly unlocked IDs.
	EvaluateAchievements(ctx context.Context, userID string) ([]string, error)

	// Subscribe wires automatic achievement evaluation to domain events.
	Subscribe(bus event.Bus)
}

type service struct {
	records repository.UserRecords
	locks   *concurrency.LockManager
	now     func() time.Time
}

// NewService creates a new profile service
func NewService(records repository.UserRecords, locks *concurrency.LockManager) Service {
	return &service{
		records: records,
		locks:   locks,
		now:     time.Now,
	}
}

// Get returns the full user record
func (s *service) Get(ctx context.Context, userID string) (*domain.UserRecord, error) {
	return s.records.GetRecord(ctx, userID)
}

// UpdateProfile replaces the editable profile fields. Bio is truncated to the
// cap rather than rejected; clients enforce the same limit but the server
// must never store more.
func (s *service) UpdateProfile(ctx context.Context, userID, avatar, bio, imageURL string) (*domain.Profile, error) {
	if !domain.ValidAvatar(avatar) {
		return nil, fmt.Errorf("%w: unknown avatar %q", domain.ErrInvalidInput, avatar)
	}
	if runes := []rune(bio); len(runes) > domain.MaxBioLength {
		bio = string(runes[:domain.MaxBioLength])
	}

	var profile domain.Profile
	err := s.mutate(ctx, userID, func(record *domain.UserRecord) (*event.Event, error) {
		record.Profile.Avatar = avatar
		record.Profile.Bio = bio
		if imageURL != "" {
			record.Profile.AvatarImageURL = imageURL
		}
		profile = record.Profile

		evt := event.NewProfileUpdatedEvent(userID, avatar, s.now())
		return &evt, nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddXP increments experience and reports whether the derived level rose
func (s *service) AddXP(ctx context.Context, userID string, amount int) (*XPResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: xp amount must be non-negative", domain.ErrInvalidInput)
	}

	var result XPResult
	err := s.mutate(ctx, userID, func(record *domain.UserRecord) (*event.Event, error) {
		oldLevel := record.Profile.Level()
		record.Profile.XP += amount
		newLevel := record.Profile.Level()

		result = XPResult{
			XP:        record.Profile.XP,
			Level:     newLevel,
			LeveledUp: newLevel > oldLevel,
		}

		if result.LeveledUp {
			evt := event.NewLevelUpEvent(userID, oldLevel, newLevel, record.Profile.XP)
			return &evt, nil
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.XPAwarded.Add(float64(amount))
	return &result, nil
}

// UnlockAchievement unlocks the badge if it exists. Already-unlocked badges
// are a successful no-op.
func (s *service) UnlockAchievement(ctx context.Context, userID, achievementID string) (*domain.Profile, error) {
	if _, ok := AchievementByID(achievementID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAchievement, achievementID)
	}

	var profile domain.Profile
	err := s.mutate(ctx, userID, func(record *domain.UserRecord) (*event.Event, error) {
		if record.Profile.HasAchievement(achievementID) {
			profile = record.Profile
			return nil, nil
		}
		record.Profile.Achievements = append(record.Profile.Achievements, achievementID)
		profile = record.Profile

		metrics.AchievementsUnlocked.WithLabelValues(achievementID).Inc()
		evt := event.NewAchievementUnlockedEvent(userID, achievementID, s.now())
		return &evt, nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// EvaluateAchievements runs every predicate against the current record and
// unlocks the newly satisfied badges in one transaction.
func (s *service) EvaluateAchievements(ctx context.Context, userID string) ([]string, error) {
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

	now := s.now()
	unlocked := []string{}
	for _, a := range Achievements {
		if record.Profile.HasAchievement(a.ID) {
			continue
		}
		if !a.Check(record, now) {
			continue
		}
		record.Profile.Achievements = append(record.Profile.Achievements, a.ID)
		unlocked = append(unlocked, a.ID)
	}

	if len(unlocked) == 0 {
		return unlocked, nil
	}

	if err := tx.UpdateRecord(ctx, record); err != nil {
		return nil, err
	}

	for _, id := range unlocked {
		evt := event.NewAchievementUnlockedEvent(userID, id, now)
		payload, err := json.Marshal(evt.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode achievement event: %w", err)
		}
		if err := tx.AppendOutbox(ctx, string(evt.Type), payload); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	for _, id := range unlocked {
		metrics.AchievementsUnlocked.WithLabelValues(id).Inc()
	}
	log.Info("Achievements unlocked", "user_id", userID, "achievements", unlocked)

	return unlocked, nil
}

// Subscribe re-evaluates achievements whenever a relevant domain event lands
func (s *service) Subscribe(bus event.Bus) {
	handler := func(ctx context.Context, evt event.Event) error {
		var payload struct {
			UserID string `json:"user_id"`
		}
		if err := event.DecodePayload(evt, &payload); err != nil || payload.UserID == "" {
			// Malformed payloads are dropped, not retried.
			logger.FromContext(ctx).Warn("Achievement evaluation skipped", "type", evt.Type, "error", err)
			return nil
		}
		_, err := s.EvaluateAchievements(ctx, payload.UserID)
		return err
	}

	for _, t := range []event.Type{event.CheckoutCompleted, event.LoadoutEquipped, event.ProfileUpdated} {
		bus.Subscribe(t, handler)
	}
}

// mutate runs fn under the per-user lock and persists the result, appending
// an optional outbox event in the same transaction.
func (s *service) mutate(ctx context.Context, userID string, fn func(record *domain.UserRecord) (*event.Event, error)) error {
	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.records.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	record, err := tx.GetRecordForUpdate(ctx, userID)
	if err != nil {
		return err
	}

	evt, err := fn(record)
	if err != nil {
		return err
	}

	if err := tx.UpdateRecord(ctx, record); err != nil {
		return err
	}

	if evt != nil {
		payload, err := json.Marshal(evt.Payload)
		if err != nil {
			return fmt.Errorf("failed to encode event payload: %w", err)
		}
		if err := tx.AppendOutbox(ctx, string(evt.Type), payload); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
