package profile

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybermarket/server/internal/concurrency"
	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/event"
	"github.com/cybermarket/server/internal/testing/fakes"
)

func newTestService(t *testing.T, seed func(*domain.UserRecord)) (Service, *fakes.UserRecords) {
	t.Helper()
	records := fakes.NewUserRecords()
	record := domain.NewUserRecord("user-1", "v", false, time.Now().Unix())
	if seed != nil {
		seed(record)
	}
	records.Seed(record)
	return NewService(records, concurrency.NewLockManager()), records
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	profile, err := svc.UpdateProfile(ctx, "user-1", "corpo", "Arasaka counter-intel, retired.", "")
	require.NoError(t, err)
	assert.Equal(t, "corpo", profile.Avatar)
	assert.Equal(t, "Arasaka counter-intel, retired.", profile.Bio)

	_, err = svc.UpdateProfile(ctx, "user-1", "maelstrom", "x", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProfile_TruncatesBio(t *testing.T) {
	svc, _ := newTestService(t, nil)

	long := strings.Repeat("ネ", domain.MaxBioLength+50)
	profile, err := svc.UpdateProfile(context.Background(), "user-1", "netrunner", long, "")
	require.NoError(t, err)
	assert.Equal(t, domain.MaxBioLength, len([]rune(profile.Bio)))
}

func TestAddXP(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	result, err := svc.AddXP(ctx, "user-1", 800)
	require.NoError(t, err)
	assert.Equal(t, 800, result.XP)
	assert.Equal(t, 1, result.Level)
	assert.False(t, result.LeveledUp)

	// 800 + 500 = 1300 crosses the 1000 boundary into level 2
	result, err = svc.AddXP(ctx, "user-1", 500)
	require.NoError(t, err)
	assert.Equal(t, 1300, result.XP)
	assert.Equal(t, 2, result.Level)
	assert.True(t, result.LeveledUp)

	// Zero is allowed, negative is not
	_, err = svc.AddXP(ctx, "user-1", 0)
	assert.NoError(t, err)
	_, err = svc.AddXP(ctx, "user-1", -10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddXP_LevelUpEmitsEvent(t *testing.T) {
	svc, records := newTestService(t, nil)

	_, err := svc.AddXP(context.Background(), "user-1", 2500)
	require.NoError(t, err)

	require.Len(t, records.Outbox, 1)
	assert.Equal(t, "profile.levelup", records.Outbox[0].EventType)
}

func TestUnlockAchievement(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	profile, err := svc.UnlockAchievement(ctx, "user-1", "first_purchase")
	require.NoError(t, err)
	assert.Equal(t, []string{"first_purchase"}, profile.Achievements)

	// Idempotent
	profile, err = svc.UnlockAchievement(ctx, "user-1", "first_purchase")
	require.NoError(t, err)
	assert.Equal(t, []string{"first_purchase"}, profile.Achievements)

	_, err = svc.UnlockAchievement(ctx, "user-1", "chrome_junkie")
	assert.ErrorIs(t, err, domain.ErrUnknownAchievement)
}

func TestEvaluateAchievements(t *testing.T) {
	legendary := domain.Item{ID: "i1", Name: "ARASAKA MK.IV", Category: domain.CategoryImplant, Rarity: domain.RarityLegendary}

	svc, records := newTestService(t, func(r *domain.UserRecord) {
		r.Inventory = []domain.Item{legendary}
		r.Transactions = []domain.Transaction{{ID: "t1", Total: 45000, Items: []domain.Item{legendary}}}
	})

	unlocked, err := svc.EvaluateAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first_purchase", "legendary_hunter"}, unlocked)

	// Second evaluation finds nothing new
	unlocked, err = svc.EvaluateAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	// One outbox row per unlock
	assert.Len(t, records.Outbox, 2)
}

func TestEvaluateAchievements_Veteran(t *testing.T) {
	svc, _ := newTestService(t, func(r *domain.UserRecord) {
		r.Profile.JoinedAt = time.Now().Add(-31 * 24 * time.Hour).Unix()
	})

	unlocked, err := svc.EvaluateAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Contains(t, unlocked, "veteran")
}

func TestSubscribe_EvaluatesOnCheckout(t *testing.T) {
	svc, records := newTestService(t, func(r *domain.UserRecord) {
		r.Transactions = []domain.Transaction{{ID: "t1", Total: 500}}
	})

	bus := event.NewMemoryBus()
	svc.Subscribe(bus)

	err := bus.Publish(context.Background(), event.NewCheckoutCompletedEvent("user-1", "t1", 500, 1, time.Now()))
	require.NoError(t, err)

	assert.True(t, records.Snapshot("user-1").Profile.HasAchievement("first_purchase"))
}

func TestAchievementRules(t *testing.T) {
	now := time.Now()
	weapon := domain.Item{ID: "w", Category: domain.CategoryWeapon, Rarity: domain.RarityCommon}

	tests := []struct {
		id   string
		seed func(*domain.UserRecord)
		want bool
	}{
		{"big_spender", func(r *domain.UserRecord) {
			r.Transactions = []domain.Transaction{{Total: 60000}, {Total: 40000}}
		}, true},
		{"big_spender", func(r *domain.UserRecord) {
			r.Transactions = []domain.Transaction{{Total: 99999}}
		}, false},
		{"collector", func(r *domain.UserRecord) {
			for i := 0; i < 10; i++ {
				r.Inventory = append(r.Inventory, weapon)
			}
		}, true},
		{"arsenal", func(r *domain.UserRecord) {
			for i := 0; i < 5; i++ {
				r.Inventory = append(r.Inventory, weapon)
			}
		}, true},
		{"arsenal", func(r *domain.UserRecord) {
			for i := 0; i < 4; i++ {
				r.Inventory = append(r.Inventory, weapon)
			}
		}, false},
		{"fully_equipped", func(r *domain.UserRecord) {
			for _, s := range domain.AllSlots {
				item := weapon
				r.Loadout.Set(s, &item)
			}
		}, true},
		{"shopaholic", func(r *domain.UserRecord) {
			for i := 0; i < 50; i++ {
				r.Transactions = append(r.Transactions, domain.Transaction{Total: 1})
			}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			record := domain.NewUserRecord("u", "u", false, now.Unix())
			tt.seed(record)
			a, ok := AchievementByID(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, a.Check(record, now))
		})
	}
}
