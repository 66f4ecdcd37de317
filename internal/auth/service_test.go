package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/testing/fakes"
)

func newTestService(t *testing.T) (Service, *fakes.UserRecords) {
	t.Helper()
	records := fakes.NewUserRecords()
	tokens := NewTokenManager("test-secret-value", "cybermarket", time.Hour)
	isAdmin := func(username string) bool { return username == "admin" }
	return NewService(fakes.NewAccounts(), records, tokens, isAdmin, time.Hour), records
}

func TestSignup(t *testing.T) {
	svc, records := newTestService(t)
	ctx := context.Background()

	session, err := svc.Signup(ctx, "v_silverhand", "burn-corpo-shit")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "v_silverhand", session.User.Username)

	// Default record: starting credits, default avatar, no admin
	record := records.Snapshot(session.User.ID)
	require.NotNil(t, record)
	assert.Equal(t, domain.StartingCredits, record.Credits)
	assert.Equal(t, domain.DefaultAvatar, record.Profile.Avatar)
	assert.False(t, record.IsAdmin)
	assert.Empty(t, record.Cart)

	// Duplicate usernames are rejected
	_, err = svc.Signup(ctx, "v_silverhand", "another-pass")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestSignup_AdminUsername(t *testing.T) {
	svc, records := newTestService(t)

	session, err := svc.Signup(context.Background(), "admin", "super-secret-pw")
	require.NoError(t, err)
	assert.True(t, records.Snapshot(session.User.ID).IsAdmin)

	claims, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestSignup_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"short username", "ab", "valid-password"},
		{"whitespace username", "night city", "valid-password"},
		{"short password", "valid_user", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "v_silverhand", "burn-corpo-shit")
	require.NoError(t, err)

	session, err := svc.Login(ctx, "v_silverhand", "burn-corpo-shit")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	// Token round-trips to the same identity
	claims, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
	assert.Equal(t, "v_silverhand", claims.Username)
	assert.False(t, claims.IsAdmin)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "v_silverhand", "burn-corpo-shit")
	require.NoError(t, err)

	// Wrong password and unknown user produce the same error
	_, err = svc.Login(ctx, "v_silverhand", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost", "whatever-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerify_RejectsForgedTokens(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Token signed with a different secret
	other := NewTokenManager("other-secret", "cybermarket", time.Hour)
	forged, err := other.Generate(Claims{UserID: "u1", Username: "x"})
	require.NoError(t, err)

	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_RejectsExpiredTokens(t *testing.T) {
	tokens := NewTokenManager("test-secret-value", "cybermarket", -time.Minute)
	expired, err := tokens.Generate(Claims{UserID: "u1", Username: "x"})
	require.NoError(t, err)

	_, err = tokens.Verify(expired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
