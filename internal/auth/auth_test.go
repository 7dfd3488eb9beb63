package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rogerio-castellano/storefront-api/internal/apperr"
	"github.com/rogerio-castellano/storefront-api/internal/models"
	"github.com/rogerio-castellano/storefront-api/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *MemoryRefreshStore) {
	store := NewMemoryRefreshStore()
	svc := NewService(repo.NewInMemoryUserRepository(), NewIssuer("test-secret", time.Minute), store, time.Hour, nil)
	return svc, store
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	token, err := issuer.GenerateToken(models.User{ID: "u-1", Username: "alice", Role: models.RoleAdmin})
	require.NoError(t, err)

	claims, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "u-1", Username: "alice", Role: models.RoleAdmin}, claims)
}

func TestIssuer_RejectsBadTokens(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	other := NewIssuer("other-secret", time.Minute)

	foreign, err := other.GenerateToken(models.User{ID: "u-1"})
	require.NoError(t, err)
	_, err = issuer.ParseToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.ParseToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := issuer.GenerateToken(models.User{ID: "u-1"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	user, tokens, err := svc.Register(ctx, "alice", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64(60), tokens.ExpiresIn)

	_, _, err = svc.Register(ctx, "alice", "another1", "")
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, _, err = svc.Register(ctx, "al", "secret1", "")
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	_, _, err = svc.Register(ctx, "mallory", "secret1", "root")
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	_, _, err = svc.Login(ctx, "alice", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, tokens, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	claims, err := svc.Issuer().ParseToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, logged.ID, claims.UserID)
}

func TestRefreshRotates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, tokens, err := svc.Register(ctx, "bob", "secret1", "")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, next.RefreshToken)

	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	require.NoError(t, svc.Logout(ctx, next.RefreshToken))
	_, err = svc.Refresh(ctx, next.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestEnsureAdmin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "root", "rootpass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "root", "rootpass"))

	user, _, err := svc.Login(ctx, "root", "rootpass")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	require.NoError(t, svc.EnsureAdmin(ctx, "", ""))
}

func TestMemoryRefreshStore_Expiry(t *testing.T) {
	store := NewMemoryRefreshStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.SaveRefreshToken(ctx, "a", "alice", time.Minute))
	require.NoError(t, store.SaveRefreshToken(ctx, "b", "bob", time.Hour))

	now = now.Add(2 * time.Minute)
	_, ok, err := store.LookupRefreshToken(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 0, store.Sweep())
	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, store.Sweep())
}
