package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmrathi94/VivahSetu/pkg/config"
)

func memoryJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "memory-session-secret",
		Issuer:                 "vivahsetu-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60 * 24,
	}
}

func TestMemoryManagerSessionLifecycle(t *testing.T) {
	mgr, err := NewMemoryManager(memoryJWTConfig())
	require.NoError(t, err)
	ctx := context.Background()
	accessID := NewAccessID()

	refresh, err := mgr.Generate(ctx, accessID)
	require.NoError(t, err)
	require.NotEmpty(t, refresh)

	has, err := mgr.HasSession(ctx, accessID)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, mgr.Revoke(ctx, accessID))

	has, err = mgr.HasSession(ctx, accessID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMemoryManagerRotateInvalidatesOldSession(t *testing.T) {
	mgr, err := NewMemoryManager(memoryJWTConfig())
	require.NoError(t, err)
	ctx := context.Background()
	accessID := NewAccessID()

	refresh, err := mgr.Generate(ctx, accessID)
	require.NoError(t, err)

	newAccessID, newRefresh, err := mgr.Rotate(ctx, accessID, refresh)
	require.NoError(t, err)
	assert.NotEqual(t, accessID, newAccessID)
	assert.NotEqual(t, refresh, newRefresh)

	has, err := mgr.HasSession(ctx, accessID)
	require.NoError(t, err)
	assert.False(t, has)

	has, err = mgr.HasSession(ctx, newAccessID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestMemoryManagerRotateRejectsWrongToken(t *testing.T) {
	mgr, err := NewMemoryManager(memoryJWTConfig())
	require.NoError(t, err)
	ctx := context.Background()
	accessID := NewAccessID()

	_, err = mgr.Generate(ctx, accessID)
	require.NoError(t, err)

	_, _, err = mgr.Rotate(ctx, accessID, "forged-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestMemoryStoreExpiresSessions(t *testing.T) {
	store := newMemorySessionStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	key := store.AccessSessionKey("abc")
	require.NoError(t, store.Set(context.Background(), key, "token", time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(context.Background(), key)
	assert.Error(t, err)
}
