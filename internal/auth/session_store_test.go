package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workoutapi/internal/cache"
)

func TestSessionStore_Revoke(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewSessionStore(cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})))
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	revoked, err := store.IsRevoked(ctx, userID, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.RevokeSessions(ctx, userID, now, time.Hour))

	revoked, err = store.IsRevoked(ctx, userID, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, userID, now.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = store.IsRevoked(ctx, uuid.New(), now.Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = store.IsRevoked(ctx, userID, now.Add(-time.Millisecond))
	require.NoError(t, err)
	assert.True(t, revoked, "issued earlier within the revocation second")

	revoked, err = store.IsRevoked(ctx, userID, now.Add(time.Millisecond))
	require.NoError(t, err)
	assert.False(t, revoked)

	mr.FastForward(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, userID, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionStore_WithoutRedis(t *testing.T) {
	store := NewSessionStore(nil)
	ctx := context.Background()

	require.NoError(t, store.RevokeSessions(ctx, uuid.New(), time.Now(), time.Hour))
	revoked, err := store.IsRevoked(ctx, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.False(t, revoked)
}
