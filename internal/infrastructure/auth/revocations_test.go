package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocations(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryRevocations()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Revoke(ctx, "a", time.Minute))
	require.NoError(t, store.Revoke(ctx, "never", 0))

	revoked, err := store.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = store.IsRevoked(ctx, "never")
	assert.False(t, revoked, "already expired tokens are not stored")
	revoked, _ = store.IsRevoked(ctx, "unknown")
	assert.False(t, revoked)

	now = now.Add(time.Minute)
	revoked, _ = store.IsRevoked(ctx, "a")
	assert.False(t, revoked, "entries lapse with the token")

	require.NoError(t, store.Revoke(ctx, "b", time.Hour))
	assert.Equal(t, 1, store.Len(), "lapsed entries are pruned")
}
