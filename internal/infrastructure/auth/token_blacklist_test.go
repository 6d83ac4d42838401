package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklisted JTI is rejected until expiry", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, blacklisted)

		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

		blacklisted, err = bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("expired blacklist entries are dropped", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})

	t.Run("member invalidation rejects earlier tokens only", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		issuedBefore := time.Now().Add(-time.Minute)

		invalidated, err := bl.IsMemberTokenInvalidated(ctx, "member-1", issuedBefore)
		require.NoError(t, err)
		assert.False(t, invalidated)

		require.NoError(t, bl.AddMemberTokensToBlacklist(ctx, "member-1", time.Hour))

		invalidated, err = bl.IsMemberTokenInvalidated(ctx, "member-1", issuedBefore)
		require.NoError(t, err)
		assert.True(t, invalidated)

		issuedAfter := time.Now().Add(time.Minute)
		invalidated, err = bl.IsMemberTokenInvalidated(ctx, "member-1", issuedAfter)
		require.NoError(t, err)
		assert.False(t, invalidated)
	})

	t.Run("invalidation is per member", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		require.NoError(t, bl.AddMemberTokensToBlacklist(ctx, "member-1", time.Hour))

		invalidated, err := bl.IsMemberTokenInvalidated(ctx, "member-2", time.Now().Add(-time.Minute))
		require.NoError(t, err)
		assert.False(t, invalidated)
	})
}
