package club

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	createdBy := uuid.New()
	opens := time.Now()
	closes := opens.Add(7 * 24 * time.Hour)

	t.Run("creates open event pool", func(t *testing.T) {
		pool, err := NewEventPool(createdBy, uuid.New(), opens, closes, 16)

		require.NoError(t, err)
		assert.Equal(t, PoolTargetEvent, pool.TargetType)
		assert.Equal(t, PoolStatusOpen, pool.Status)
		assert.Equal(t, 16, pool.MaxEntries)
	})

	t.Run("creates booking pool", func(t *testing.T) {
		pool, err := NewBookingPool(createdBy, uuid.New(), opens, closes, 0)

		require.NoError(t, err)
		assert.Equal(t, PoolTargetBooking, pool.TargetType)
	})

	t.Run("rejects nil target", func(t *testing.T) {
		_, err := NewEventPool(createdBy, uuid.Nil, opens, closes, 16)
		assert.Error(t, err)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		_, err := NewEventPool(createdBy, uuid.New(), closes, opens, 16)
		assert.Error(t, err)
	})

	t.Run("rejects negative max entries", func(t *testing.T) {
		_, err := NewEventPool(createdBy, uuid.New(), opens, closes, -1)
		assert.Error(t, err)
	})
}

func TestPoolAcceptsAt(t *testing.T) {
	createdBy := uuid.New()
	opens := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	closes := time.Date(2026, 6, 8, 9, 0, 0, 0, time.UTC)

	pool, err := NewEventPool(createdBy, uuid.New(), opens, closes, 0)
	require.NoError(t, err)

	assert.False(t, pool.AcceptsAt(opens.Add(-time.Minute)))
	assert.True(t, pool.AcceptsAt(opens))
	assert.True(t, pool.AcceptsAt(opens.Add(24*time.Hour)))
	assert.False(t, pool.AcceptsAt(closes))

	require.NoError(t, pool.Close())
	assert.False(t, pool.AcceptsAt(opens.Add(24*time.Hour)))

	require.NoError(t, pool.Reopen())
	assert.True(t, pool.AcceptsAt(opens.Add(24*time.Hour)))
}

func TestPoolHasPlace(t *testing.T) {
	createdBy := uuid.New()
	opens := time.Now()
	closes := opens.Add(time.Hour)

	t.Run("limited pool fills up", func(t *testing.T) {
		pool, err := NewEventPool(createdBy, uuid.New(), opens, closes, 2)
		require.NoError(t, err)

		assert.True(t, pool.HasPlace(0))
		assert.True(t, pool.HasPlace(1))
		assert.False(t, pool.HasPlace(2))
	})

	t.Run("unlimited pool always has a place", func(t *testing.T) {
		pool, err := NewEventPool(createdBy, uuid.New(), opens, closes, 0)
		require.NoError(t, err)

		assert.True(t, pool.HasPlace(500))
	})
}

func TestPoolRegistration(t *testing.T) {
	poolID := uuid.New()
	memberID := uuid.New()

	t.Run("registered entry", func(t *testing.T) {
		reg, err := NewPoolRegistration(poolID, memberID, 1, false)

		require.NoError(t, err)
		assert.Equal(t, RegistrationStatusRegistered, reg.Status)
		assert.Equal(t, 1, reg.Position)
		assert.True(t, reg.IsLive())
	})

	t.Run("waitlisted entry", func(t *testing.T) {
		reg, err := NewPoolRegistration(poolID, memberID, 17, true)

		require.NoError(t, err)
		assert.Equal(t, RegistrationStatusWaitlisted, reg.Status)
	})

	t.Run("rejects missing pool or member", func(t *testing.T) {
		_, err := NewPoolRegistration(uuid.Nil, memberID, 1, false)
		assert.Error(t, err)

		_, err = NewPoolRegistration(poolID, uuid.Nil, 1, false)
		assert.Error(t, err)
	})

	t.Run("withdraw", func(t *testing.T) {
		reg, err := NewPoolRegistration(poolID, memberID, 1, false)
		require.NoError(t, err)

		require.NoError(t, reg.Withdraw())
		assert.Equal(t, RegistrationStatusWithdrawn, reg.Status)
		assert.False(t, reg.IsLive())

		assert.Error(t, reg.Withdraw())
	})

	t.Run("promote waitlisted entry", func(t *testing.T) {
		reg, err := NewPoolRegistration(poolID, memberID, 5, true)
		require.NoError(t, err)

		require.NoError(t, reg.Promote())
		assert.Equal(t, RegistrationStatusRegistered, reg.Status)
	})

	t.Run("cannot promote a registered entry", func(t *testing.T) {
		reg, err := NewPoolRegistration(poolID, memberID, 1, false)
		require.NoError(t, err)

		assert.Error(t, reg.Promote())
	})

	t.Run("cannot promote a withdrawn entry", func(t *testing.T) {
		reg, err := NewPoolRegistration(poolID, memberID, 5, true)
		require.NoError(t, err)
		require.NoError(t, reg.Withdraw())

		assert.Error(t, reg.Promote())
	})
}
