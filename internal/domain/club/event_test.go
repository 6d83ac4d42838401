package club

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenclub/backend/internal/domain/shared"
)

func futureWindow(startIn, length time.Duration) (time.Time, time.Time) {
	start := time.Now().Add(startIn)
	return start, start.Add(length)
}

func TestNewEvent(t *testing.T) {
	organizerID := uuid.New()

	t.Run("creates scheduled event", func(t *testing.T) {
		starts, ends := futureWindow(24*time.Hour, 3*time.Hour)

		event, err := NewEvent(organizerID, "Club Championship", "Home green", starts, ends)

		require.NoError(t, err)
		assert.Equal(t, "Club Championship", event.Title)
		assert.Equal(t, EventStatusScheduled, event.Status)
		assert.Equal(t, organizerID, event.OrganizerID)
		assert.True(t, event.Fee.IsZero())
		assert.Equal(t, 0, event.Capacity)
		assert.False(t, event.HasCapacityLimit())
		assert.Len(t, event.GetDomainEvents(), 1)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		starts, ends := futureWindow(24*time.Hour, 3*time.Hour)
		_, err := NewEvent(organizerID, "  ", "Home green", starts, ends)
		assert.Error(t, err)
	})

	t.Run("fails when end is not after start", func(t *testing.T) {
		starts, _ := futureWindow(24*time.Hour, 3*time.Hour)
		_, err := NewEvent(organizerID, "Title", "Home green", starts, starts)
		assert.Error(t, err)
	})
}

func TestEventFeeAndCapacity(t *testing.T) {
	organizerID := uuid.New()
	starts, ends := futureWindow(24*time.Hour, 3*time.Hour)

	t.Run("sets fee", func(t *testing.T) {
		event, err := NewEvent(organizerID, "Gala Day", "Home green", starts, ends)
		require.NoError(t, err)

		require.NoError(t, event.SetFee(decimal.NewFromFloat(7.50)))
		assert.True(t, event.Fee.Equal(decimal.NewFromFloat(7.50)))
	})

	t.Run("rejects negative fee", func(t *testing.T) {
		event, err := NewEvent(organizerID, "Gala Day", "Home green", starts, ends)
		require.NoError(t, err)

		assert.Error(t, event.SetFee(decimal.NewFromInt(-1)))
	})

	t.Run("sets capacity", func(t *testing.T) {
		event, err := NewEvent(organizerID, "Gala Day", "Home green", starts, ends)
		require.NoError(t, err)

		require.NoError(t, event.SetCapacity(32))
		assert.True(t, event.HasCapacityLimit())

		assert.Error(t, event.SetCapacity(-1))
	})
}

func TestEventLifecycle(t *testing.T) {
	organizerID := uuid.New()

	t.Run("cancel records reason", func(t *testing.T) {
		starts, ends := futureWindow(24*time.Hour, 3*time.Hour)
		event, err := NewEvent(organizerID, "Friendly", "Away green", starts, ends)
		require.NoError(t, err)

		require.NoError(t, event.Cancel("Green waterlogged"))

		assert.Equal(t, EventStatusCancelled, event.Status)
		assert.Equal(t, "Green waterlogged", event.CancelReason)
		assert.False(t, event.IsScheduled())
	})

	t.Run("cancel twice fails", func(t *testing.T) {
		starts, ends := futureWindow(24*time.Hour, 3*time.Hour)
		event, err := NewEvent(organizerID, "Friendly", "Away green", starts, ends)
		require.NoError(t, err)
		require.NoError(t, event.Cancel(""))

		assert.Error(t, event.Cancel(""))
	})

	t.Run("cancelled event rejects updates", func(t *testing.T) {
		starts, ends := futureWindow(24*time.Hour, 3*time.Hour)
		event, err := NewEvent(organizerID, "Friendly", "Away green", starts, ends)
		require.NoError(t, err)
		require.NoError(t, event.Cancel(""))

		assert.Error(t, event.Update("New title", "", ""))
		assert.Error(t, event.Reschedule(starts, ends))
		assert.Error(t, event.SetFee(decimal.NewFromInt(5)))
	})

	t.Run("complete requires the event to have started", func(t *testing.T) {
		starts, ends := futureWindow(24*time.Hour, 3*time.Hour)
		event, err := NewEvent(organizerID, "Friendly", "Away green", starts, ends)
		require.NoError(t, err)

		assert.Error(t, event.Complete())
	})

	t.Run("completes a past event", func(t *testing.T) {
		starts, ends := futureWindow(-4*time.Hour, 3*time.Hour)
		event, err := NewEvent(organizerID, "Friendly", "Away green", starts, ends)
		require.NoError(t, err)

		require.NoError(t, event.Complete())
		assert.Equal(t, EventStatusCompleted, event.Status)

		assert.Error(t, event.Cancel(""))
	})
}

func TestEventReschedule(t *testing.T) {
	organizerID := uuid.New()
	starts, ends := futureWindow(24*time.Hour, 3*time.Hour)
	event, err := NewEvent(organizerID, "League Night", "Home green", starts, ends)
	require.NoError(t, err)

	newStarts, newEnds := futureWindow(48*time.Hour, 2*time.Hour)
	require.NoError(t, event.Reschedule(newStarts, newEnds))

	assert.Equal(t, newStarts, event.StartsAt)
	assert.Equal(t, newEnds, event.EndsAt)

	assert.Error(t, event.Reschedule(newEnds, newStarts))
}

func TestEventLifecycleEventsImplementDomainEvent(t *testing.T) {
	organizerID := uuid.New()
	starts, ends := futureWindow(24*time.Hour, 3*time.Hour)
	event, err := NewEvent(organizerID, "Open Day", "Home green", starts, ends)
	require.NoError(t, err)

	published := []shared.DomainEvent{
		NewEventCreatedEvent(event),
		NewEventUpdatedEvent(event),
		NewEventRescheduledEvent(event),
		NewEventCancelledEvent(event),
		NewEventCompletedEvent(event),
	}

	for _, e := range published {
		assert.Equal(t, event.ID, e.AggregateID())
		assert.Equal(t, AggregateTypeEvent, e.AggregateType())
		assert.NotEqual(t, uuid.Nil, e.EventID())
		assert.NotEmpty(t, e.EventType())
	}
}
