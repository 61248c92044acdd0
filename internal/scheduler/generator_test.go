package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/trip-tracker/internal/rng"
)

var tripStart = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func TestSlotTimes(t *testing.T) {
	t.Parallel()

	times := SlotTimes()
	require.Len(t, times, 18)
	assert.Equal(t, 18, SlotsPerDay)
	assert.Equal(t, "09:00", times[0])
	assert.Equal(t, "09:30", times[1])
	assert.Equal(t, "17:30", times[17])
}

func TestGenerate_UniqueSlotsAndBuckets(t *testing.T) {
	t.Parallel()

	end := tripStart.AddDate(0, 0, 2)
	slots, err := Generate(tripStart, end, 40, rng.New(42))
	require.NoError(t, err)
	require.Len(t, slots, 40)

	seen := make(map[Slot]bool, len(slots))
	perDay := make(map[time.Time]int)
	for i, slot := range slots {
		require.False(t, seen[slot], "slot %v reused", slot)
		seen[slot] = true
		perDay[slot.Date]++
		if i > 0 {
			prev := slots[i-1]
			require.False(t, slot.Date.Before(prev.Date), "slots must be grouped in day order")
			if slot.Date.Equal(prev.Date) {
				require.Less(t, prev.Time, slot.Time, "times within a day are ascending")
			}
		}
	}
	assert.Equal(t, 14, perDay[tripStart])
	assert.Equal(t, 13, perDay[tripStart.AddDate(0, 0, 1)])
	assert.Equal(t, 13, perDay[end])
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	end := tripStart.AddDate(0, 0, 1)
	a, err := Generate(tripStart, end, 9, rng.New(7))
	require.NoError(t, err)
	b, err := Generate(tripStart, end, 9, rng.New(7))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_CapacityRejected(t *testing.T) {
	t.Parallel()

	stream := rng.New(42)
	slots, err := Generate(tripStart, tripStart, 25, stream)
	assert.Nil(t, slots)

	var capErr *CapacityError
	require.True(t, errors.As(err, &capErr), "expected CapacityError, got %v", err)
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, 25, capErr.Requested)
	assert.Equal(t, 18, capErr.Capacity)
	assert.Contains(t, err.Error(), "Mar 03, 2025")

	// No draws were consumed before rejecting.
	assert.Equal(t, rng.New(42).IntN(1<<30), stream.IntN(1<<30))
}

func TestGenerate_FullDayFitsExactly(t *testing.T) {
	t.Parallel()

	slots, err := Generate(tripStart, tripStart, 18, rng.New(1))
	require.NoError(t, err)
	require.Len(t, slots, 18)
	assert.Equal(t, SlotTimes()[0], slots[0].Time)
	assert.Equal(t, SlotTimes()[17], slots[17].Time)
}

func TestGenerate_InvalidWindow(t *testing.T) {
	t.Parallel()

	_, err := Generate(tripStart, tripStart.AddDate(0, 0, -1), 3, rng.New(1))
	assert.ErrorIs(t, err, ErrNoDays)
}
