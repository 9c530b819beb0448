package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(date string, hour, minute int) time.Time {
	day, _ := time.ParseInLocation(dateLayout, date, BusinessZone)
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestParseTimeOfDay(t *testing.T) {
	fallback := TimeOfDay{Hour: 8}

	str := func(s string) *string { return &s }

	assert.Equal(t, fallback, ParseTimeOfDay(nil, fallback))
	assert.Equal(t, fallback, ParseTimeOfDay(str(""), fallback))
	assert.Equal(t, TimeOfDay{Hour: 7, Minute: 30}, ParseTimeOfDay(str("07:30"), fallback))
	assert.Equal(t, TimeOfDay{Hour: 9}, ParseTimeOfDay(str("09:00:00"), fallback))
	// Out-of-range components degrade to the fallback per component.
	assert.Equal(t, fallback, ParseTimeOfDay(str("25:99"), fallback))
	assert.Equal(t, fallback, ParseTimeOfDay(str("garbage"), fallback))
}

func TestBuildDaySlots(t *testing.T) {
	t.Run("whole hours", func(t *testing.T) {
		slots, err := BuildDaySlots("2025-03-04", TimeOfDay{Hour: 9}, TimeOfDay{Hour: 21})
		require.NoError(t, err)
		require.Len(t, slots, 12)

		assert.Equal(t, at("2025-03-04", 9, 0), slots[0].Start)
		assert.Equal(t, at("2025-03-04", 21, 0), slots[11].End)
		for i, s := range slots {
			assert.True(t, s.Available, "slot %d should start available", i)
			assert.Equal(t, SlotDuration, s.End.Sub(s.Start))
		}
		// Chronological and gapless.
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, slots[i-1].End, slots[i].Start)
		}
	})

	t.Run("trailing partial slot", func(t *testing.T) {
		slots, err := BuildDaySlots("2025-03-04", TimeOfDay{Hour: 9}, TimeOfDay{Hour: 21, Minute: 30})
		require.NoError(t, err)
		require.Len(t, slots, 13)
		assert.Equal(t, at("2025-03-04", 21, 0), slots[12].Start)
	})

	t.Run("overnight close rolls to next day", func(t *testing.T) {
		slots, err := BuildDaySlots("2025-03-04", TimeOfDay{Hour: 22}, TimeOfDay{Hour: 2})
		require.NoError(t, err)
		require.Len(t, slots, 4)
		assert.Equal(t, at("2025-03-04", 22, 0), slots[0].Start)
		assert.Equal(t, at("2025-03-05", 2, 0), slots[3].End)
	})

	t.Run("open equals close means 24h", func(t *testing.T) {
		slots, err := BuildDaySlots("2025-03-04", TimeOfDay{Hour: 10}, TimeOfDay{Hour: 10})
		require.NoError(t, err)
		assert.Len(t, slots, 24)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := BuildDaySlots("04/03/2025", TimeOfDay{Hour: 9}, TimeOfDay{Hour: 21})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestOverlaps(t *testing.T) {
	a1, a2 := at("2025-03-04", 10, 0), at("2025-03-04", 12, 0)

	assert.True(t, Overlaps(a1, a2, at("2025-03-04", 11, 0), at("2025-03-04", 13, 0)))
	assert.True(t, Overlaps(a1, a2, at("2025-03-04", 9, 0), at("2025-03-04", 13, 0)))
	assert.True(t, Overlaps(a1, a2, at("2025-03-04", 10, 30), at("2025-03-04", 11, 30)))

	// Touching endpoints never conflict.
	assert.False(t, Overlaps(a1, a2, at("2025-03-04", 12, 0), at("2025-03-04", 14, 0)))
	assert.False(t, Overlaps(a1, a2, at("2025-03-04", 8, 0), at("2025-03-04", 10, 0)))

	// Symmetry
	assert.Equal(t,
		Overlaps(a1, a2, at("2025-03-04", 11, 0), at("2025-03-04", 13, 0)),
		Overlaps(at("2025-03-04", 11, 0), at("2025-03-04", 13, 0), a1, a2))
}

func TestResolveAvailability(t *testing.T) {
	open := TimeOfDay{Hour: 9}
	close := TimeOfDay{Hour: 21}

	t.Run("reservation masks exactly its slots", func(t *testing.T) {
		blocked := []*Reservation{{
			StartTime: at("2025-03-04", 10, 0),
			EndTime:   at("2025-03-04", 12, 0),
		}}
		// Querying a future date: now is the day before.
		now := at("2025-03-03", 12, 0)

		slots, err := ResolveAvailability("2025-03-04", open, close, blocked, now)
		require.NoError(t, err)
		require.Len(t, slots, 12)

		assert.True(t, slots[0].Available, "09:00 slot")
		assert.False(t, slots[1].Available, "10:00 slot")
		assert.False(t, slots[2].Available, "11:00 slot")
		assert.True(t, slots[3].Available, "12:00 slot touches but does not overlap")
	})

	t.Run("past slots masked only when date is today", func(t *testing.T) {
		now := at("2025-03-04", 15, 30)

		slots, err := ResolveAvailability("2025-03-04", open, close, nil, now)
		require.NoError(t, err)

		// Slots ending at or before 15:30 are gone; the 15:00-16:00 slot is
		// still bookable because it has not ended.
		assert.False(t, slots[0].Available) // 09:00-10:00
		assert.False(t, slots[5].Available) // 14:00-15:00
		assert.True(t, slots[6].Available)  // 15:00-16:00
		assert.True(t, slots[11].Available) // 20:00-21:00

		// Same clock, next day: nothing masked.
		tomorrow, err := ResolveAvailability("2025-03-05", open, close, nil, now)
		require.NoError(t, err)
		for i, s := range tomorrow {
			assert.True(t, s.Available, "slot %d on a future date", i)
		}
	})

	t.Run("resolving twice gives the same grid", func(t *testing.T) {
		blocked := []*Reservation{{
			StartTime: at("2025-03-04", 13, 0),
			EndTime:   at("2025-03-04", 14, 0),
		}}
		now := at("2025-03-03", 12, 0)

		first, err := ResolveAvailability("2025-03-04", open, close, blocked, now)
		require.NoError(t, err)
		second, err := ResolveAvailability("2025-03-04", open, close, blocked, now)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestCanBookConsecutive(t *testing.T) {
	slots, err := BuildDaySlots("2025-03-04", TimeOfDay{Hour: 9}, TimeOfDay{Hour: 13})
	require.NoError(t, err)
	slots[2].Available = false // 11:00-12:00

	assert.True(t, CanBookConsecutive(slots, 0, 2))
	assert.False(t, CanBookConsecutive(slots, 1, 2), "run crosses a blocked slot")
	assert.True(t, CanBookConsecutive(slots, 3, 1))

	assert.False(t, CanBookConsecutive(slots, 0, 0))
	assert.False(t, CanBookConsecutive(slots, -1, 2))
	assert.False(t, CanBookConsecutive(slots, 3, 2), "run past the end of the day")
}
