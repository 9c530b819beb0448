package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiting-tw/room-booking-backend/internal/room"
)

func TestIsWeekend(t *testing.T) {
	cases := []struct {
		date    string
		weekend bool
	}{
		{"2025-03-03", false}, // Monday
		{"2025-03-04", false}, // Tuesday
		{"2025-03-07", false}, // Friday
		{"2025-03-08", true},  // Saturday
		{"2025-03-09", true},  // Sunday
	}
	for _, tc := range cases {
		got, err := IsWeekend(tc.date)
		require.NoError(t, err, tc.date)
		assert.Equal(t, tc.weekend, got, tc.date)
	}

	_, err := IsWeekend("not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestPriceForBooking(t *testing.T) {
	rm := &room.Room{PriceWeekday: 200, PriceWeekend: 300}

	price, err := PriceForBooking(rm, "2025-03-04", 2)
	require.NoError(t, err)
	assert.Equal(t, 400, price, "weekday rate")

	price, err = PriceForBooking(rm, "2025-03-08", 2)
	require.NoError(t, err)
	assert.Equal(t, 600, price, "weekend rate")

	price, err = PriceForBooking(rm, "2025-03-04", 1.5)
	require.NoError(t, err)
	assert.Equal(t, 300, price, "fractional hours round to whole units")

	_, err = PriceForBooking(rm, "03/08/2025", 2)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
