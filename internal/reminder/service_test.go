package reminder

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiting-tw/room-booking-backend/internal/reservation"
)

func bizTime(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, reservation.BusinessZone)
}

func TestDueWindow(t *testing.T) {
	s := &service{now: func() time.Time { return bizTime(2025, 3, 4, 18, 0) }}

	start, end := s.dueWindow()
	assert.Equal(t, bizTime(2025, 3, 5, 0, 0), start)
	assert.Equal(t, bizTime(2025, 3, 6, 0, 0), end)

	// Late evening UTC is already "tomorrow" in the business timezone.
	s.now = func() time.Time { return time.Date(2025, 3, 4, 20, 0, 0, 0, time.UTC) }
	start, _ = s.dueWindow()
	assert.Equal(t, bizTime(2025, 3, 6, 0, 0), start)
}

func TestFormatDigestEmpty(t *testing.T) {
	text := FormatDigest(nil, bizTime(2025, 3, 5, 0, 0))
	assert.Equal(t, "📋 明日無訂位，不需準備包廂。", text)
}

func TestFormatDigest(t *testing.T) {
	guests := 6
	reservations := []*reservation.Reservation{
		{
			CustomerName: "Wang Xiaoming",
			Phone:        "0912345678",
			BranchName:   "Downtown",
			RoomName:     "Room A",
			StartTime:    bizTime(2025, 3, 5, 14, 0),
			EndTime:      bizTime(2025, 3, 5, 16, 0),
			GuestCount:   &guests,
		},
		{
			CustomerName: "Lin Mei",
			Phone:        "0987654321",
			BranchName:   "Harbor",
			RoomName:     "Annex",
			StartTime:    bizTime(2025, 3, 5, 19, 0),
			EndTime:      bizTime(2025, 3, 5, 21, 0),
		},
	}

	text := FormatDigest(reservations, bizTime(2025, 3, 5, 0, 0))

	require.True(t, strings.HasPrefix(text, "📅 明日訂位提醒（2025/03/05）"), text)
	assert.Contains(t, text, "共 2 筆")
	assert.Contains(t, text, "👤 Wang Xiaoming｜📞 0912345678")
	assert.Contains(t, text, "🏠 Downtown — Room A")
	assert.Contains(t, text, "🕐 14:00 ~ 16:00")
	assert.Contains(t, text, "👥 6 人")

	assert.Contains(t, text, "🏠 Harbor — Annex")
	assert.Contains(t, text, "🕐 19:00 ~ 21:00")
	// No guest line for the second booking.
	assert.Equal(t, 1, strings.Count(text, "👥"))
}

func TestFormatDigestConvertsToBusinessZone(t *testing.T) {
	// 06:00 UTC is 14:00 in UTC+8.
	reservations := []*reservation.Reservation{{
		CustomerName: "Chen",
		Phone:        "0900000000",
		BranchName:   "Downtown",
		RoomName:     "Room A",
		StartTime:    time.Date(2025, 3, 5, 6, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC),
	}}

	text := FormatDigest(reservations, bizTime(2025, 3, 5, 0, 0))
	assert.Contains(t, text, "🕐 14:00 ~ 16:00")
}
