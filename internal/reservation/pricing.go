package reservation

import (
	"math"
	"time"

	"github.com/weiting-tw/room-booking-backend/internal/room"
)

// IsWeekend evaluates the date at local noon in the business timezone, so
// day-of-week never shifts across the midnight boundary.
func IsWeekend(date string) (bool, error) {
	day, err := time.ParseInLocation(dateLayout, date, BusinessZone)
	if err != nil {
		return false, ErrInvalidDate
	}
	wd := day.Add(12 * time.Hour).Weekday()
	return wd == time.Saturday || wd == time.Sunday, nil
}

// RatePerHour picks the room's weekend or weekday hourly rate for the date.
func RatePerHour(rm *room.Room, date string) (int, error) {
	weekend, err := IsWeekend(date)
	if err != nil {
		return 0, err
	}
	if weekend {
		return rm.PriceWeekend, nil
	}
	return rm.PriceWeekday, nil
}

// PriceForBooking computes the total price for a booking of durationHours on
// the given date, rounded to the nearest whole currency unit.
func PriceForBooking(rm *room.Room, date string, durationHours float64) (int, error) {
	rate, err := RatePerHour(rm, date)
	if err != nil {
		return 0, err
	}
	return int(math.Round(float64(rate) * durationHours)), nil
}
