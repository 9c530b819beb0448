package reservation

import (
	"strconv"
	"strings"
	"time"
)

// BusinessZone is the fixed offset every date and time-of-day input is
// interpreted in, regardless of server locale.
var BusinessZone = time.FixedZone("UTC+8", 8*60*60)

// SlotDuration is the width of one bookable slot.
const SlotDuration = time.Hour

const dateLayout = "2006-01-02"

// Default business hours used when a branch has no configured times.
var (
	DefaultOpenTime  = TimeOfDay{Hour: 8}
	DefaultCloseTime = TimeOfDay{Hour: 22}
)

// TimeOfDay is a wall-clock hour/minute pair.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (or "HH:MM:SS"), substituting the fallback
// for nil, empty or unparseable components. Branch configuration is operator
// input, so bad values degrade to defaults instead of failing the request.
func ParseTimeOfDay(s *string, fallback TimeOfDay) TimeOfDay {
	if s == nil || *s == "" {
		return fallback
	}
	parts := strings.Split(*s, ":")
	out := fallback
	if len(parts) >= 1 {
		if h, err := strconv.Atoi(parts[0]); err == nil && h >= 0 && h <= 23 {
			out.Hour = h
		}
	}
	if len(parts) >= 2 {
		if m, err := strconv.Atoi(parts[1]); err == nil && m >= 0 && m <= 59 {
			out.Minute = m
		}
	}
	return out
}

// Slot is a derived, never persisted candidate booking window.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap: a booking ending at 10:00 does not conflict with
// one starting at 10:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DayWindow resolves a calendar date plus open/close times to the absolute
// business-day interval. close <= open rolls the close to the next calendar
// day (overnight business).
func DayWindow(date string, open, close TimeOfDay) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, BusinessZone)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	start := day.Add(time.Duration(open.Hour)*time.Hour + time.Duration(open.Minute)*time.Minute)
	end := day.Add(time.Duration(close.Hour)*time.Hour + time.Duration(close.Minute)*time.Minute)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

// BuildDaySlots emits consecutive one-hour slots covering the business day,
// including a trailing partial slot when the hours are not whole. Callers
// never receive an empty grid for a well-formed date: a window that is still
// degenerate after the overnight rule falls back to the default hours.
func BuildDaySlots(date string, open, close TimeOfDay) ([]Slot, error) {
	start, end, err := DayWindow(date, open, close)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		start, end, _ = DayWindow(date, DefaultOpenTime, DefaultCloseTime)
	}

	var slots []Slot
	for t := start; t.Before(end); t = t.Add(SlotDuration) {
		slots = append(slots, Slot{Start: t, End: t.Add(SlotDuration), Available: true})
	}
	return slots, nil
}

// ResolveAvailability builds the day grid and masks each slot that either
// already ended relative to now (only when the queried date is "today" in the
// business timezone) or overlaps one of the room's blocking reservations.
// Cancelled reservations must be filtered out by the caller's query.
func ResolveAvailability(date string, open, close TimeOfDay, blocked []*Reservation, now time.Time) ([]Slot, error) {
	slots, err := BuildDaySlots(date, open, close)
	if err != nil {
		return nil, err
	}

	isToday := date == now.In(BusinessZone).Format(dateLayout)

	for i := range slots {
		if isToday && !slots[i].End.After(now) {
			slots[i].Available = false
			continue
		}
		for _, b := range blocked {
			if Overlaps(slots[i].Start, slots[i].End, b.StartTime, b.EndTime) {
				slots[i].Available = false
				break
			}
		}
	}
	return slots, nil
}

// CanBookConsecutive reports whether hours consecutive slots starting at
// startIdx are all available, the building block for "can I book N hours
// starting here" queries.
func CanBookConsecutive(slots []Slot, startIdx, hours int) bool {
	if hours <= 0 || startIdx < 0 || startIdx+hours > len(slots) {
		return false
	}
	for i := startIdx; i < startIdx+hours; i++ {
		if !slots[i].Available {
			return false
		}
	}
	return true
}
