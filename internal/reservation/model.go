package reservation

import (
	"time"

	"github.com/weiting-tw/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("reservation not found")
	ErrRoomNotFound     = apperror.NotFound("room not found")
	ErrBranchNotFound   = apperror.NotFound("branch not found")
	ErrTimeConflict     = apperror.Conflict("time slot already booked, please pick another time")
	ErrInvalidTimeRange = apperror.Validation("end time must be after start time")
	ErrDurationTooLong  = apperror.Validation("a single booking must not exceed 8 hours")
	ErrInvalidDate      = apperror.Validation("date must be YYYY-MM-DD")
	ErrMissingFields    = apperror.Validation("room, customer name, phone, start and end time are required")
	ErrInvalidStatus    = apperror.Validation("invalid reservation status")
	ErrBadTransition    = apperror.Policy("reservation status transition not allowed")
	ErrCancelWindow     = apperror.Policy("bookings within 24 hours of start cannot be self-cancelled, please call the branch")
	ErrAlreadyCancelled = apperror.Policy("this reservation is already cancelled")
	ErrInvalidRepeat    = apperror.Validation("repeat weeks must be between 4 and 12")
	ErrInvalidDuration  = apperror.Validation("duration must be between 1 and 8 hours")
	ErrCodeCollision    = apperror.Conflict("booking code collision")
)

// MaxDurationHours caps a single booking.
const MaxDurationHours = 8

// SelfCancelWindow is the minimum lead time for customer cancellation.
const SelfCancelWindow = 24 * time.Hour

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCheckedIn Status = "checked_in"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the known states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition encodes the reservation lifecycle:
// pending -> confirmed/cancelled, confirmed -> checked_in/completed/cancelled,
// checked_in -> completed/cancelled. completed and cancelled are terminal.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCheckedIn || to == StatusCompleted || to == StatusCancelled
	case StatusCheckedIn:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

// Reservation is a booked time range for one room. The core invariant:
// for a given room, no two reservations with status other than cancelled may
// have overlapping [StartTime, EndTime) intervals.
type Reservation struct {
	ID           string
	RoomID       string
	RoomName     string
	BranchID     string
	BranchName   string
	CustomerName string
	Phone        string
	Email        *string
	StartTime    time.Time
	EndTime      time.Time
	Status       Status
	TotalPrice   *int
	GuestCount   *int
	Notes        *string
	BookingCode  string
	IsNotified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
