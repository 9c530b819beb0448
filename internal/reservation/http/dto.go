package http

import (
	"time"

	"github.com/weiting-tw/room-booking-backend/internal/reservation"
	"github.com/weiting-tw/room-booking-backend/internal/room"
)

// AvailabilityQuery defines query parameters for the availability endpoint.
type AvailabilityQuery struct {
	BranchID string `form:"branchId" binding:"required,uuid"`
	Date     string `form:"date" binding:"required"`
	RoomID   string `form:"roomId" binding:"omitempty,uuid"`
}

// RoomSlotsResponse is one room's grid in the multi-room availability shape.
type RoomSlotsResponse struct {
	RoomID       string             `json:"roomId"`
	RoomName     string             `json:"roomName"`
	Capacity     int                `json:"capacity"`
	PriceWeekday int                `json:"price_weekday"`
	PriceWeekend int                `json:"price_weekend"`
	Slots        []reservation.Slot `json:"slots"`
}

// BranchAvailabilityResponse is returned when no roomId filter is given.
type BranchAvailabilityResponse struct {
	BranchName string              `json:"branchName"`
	Rooms      []RoomSlotsResponse `json:"rooms"`
}

// SingleRoomAvailabilityResponse is returned for a roomId-filtered query.
type SingleRoomAvailabilityResponse struct {
	Slots      []reservation.Slot `json:"slots"`
	RoomName   string             `json:"roomName"`
	BranchName string             `json:"branchName"`
	OpenTime   *string            `json:"openTime"`
	CloseTime  *string            `json:"closeTime"`
}

func newRoomSlots(rm *room.Room, slots []reservation.Slot) RoomSlotsResponse {
	return RoomSlotsResponse{
		RoomID:       rm.ID,
		RoomName:     rm.Name,
		Capacity:     rm.Capacity,
		PriceWeekday: rm.PriceWeekday,
		PriceWeekend: rm.PriceWeekend,
		Slots:        slots,
	}
}

// CreateReservationRequest is the payload for booking a room.
type CreateReservationRequest struct {
	RoomID       string    `json:"room_id" binding:"required,uuid"`
	CustomerName string    `json:"customer_name" binding:"required"`
	Phone        string    `json:"phone" binding:"required"`
	Email        *string   `json:"email"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	TotalPrice   *int      `json:"total_price"`
	GuestCount   *int      `json:"guest_count"`
	Notes        *string   `json:"notes"`
	// Honored only on the staff entry point.
	Status string `json:"status" binding:"omitempty,oneof=pending confirmed checked_in completed cancelled"`
}

// UpdateReservationRequest is the payload for partially updating a reservation.
type UpdateReservationRequest struct {
	CustomerName *string    `json:"customer_name"`
	Phone        *string    `json:"phone"`
	Email        *string    `json:"email"`
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	Status       *string    `json:"status" binding:"omitempty,oneof=pending confirmed checked_in completed cancelled"`
	TotalPrice   *int       `json:"total_price"`
	GuestCount   *int       `json:"guest_count"`
	Notes        *string    `json:"notes"`
}

// CancelBookingRequest cancels a reservation through customer self-service.
type CancelBookingRequest struct {
	ID          string `json:"id" binding:"omitempty,uuid"`
	BookingCode string `json:"booking_code"`
	Phone       string `json:"phone" binding:"required"`
}

// RecurringReservationRequest books the same weekly slot for several weeks.
type RecurringReservationRequest struct {
	RoomID        string  `json:"room_id" binding:"required,uuid"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	Email         *string `json:"email"`
	StartDate     string  `json:"start_date" binding:"required"`
	StartTime     string  `json:"start_time" binding:"required"`
	DurationHours float64 `json:"duration_hours" binding:"required"`
	RepeatWeeks   int     `json:"repeat_weeks" binding:"required"`
	GuestCount    *int    `json:"guest_count"`
	Notes         *string `json:"notes"`
}

// TimelineReservation is the trimmed booking shape shown on the dashboard
// timeline.
type TimelineReservation struct {
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	TotalPrice   *int      `json:"total_price"`
}

type RoomTimelineResponse struct {
	RoomID       string                `json:"roomId"`
	RoomName     string                `json:"roomName"`
	Reservations []TimelineReservation `json:"reservations"`
}

// TimelineResponse is the per-room day view for the admin dashboard.
type TimelineResponse struct {
	Date       string                 `json:"date"`
	BranchName string                 `json:"branchName"`
	OpenTime   *string                `json:"openTime"`
	CloseTime  *string                `json:"closeTime"`
	Rooms      []RoomTimelineResponse `json:"rooms"`
}

type ReservationResponse struct {
	ID           string    `json:"id"`
	BookingCode  string    `json:"booking_code"`
	RoomID       string    `json:"room_id"`
	RoomName     string    `json:"room_name"`
	BranchID     string    `json:"branch_id"`
	BranchName   string    `json:"branch_name"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Email        *string   `json:"email"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	TotalPrice   *int      `json:"total_price"`
	GuestCount   *int      `json:"guest_count"`
	Notes        *string   `json:"notes"`
	IsNotified   bool      `json:"is_notified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		BookingCode:  r.BookingCode,
		RoomID:       r.RoomID,
		RoomName:     r.RoomName,
		BranchID:     r.BranchID,
		BranchName:   r.BranchName,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Email:        r.Email,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Status:       string(r.Status),
		TotalPrice:   r.TotalPrice,
		GuestCount:   r.GuestCount,
		Notes:        r.Notes,
		IsNotified:   r.IsNotified,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
