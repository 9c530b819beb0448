package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/request"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/response"
	"github.com/weiting-tw/room-booking-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

func bindID(c *gin.Context) (string, bool) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return "", false
	}
	return params.ID, true
}

func (h *Handler) Availability(c *gin.Context) {
	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branchId and date (YYYY-MM-DD) are required"})
		return
	}

	result, err := h.service.Availability(c.Request.Context(), q.BranchID, q.Date, q.RoomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if q.RoomID != "" {
		ra := result.Rooms[0]
		c.JSON(http.StatusOK, SingleRoomAvailabilityResponse{
			Slots:      ra.Slots,
			RoomName:   ra.Room.Name,
			BranchName: result.Branch.Name,
			OpenTime:   result.Branch.OpenTime,
			CloseTime:  result.Branch.CloseTime,
		})
		return
	}

	rooms := make([]RoomSlotsResponse, len(result.Rooms))
	for i, ra := range result.Rooms {
		rooms[i] = newRoomSlots(ra.Room, ra.Slots)
	}
	c.JSON(http.StatusOK, BranchAvailabilityResponse{
		BranchName: result.Branch.Name,
		Rooms:      rooms,
	})
}

// Create is the public booking entry point; bookings always start pending.
func (h *Handler) Create(c *gin.Context) {
	h.create(c, false)
}

// CreateAdmin is the staff entry point; bookings default to confirmed and may
// carry an explicit status.
func (h *Handler) CreateAdmin(c *gin.Context) {
	h.create(c, true)
}

func (h *Handler) create(c *gin.Context, staff bool) {
	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), reservation.CreateRequest{
		RoomID:       body.RoomID,
		CustomerName: body.CustomerName,
		Phone:        body.Phone,
		Email:        body.Email,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		TotalPrice:   body.TotalPrice,
		GuestCount:   body.GuestCount,
		Notes:        body.Notes,
		Status:       reservation.Status(body.Status),
		Staff:        staff,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewReservationResponse(r))
}

func (h *Handler) List(c *gin.Context) {
	branchID := c.Query("branchId")
	if _, err := uuid.Parse(branchID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branchId is required"})
		return
	}

	reservations, err := h.service.ListByBranch(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		items[i] = NewReservationResponse(r)
	}
	c.JSON(http.StatusOK, items)
}

// MyBookings lets a customer list their reservations by phone number.
func (h *Handler) MyBookings(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}

	reservations, err := h.service.ListByPhone(c.Request.Context(), phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		items[i] = NewReservationResponse(r)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var body UpdateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	r, err := h.service.Update(c.Request.Context(), id, reservation.UpdateRequest{
		CustomerName: body.CustomerName,
		Phone:        body.Phone,
		Email:        body.Email,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		Status:       body.Status,
		TotalPrice:   body.TotalPrice,
		GuestCount:   body.GuestCount,
		Notes:        body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *Handler) Cancel(c *gin.Context) {
	var body CancelBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.service.Cancel(c.Request.Context(), reservation.CancelRequest{
		ID:          body.ID,
		BookingCode: body.BookingCode,
		Phone:       body.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateRecurring(c *gin.Context) {
	var body RecurringReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.service.CreateRecurring(c.Request.Context(), reservation.RecurringRequest{
		RoomID:        body.RoomID,
		CustomerName:  body.CustomerName,
		Phone:         body.Phone,
		Email:         body.Email,
		StartDate:     body.StartDate,
		StartTime:     body.StartTime,
		DurationHours: body.DurationHours,
		RepeatWeeks:   body.RepeatWeeks,
		GuestCount:    body.GuestCount,
		Notes:         body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Timeline returns one day's bookings grouped per room for the dashboard.
func (h *Handler) Timeline(c *gin.Context) {
	branchID := c.Query("branchId")
	if _, err := uuid.Parse(branchID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branchId is required"})
		return
	}

	result, err := h.service.Timeline(c.Request.Context(), branchID, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	rooms := make([]RoomTimelineResponse, len(result.Rooms))
	for i, rt := range result.Rooms {
		items := make([]TimelineReservation, len(rt.Reservations))
		for j, r := range rt.Reservations {
			items[j] = TimelineReservation{
				StartTime:    r.StartTime,
				EndTime:      r.EndTime,
				CustomerName: r.CustomerName,
				Status:       string(r.Status),
				TotalPrice:   r.TotalPrice,
			}
		}
		rooms[i] = RoomTimelineResponse{
			RoomID:       rt.Room.ID,
			RoomName:     rt.Room.Name,
			Reservations: items,
		}
	}

	c.JSON(http.StatusOK, TimelineResponse{
		Date:       result.Date,
		BranchName: result.Branch.Name,
		OpenTime:   result.Branch.OpenTime,
		CloseTime:  result.Branch.CloseTime,
		Rooms:      rooms,
	})
}

func (h *Handler) Stats(c *gin.Context) {
	branchID := c.Query("branchId")
	if _, err := uuid.Parse(branchID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branchId is required"})
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), branchID, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
