package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reservationhttp "github.com/weiting-tw/room-booking-backend/internal/reservation/http"

	"github.com/weiting-tw/room-booking-backend/internal/pkg/request"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/response"
	"github.com/weiting-tw/room-booking-backend/internal/reminder"
)

type Handler struct {
	service reminder.Service
}

func NewHandler(service reminder.Service) *Handler {
	return &Handler{service: service}
}

// List returns tomorrow's reservations that have not been notified yet.
func (h *Handler) List(c *gin.Context) {
	due, err := h.service.ListDue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]reservationhttp.ReservationResponse, len(due))
	for i, r := range due {
		items[i] = reservationhttp.NewReservationResponse(r)
	}
	c.JSON(http.StatusOK, items)
}

// SendLine pushes the digest to the LINE group and flags the reservations.
func (h *Handler) SendLine(c *gin.Context) {
	sent, err := h.service.SendDaily(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "sent": sent})
}

type setNotifiedRequest struct {
	IsNotified *bool `json:"is_notified" binding:"required"`
}

// SetNotified lets the dashboard toggle the notified flag on one booking.
func (h *Handler) SetNotified(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body setNotifiedRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_notified is required"})
		return
	}

	if err := h.service.SetNotified(c.Request.Context(), params.ID, *body.IsNotified); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
