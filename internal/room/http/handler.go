package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/request"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/response"
	"github.com/weiting-tw/room-booking-backend/internal/room"
)

const maxImageBytes = 10 << 20 // 10 MiB

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
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

func (h *Handler) ListByBranch(c *gin.Context) {
	branchID, ok := bindID(c)
	if !ok {
		return
	}

	rooms, err := h.service.ListByBranch(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(r))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		BranchID:     body.BranchID,
		Name:         body.Name,
		Capacity:     body.Capacity,
		PriceWeekday: body.PriceWeekday,
		PriceWeekend: body.PriceWeekend,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRoomResponse(r))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var body UpdateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	r, err := h.service.Update(c.Request.Context(), id, room.UpdateRequest{
		Name:         body.Name,
		Capacity:     body.Capacity,
		PriceWeekday: body.PriceWeekday,
		PriceWeekend: body.PriceWeekend,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(r))
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

func (h *Handler) UploadImage(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer f.Close()

	r, err := h.service.SaveImage(c.Request.Context(), id, fileHeader.Header.Get("Content-Type"), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(r))
}

func (h *Handler) GetImage(c *gin.Context) {
	h.serveImage(c, false)
}

func (h *Handler) GetThumbnail(c *gin.Context) {
	h.serveImage(c, true)
}

func (h *Handler) serveImage(c *gin.Context, thumbnail bool) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	rc, err := h.service.OpenImage(c.Request.Context(), id, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "public, max-age=3600")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}
