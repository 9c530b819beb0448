package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weiting-tw/room-booking-backend/internal/branch"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/request"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/response"
)

type Handler struct {
	service branch.Service
}

func NewHandler(service branch.Service) *Handler {
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

func (h *Handler) List(c *gin.Context) {
	branches, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BranchResponse, len(branches))
	for i, b := range branches {
		items[i] = NewBranchResponse(b)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBranchResponse(b))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBranchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), branch.CreateRequest{
		Name:      body.Name,
		Address:   body.Address,
		Phone:     body.Phone,
		OpenTime:  body.OpenTime,
		CloseTime: body.CloseTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBranchResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var body UpdateBranchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, branch.UpdateRequest{
		Name:      body.Name,
		Address:   body.Address,
		Phone:     body.Phone,
		OpenTime:  body.OpenTime,
		CloseTime: body.CloseTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBranchResponse(b))
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
