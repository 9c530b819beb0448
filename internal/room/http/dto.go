package http

import (
	"time"

	"github.com/weiting-tw/room-booking-backend/internal/room"
)

// CreateRoomRequest is the payload for creating a room.
type CreateRoomRequest struct {
	BranchID     string `json:"branch_id" binding:"required,uuid"`
	Name         string `json:"name" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
	PriceWeekday int    `json:"price_weekday" binding:"min=0"`
	PriceWeekend int    `json:"price_weekend" binding:"min=0"`
}

// UpdateRoomRequest is the payload for partially updating a room.
type UpdateRoomRequest struct {
	Name         *string `json:"name"`
	Capacity     *int    `json:"capacity"`
	PriceWeekday *int    `json:"price_weekday"`
	PriceWeekend *int    `json:"price_weekend"`
}

type RoomResponse struct {
	ID           string    `json:"id"`
	BranchID     string    `json:"branch_id"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	PriceWeekday int       `json:"price_weekday"`
	PriceWeekend int       `json:"price_weekend"`
	ImageURL     *string   `json:"image_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	resp := RoomResponse{
		ID:           r.ID,
		BranchID:     r.BranchID,
		Name:         r.Name,
		Capacity:     r.Capacity,
		PriceWeekday: r.PriceWeekday,
		PriceWeekend: r.PriceWeekend,
		CreatedAt:    r.CreatedAt,
	}
	if r.HasImage() {
		img := "/v1/rooms/" + r.ID + "/image"
		thumb := img + "/thumbnail"
		resp.ImageURL = &img
		resp.ThumbnailURL = &thumb
	}
	return resp
}
