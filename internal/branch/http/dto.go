package http

import (
	"time"

	"github.com/weiting-tw/room-booking-backend/internal/branch"
)

// CreateBranchRequest is the payload for creating a branch.
type CreateBranchRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	OpenTime  *string `json:"open_time"`
	CloseTime *string `json:"close_time"`
}

// UpdateBranchRequest is the payload for partially updating a branch.
type UpdateBranchRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	OpenTime  *string `json:"open_time"`
	CloseTime *string `json:"close_time"`
}

type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	OpenTime  *string   `json:"open_time"`
	CloseTime *string   `json:"close_time"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBranchResponse(b *branch.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		OpenTime:  b.OpenTime,
		CloseTime: b.CloseTime,
		CreatedAt: b.CreatedAt,
	}
}
