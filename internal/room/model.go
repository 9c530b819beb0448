package room

import (
	"time"

	"github.com/weiting-tw/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("room not found")
	ErrBranchNotFound  = apperror.NotFound("branch not found")
	ErrNameRequired    = apperror.Validation("room name is required")
	ErrInvalidCapacity = apperror.Validation("capacity must be positive")
	ErrInvalidPrice    = apperror.Validation("hourly prices must not be negative")
	ErrNoImage         = apperror.NotFound("room has no image")
	ErrInvalidImage    = apperror.Validation("image must be JPEG or PNG")
)

// Room is a bookable space within a branch. Prices are whole currency units
// per hour; weekend means Saturday or Sunday in the business timezone.
type Room struct {
	ID            string
	BranchID      string
	Name          string
	Capacity      int
	PriceWeekday  int
	PriceWeekend  int
	ImagePath     *string
	ThumbnailPath *string
	CreatedAt     time.Time
}

// HasImage reports whether an image has been uploaded for the room.
func (r *Room) HasImage() bool {
	return r.ImagePath != nil && *r.ImagePath != ""
}
