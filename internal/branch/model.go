package branch

import (
	"time"

	"github.com/weiting-tw/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.NotFound("branch not found")
	ErrNameRequired = apperror.Validation("branch name is required")
	ErrInvalidHours = apperror.Validation("open/close time must be HH:MM")
)

// Branch is a physical store location. Open and close times are stored as
// local time-of-day strings ("HH:MM"); nil means the default business hours
// apply. close <= open means the business day crosses midnight.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	OpenTime  *string
	CloseTime *string
	CreatedAt time.Time
}
