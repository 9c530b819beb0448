// Package reminder sends next-day booking digests to the operators' LINE
// group and exposes the same list to the admin dashboard.
package reminder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/weiting-tw/room-booking-backend/internal/notify"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/apperror"
	"github.com/weiting-tw/room-booking-backend/internal/reservation"
)

type Service interface {
	// ListDue returns tomorrow's not-yet-notified reservations.
	ListDue(ctx context.Context) ([]*reservation.Reservation, error)
	// SendDaily pushes the digest to LINE and marks every included
	// reservation as notified. Returns the number of reservations sent.
	SendDaily(ctx context.Context) (int, error)
	// SetNotified flips the notified flag on one reservation.
	SetNotified(ctx context.Context, id string, notified bool) error
}

type service struct {
	repo Repository
	line *notify.LineClient
	now  func() time.Time
}

func NewService(repo Repository, line *notify.LineClient) Service {
	return &service{repo: repo, line: line, now: time.Now}
}

// dueWindow is tomorrow's [00:00, 24:00) in the business timezone.
func (s *service) dueWindow() (time.Time, time.Time) {
	local := s.now().In(reservation.BusinessZone)
	start := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, reservation.BusinessZone)
	return start, start.Add(24 * time.Hour)
}

func (s *service) ListDue(ctx context.Context) ([]*reservation.Reservation, error) {
	start, end := s.dueWindow()
	return s.repo.ListDue(ctx, start, end)
}

func (s *service) SendDaily(ctx context.Context) (int, error) {
	if !s.line.IsConfigured() {
		return 0, apperror.Unavailable(nil, "LINE push is not configured")
	}

	start, end := s.dueWindow()
	due, err := s.repo.ListDue(ctx, start, end)
	if err != nil {
		return 0, err
	}

	text := FormatDigest(due, start)
	if err := s.line.PushText(ctx, text); err != nil {
		return 0, apperror.Unavailable(err, "LINE push failed")
	}

	for _, r := range due {
		if err := s.repo.SetNotified(ctx, r.ID, true); err != nil {
			// The digest is already out; keep flagging the rest.
			log.Printf("reminder: mark notified %s failed: %v", r.ID, err)
		}
	}
	return len(due), nil
}

func (s *service) SetNotified(ctx context.Context, id string, notified bool) error {
	return s.repo.SetNotified(ctx, id, notified)
}

// FormatDigest renders the LINE group message for one day of reservations.
func FormatDigest(reservations []*reservation.Reservation, day time.Time) string {
	if len(reservations) == 0 {
		return "📋 明日無訂位，不需準備包廂。"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 明日訂位提醒（%s）\n", day.In(reservation.BusinessZone).Format("2006/01/02"))
	fmt.Fprintf(&b, "共 %d 筆\n", len(reservations))
	b.WriteString(strings.Repeat("─", 20))

	for _, r := range reservations {
		start := r.StartTime.In(reservation.BusinessZone)
		end := r.EndTime.In(reservation.BusinessZone)
		fmt.Fprintf(&b, "\n\n👤 %s｜📞 %s\n", r.CustomerName, r.Phone)
		fmt.Fprintf(&b, "🏠 %s — %s\n", r.BranchName, r.RoomName)
		fmt.Fprintf(&b, "🕐 %s ~ %s", start.Format("15:04"), end.Format("15:04"))
		if r.GuestCount != nil && *r.GuestCount > 0 {
			fmt.Fprintf(&b, "\n👥 %d 人", *r.GuestCount)
		}
	}
	return b.String()
}
