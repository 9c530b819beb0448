package reservation

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/weiting-tw/room-booking-backend/internal/branch"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/apperror"
	"github.com/weiting-tw/room-booking-backend/internal/room"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CreateRequest carries data to create a reservation.
type CreateRequest struct {
	RoomID       string
	CustomerName string
	Phone        string
	Email        *string
	StartTime    time.Time
	EndTime      time.Time
	TotalPrice   *int
	GuestCount   *int
	Notes        *string
	// Status is only honored for staff requests; public bookings are always
	// created pending.
	Status Status
	Staff  bool
}

// UpdateRequest carries data for partial updates. Nil fields are untouched.
type UpdateRequest struct {
	CustomerName *string
	Phone        *string
	Email        *string
	StartTime    *time.Time
	EndTime      *time.Time
	Status       *string
	TotalPrice   *int
	GuestCount   *int
	Notes        *string
}

// CancelRequest identifies a reservation by id or booking code; the phone
// number proves ownership.
type CancelRequest struct {
	ID          string
	BookingCode string
	Phone       string
}

// RecurringRequest books the same weekly slot for several weeks.
type RecurringRequest struct {
	RoomID        string
	CustomerName  string
	Phone         string
	Email         *string
	StartDate     string // YYYY-MM-DD, first occurrence
	StartTime     string // HH:MM, business-local
	DurationHours float64
	RepeatWeeks   int
	GuestCount    *int
	Notes         *string
}

// RecurringDetail reports the outcome for one week of a recurring request.
type RecurringDetail struct {
	Week   int    `json:"week"`
	Date   string `json:"date"`
	Status string `json:"status"` // created | skipped
	Error  string `json:"error,omitempty"`
}

type RecurringResult struct {
	Created int               `json:"created"`
	Skipped int               `json:"skipped"`
	Details []RecurringDetail `json:"details"`
}

// RoomAvailability pairs a room with its resolved slot grid for one date.
type RoomAvailability struct {
	Room  *room.Room
	Slots []Slot
}

// AvailabilityResult is the resolver output: rooms in listing order, each
// with a chronological slot grid.
type AvailabilityResult struct {
	Branch *branch.Branch
	Rooms  []RoomAvailability
}

// RoomTimeline pairs a room with its reservations intersecting one date.
type RoomTimeline struct {
	Room         *room.Room
	Reservations []*Reservation
}

// TimelineResult is the admin dashboard's per-room day view: every room of
// the branch in listing order, with the bookings occupying that date.
type TimelineResult struct {
	Date   string
	Branch *branch.Branch
	Rooms  []RoomTimeline
}

// Stats summarizes a branch's day for the admin dashboard.
type Stats struct {
	Date         string `json:"date"`
	TodayCount   int    `json:"today_count"`
	TodayRevenue int    `json:"today_revenue"`
	RoomsInUse   int    `json:"rooms_in_use"`
	TotalRooms   int    `json:"total_rooms"`
}

type Service interface {
	Availability(ctx context.Context, branchID, date, roomID string) (*AvailabilityResult, error)
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	ListByBranch(ctx context.Context, branchID string) ([]*Reservation, error)
	ListByPhone(ctx context.Context, phone string) ([]*Reservation, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Reservation, error)
	Cancel(ctx context.Context, req CancelRequest) error
	Delete(ctx context.Context, id string) error
	CreateRecurring(ctx context.Context, req RecurringRequest) (*RecurringResult, error)
	Timeline(ctx context.Context, branchID, date string) (*TimelineResult, error)
	Stats(ctx context.Context, branchID, date string) (*Stats, error)
}

type service struct {
	repo          Repository
	roomService   room.Service
	branchService branch.Service

	// now is swapped out in tests; every clock-sensitive rule goes through it.
	now func() time.Time
}

func NewService(repo Repository, roomService room.Service, branchService branch.Service) Service {
	return &service{
		repo:          repo,
		roomService:   roomService,
		branchService: branchService,
		now:           time.Now,
	}
}

func (s *service) Availability(ctx context.Context, branchID, date, roomID string) (*AvailabilityResult, error) {
	if !dateRe.MatchString(date) {
		return nil, ErrInvalidDate
	}

	b, err := s.branchService.GetByID(ctx, branchID)
	if err != nil {
		return nil, ErrBranchNotFound
	}

	var rooms []*room.Room
	if roomID != "" {
		rm, err := s.roomService.GetByID(ctx, roomID)
		if err != nil || rm.BranchID != branchID {
			return nil, ErrRoomNotFound
		}
		rooms = []*room.Room{rm}
	} else {
		rooms, err = s.roomService.ListByBranch(ctx, branchID)
		if err != nil {
			return nil, err
		}
	}

	open := ParseTimeOfDay(b.OpenTime, DefaultOpenTime)
	close := ParseTimeOfDay(b.CloseTime, DefaultCloseTime)

	dayStart, dayEnd, err := DayWindow(date, open, close)
	if err != nil {
		return nil, err
	}

	// Staleness here causes double-bookings, so every query re-reads current
	// state; nothing is cached across requests.
	blocked, err := s.repo.ListForDay(ctx, branchID, dayStart, dayEnd)
	if err != nil {
		return nil, apperror.Unavailable(err, "could not load reservations")
	}

	now := s.now()
	result := &AvailabilityResult{Branch: b}
	for _, rm := range rooms {
		var roomBlocked []*Reservation
		for _, res := range blocked {
			if res.RoomID == rm.ID {
				roomBlocked = append(roomBlocked, res)
			}
		}
		slots, err := ResolveAvailability(date, open, close, roomBlocked, now)
		if err != nil {
			return nil, err
		}
		result.Rooms = append(result.Rooms, RoomAvailability{Room: rm, Slots: slots})
	}
	return result, nil
}

// guardConflict is the application-level fast path of the conflict check.
// It fails closed: when the existence query itself errors, the caller gets
// an error, never a green light.
func (s *service) guardConflict(ctx context.Context, roomID string, start, end time.Time, excludeID string) error {
	conflict, err := s.repo.HasConflict(ctx, roomID, start, end, excludeID)
	if err != nil {
		return apperror.Unavailable(err, "could not verify availability, please retry")
	}
	if conflict {
		return ErrTimeConflict
	}
	return nil
}

func validateRange(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	if end.Sub(start) > MaxDurationHours*time.Hour {
		return ErrDurationTooLong
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	if req.RoomID == "" || strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.Phone) == "" ||
		req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, ErrMissingFields
	}
	if err := validateRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	rm, err := s.roomService.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	status := StatusPending
	if req.Staff {
		status = StatusConfirmed
		if req.Status != "" {
			if !ValidStatus(req.Status) {
				return nil, ErrInvalidStatus
			}
			status = req.Status
		}
	}

	if err := s.guardConflict(ctx, req.RoomID, req.StartTime, req.EndTime, ""); err != nil {
		return nil, err
	}

	totalPrice := req.TotalPrice
	if totalPrice == nil {
		date := req.StartTime.In(BusinessZone).Format(dateLayout)
		hours := req.EndTime.Sub(req.StartTime).Hours()
		price, err := PriceForBooking(rm, date, hours)
		if err != nil {
			return nil, err
		}
		totalPrice = &price
	}

	r := &Reservation{
		RoomID:       rm.ID,
		RoomName:     rm.Name,
		BranchID:     rm.BranchID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        normalizePhone(req.Phone),
		Email:        trimPtr(req.Email),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       status,
		TotalPrice:   totalPrice,
		GuestCount:   req.GuestCount,
		Notes:        trimPtr(req.Notes),
	}

	return r, s.insertWithFreshCode(ctx, r)
}

// insertWithFreshCode generates the booking code and performs the atomic
// insert, retrying once with a new code if the database reports a duplicate.
func (s *service) insertWithFreshCode(ctx context.Context, r *Reservation) error {
	for attempt := 0; ; attempt++ {
		code, err := NewBookingCode()
		if err != nil {
			return err
		}
		r.BookingCode = code

		err = s.repo.CreateAtomic(ctx, r)
		if errors.Is(err, ErrCodeCollision) && attempt == 0 {
			continue
		}
		return err
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByBranch(ctx context.Context, branchID string) ([]*Reservation, error) {
	if _, err := s.branchService.GetByID(ctx, branchID); err != nil {
		return nil, ErrBranchNotFound
	}
	return s.repo.ListByBranch(ctx, branchID)
}

func (s *service) ListByPhone(ctx context.Context, phone string) ([]*Reservation, error) {
	return s.repo.ListByPhone(ctx, normalizePhone(phone))
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		if strings.TrimSpace(*req.CustomerName) == "" {
			return nil, ErrMissingFields
		}
		r.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.Phone != nil {
		r.Phone = normalizePhone(*req.Phone)
	}
	if req.Email != nil {
		r.Email = trimPtr(req.Email)
	}
	if req.TotalPrice != nil {
		r.TotalPrice = req.TotalPrice
	}
	if req.GuestCount != nil {
		r.GuestCount = req.GuestCount
	}
	if req.Notes != nil {
		r.Notes = trimPtr(req.Notes)
	}

	if req.Status != nil {
		st := Status(*req.Status)
		if !ValidStatus(st) {
			return nil, ErrInvalidStatus
		}
		if !CanTransition(r.Status, st) {
			return nil, ErrBadTransition
		}
		r.Status = st
	}

	timeChanged := false
	if req.StartTime != nil {
		r.StartTime = *req.StartTime
		timeChanged = true
	}
	if req.EndTime != nil {
		r.EndTime = *req.EndTime
		timeChanged = true
	}

	if timeChanged {
		if err := validateRange(r.StartTime, r.EndTime); err != nil {
			return nil, err
		}
		// Re-run the guard excluding the reservation itself, then write under
		// the room lock.
		if err := s.guardConflict(ctx, r.RoomID, r.StartTime, r.EndTime, r.ID); err != nil {
			return nil, err
		}
		if err := s.repo.UpdateTimeAtomic(ctx, r); err != nil {
			return nil, err
		}
		return r, nil
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Cancel(ctx context.Context, req CancelRequest) error {
	phone := normalizePhone(req.Phone)
	if phone == "" {
		return apperror.Validation("phone number is required")
	}
	if req.ID == "" && req.BookingCode == "" {
		return apperror.Validation("reservation id or booking code is required")
	}

	owned, err := s.repo.ListByPhone(ctx, phone)
	if err != nil {
		return apperror.Unavailable(err, "could not look up reservations")
	}

	var match *Reservation
	for _, r := range owned {
		if (req.ID != "" && r.ID == req.ID) ||
			(req.ID == "" && r.BookingCode == strings.ToUpper(strings.TrimSpace(req.BookingCode))) {
			match = r
			break
		}
	}
	if match == nil {
		return apperror.NotFound("no matching reservation for this phone number")
	}

	if match.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	// Terminal states other than cancelled must not be reopened through
	// self-service.
	if !CanTransition(match.Status, StatusCancelled) {
		return ErrBadTransition
	}
	if match.StartTime.Sub(s.now()) < SelfCancelWindow {
		return ErrCancelWindow
	}

	match.Status = StatusCancelled
	return s.repo.Update(ctx, match)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CreateRecurring(ctx context.Context, req RecurringRequest) (*RecurringResult, error) {
	if req.RoomID == "" || strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.Phone) == "" ||
		req.StartDate == "" || req.StartTime == "" {
		return nil, ErrMissingFields
	}
	if !dateRe.MatchString(req.StartDate) {
		return nil, ErrInvalidDate
	}
	if req.RepeatWeeks < 4 || req.RepeatWeeks > 12 {
		return nil, ErrInvalidRepeat
	}
	if req.DurationHours < 1 || req.DurationHours > MaxDurationHours {
		return nil, ErrInvalidDuration
	}

	rm, err := s.roomService.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	firstDay, err := time.ParseInLocation(dateLayout, req.StartDate, BusinessZone)
	if err != nil {
		return nil, ErrInvalidDate
	}
	tod := ParseTimeOfDay(&req.StartTime, TimeOfDay{})
	duration := time.Duration(req.DurationHours * float64(time.Hour))

	result := &RecurringResult{}
	for week := 0; week < req.RepeatWeeks; week++ {
		day := firstDay.AddDate(0, 0, week*7)
		dateStr := day.Format(dateLayout)
		start := day.Add(time.Duration(tod.Hour)*time.Hour + time.Duration(tod.Minute)*time.Minute)
		end := start.Add(duration)

		detail := RecurringDetail{Week: week + 1, Date: dateStr}

		// Per-week conflicts skip that occurrence; storage failures abort the
		// whole batch instead of silently under-reporting.
		err := s.guardConflict(ctx, rm.ID, start, end, "")
		if errors.Is(err, ErrTimeConflict) {
			result.Skipped++
			detail.Status = "skipped"
			detail.Error = err.Error()
			result.Details = append(result.Details, detail)
			continue
		}
		if err != nil {
			return nil, err
		}

		price, err := PriceForBooking(rm, dateStr, req.DurationHours)
		if err != nil {
			return nil, err
		}

		r := &Reservation{
			RoomID:       rm.ID,
			CustomerName: strings.TrimSpace(req.CustomerName),
			Phone:        normalizePhone(req.Phone),
			Email:        trimPtr(req.Email),
			StartTime:    start,
			EndTime:      end,
			Status:       StatusConfirmed,
			TotalPrice:   &price,
			GuestCount:   req.GuestCount,
			Notes:        trimPtr(req.Notes),
		}

		err = s.insertWithFreshCode(ctx, r)
		if errors.Is(err, ErrTimeConflict) {
			result.Skipped++
			detail.Status = "skipped"
			detail.Error = err.Error()
			result.Details = append(result.Details, detail)
			continue
		}
		if err != nil {
			return nil, err
		}

		result.Created++
		detail.Status = "created"
		result.Details = append(result.Details, detail)
	}
	return result, nil
}

func (s *service) Timeline(ctx context.Context, branchID, date string) (*TimelineResult, error) {
	if date == "" {
		date = s.now().In(BusinessZone).Format(dateLayout)
	}
	if !dateRe.MatchString(date) {
		return nil, ErrInvalidDate
	}

	b, err := s.branchService.GetByID(ctx, branchID)
	if err != nil {
		return nil, ErrBranchNotFound
	}
	rooms, err := s.roomService.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation(dateLayout, date, BusinessZone)
	if err != nil {
		return nil, ErrInvalidDate
	}
	// Full calendar day, interval intersection: a booking running past
	// midnight still shows up on both days it touches.
	reservations, err := s.repo.ListForDay(ctx, branchID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperror.Unavailable(err, "could not load reservations")
	}

	result := &TimelineResult{Date: date, Branch: b}
	for _, rm := range rooms {
		rt := RoomTimeline{Room: rm}
		for _, r := range reservations {
			if r.RoomID == rm.ID {
				rt.Reservations = append(rt.Reservations, r)
			}
		}
		result.Rooms = append(result.Rooms, rt)
	}
	return result, nil
}

func (s *service) Stats(ctx context.Context, branchID, date string) (*Stats, error) {
	now := s.now()
	if date == "" {
		date = now.In(BusinessZone).Format(dateLayout)
	}
	if !dateRe.MatchString(date) {
		return nil, ErrInvalidDate
	}

	day, err := time.ParseInLocation(dateLayout, date, BusinessZone)
	if err != nil {
		return nil, ErrInvalidDate
	}
	dayEnd := day.AddDate(0, 0, 1)

	reservations, err := s.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomService.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Date: date, TotalRooms: len(rooms)}
	inUse := map[string]struct{}{}
	for _, r := range reservations {
		if r.Status == StatusCancelled {
			continue
		}
		if !r.StartTime.Before(day) && r.StartTime.Before(dayEnd) {
			stats.TodayCount++
			if r.TotalPrice != nil {
				stats.TodayRevenue += *r.TotalPrice
			}
		}
		if r.Status != StatusCompleted && !r.StartTime.After(now) && r.EndTime.After(now) {
			inUse[r.RoomID] = struct{}{}
		}
	}
	stats.RoomsInUse = len(inUse)
	return stats, nil
}

func normalizePhone(p string) string {
	return strings.ReplaceAll(strings.TrimSpace(p), " ", "")
}

// trimPtr trims a nullable string, mapping blank to nil.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
