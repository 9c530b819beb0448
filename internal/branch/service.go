package branch

import (
	"context"
	"strings"
	"time"
)

// CreateRequest carries data to create a branch.
type CreateRequest struct {
	Name      string
	Address   string
	Phone     string
	OpenTime  *string
	CloseTime *string
}

// UpdateRequest carries data for partial updates. Nil fields are untouched.
type UpdateRequest struct {
	Name      *string
	Address   *string
	Phone     *string
	OpenTime  *string
	CloseTime *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Branch, error)
	GetByID(ctx context.Context, id string) (*Branch, error)
	List(ctx context.Context) ([]*Branch, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Branch, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validTimeOfDay accepts "HH:MM" or "HH:MM:SS". An empty string is treated
// as unset. Unlike a same-day venue, close before open is legal here: it
// means the branch stays open past midnight.
func validTimeOfDay(t *string) bool {
	if t == nil || *t == "" {
		return true
	}
	if _, err := time.Parse("15:04", *t); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", *t)
	return err == nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Branch, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if !validTimeOfDay(req.OpenTime) || !validTimeOfDay(req.CloseTime) {
		return nil, ErrInvalidHours
	}

	b := &Branch{
		Name:      strings.TrimSpace(req.Name),
		Address:   req.Address,
		Phone:     req.Phone,
		OpenTime:  normalizeTime(req.OpenTime),
		CloseTime: normalizeTime(req.CloseTime),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Branch, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Branch, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Branch, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}
	if req.OpenTime != nil {
		if !validTimeOfDay(req.OpenTime) {
			return nil, ErrInvalidHours
		}
		b.OpenTime = normalizeTime(req.OpenTime)
	}
	if req.CloseTime != nil {
		if !validTimeOfDay(req.CloseTime) {
			return nil, ErrInvalidHours
		}
		b.CloseTime = normalizeTime(req.CloseTime)
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// normalizeTime maps empty strings to nil so defaults kick in downstream.
func normalizeTime(t *string) *string {
	if t == nil || *t == "" {
		return nil
	}
	return t
}
