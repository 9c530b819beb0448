package room

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/weiting-tw/room-booking-backend/internal/branch"
	"github.com/weiting-tw/room-booking-backend/internal/pkg/storage"
)

const (
	thumbMaxWidth  = 480
	thumbMaxHeight = 360
)

// CreateRequest carries data to create a room.
type CreateRequest struct {
	BranchID     string
	Name         string
	Capacity     int
	PriceWeekday int
	PriceWeekend int
}

// UpdateRequest carries data for partial updates. Nil fields are untouched.
type UpdateRequest struct {
	Name         *string
	Capacity     *int
	PriceWeekday *int
	PriceWeekend *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByBranch(ctx context.Context, branchID string) ([]*Room, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	Delete(ctx context.Context, id string) error

	// SaveImage stores the room photo plus a generated thumbnail and records
	// their paths on the room row.
	SaveImage(ctx context.Context, id string, contentType string, content io.Reader) (*Room, error)
	// OpenImage returns the stored image (or thumbnail) content.
	OpenImage(ctx context.Context, id string, thumbnail bool) (io.ReadCloser, error)
}

type service struct {
	repo          Repository
	branchService branch.Service
	store         storage.Storage
	images        *storage.ImageProcessor
}

func NewService(repo Repository, branchService branch.Service, store storage.Storage, images *storage.ImageProcessor) Service {
	return &service{
		repo:          repo,
		branchService: branchService,
		store:         store,
		images:        images,
	}
}

func validatePrices(rm *Room) error {
	if rm.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if rm.PriceWeekday < 0 || rm.PriceWeekend < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	// Verify that the branch exists.
	if _, err := s.branchService.GetByID(ctx, req.BranchID); err != nil {
		return nil, ErrBranchNotFound
	}

	rm := &Room{
		BranchID:     req.BranchID,
		Name:         strings.TrimSpace(req.Name),
		Capacity:     req.Capacity,
		PriceWeekday: req.PriceWeekday,
		PriceWeekend: req.PriceWeekend,
	}
	if err := validatePrices(rm); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByBranch(ctx context.Context, branchID string) ([]*Room, error) {
	if _, err := s.branchService.GetByID(ctx, branchID); err != nil {
		return nil, ErrBranchNotFound
	}
	return s.repo.ListByBranch(ctx, branchID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		rm.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		rm.Capacity = *req.Capacity
	}
	if req.PriceWeekday != nil {
		rm.PriceWeekday = *req.PriceWeekday
	}
	if req.PriceWeekend != nil {
		rm.PriceWeekend = *req.PriceWeekend
	}
	if err := validatePrices(rm); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rm.HasImage() {
		// Orphaned files are harmless; best effort only.
		_ = s.store.Delete(ctx, *rm.ImagePath)
		if rm.ThumbnailPath != nil {
			_ = s.store.Delete(ctx, *rm.ThumbnailPath)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SaveImage(ctx context.Context, id string, contentType string, content io.Reader) (*Room, error) {
	if contentType != "image/jpeg" && contentType != "image/png" {
		return nil, ErrInvalidImage
	}

	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Buffer once so the same bytes feed both the original and the thumbnail.
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("read image failed: %w", err)
	}

	token := uuid.NewString()
	imagePath := fmt.Sprintf("rooms/%s/%s.img", rm.ID, token)
	thumbPath := fmt.Sprintf("rooms/%s/%s.thumb.jpg", rm.ID, token)

	if err := s.store.Save(ctx, imagePath, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("save image failed: %w", err)
	}

	thumb, err := s.images.GenerateThumbnail(bytes.NewReader(data), thumbMaxWidth, thumbMaxHeight)
	if err != nil {
		_ = s.store.Delete(ctx, imagePath)
		return nil, ErrInvalidImage
	}
	if err := s.store.Save(ctx, thumbPath, thumb); err != nil {
		_ = s.store.Delete(ctx, imagePath)
		return nil, fmt.Errorf("save thumbnail failed: %w", err)
	}

	// Replace any previous upload.
	oldImage, oldThumb := rm.ImagePath, rm.ThumbnailPath

	rm.ImagePath = &imagePath
	rm.ThumbnailPath = &thumbPath
	if err := s.repo.Update(ctx, rm); err != nil {
		_ = s.store.Delete(ctx, imagePath)
		_ = s.store.Delete(ctx, thumbPath)
		return nil, err
	}

	if oldImage != nil {
		_ = s.store.Delete(ctx, *oldImage)
	}
	if oldThumb != nil {
		_ = s.store.Delete(ctx, *oldThumb)
	}
	return rm, nil
}

func (s *service) OpenImage(ctx context.Context, id string, thumbnail bool) (io.ReadCloser, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rm.HasImage() {
		return nil, ErrNoImage
	}
	path := *rm.ImagePath
	if thumbnail && rm.ThumbnailPath != nil {
		path = *rm.ThumbnailPath
	}
	rc, err := s.store.Get(ctx, path)
	if err != nil {
		return nil, ErrNoImage
	}
	return rc, nil
}
