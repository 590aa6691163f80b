package room

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"officecal/internal/domain"
	"officecal/internal/pkg/validator"
)

type Service struct {
	rooms RoomStore
}

func NewService(rooms RoomStore) *Service {
	return &Service{rooms: rooms}
}

func (s *Service) Create(ctx context.Context, req RoomRequest) (*domain.Room, error) {
	r := &domain.Room{
		Name:     req.Name,
		Capacity: req.Capacity,
		Location: req.Location,
		IsActive: true,
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	if errs := validator.Validate(r); errs != nil {
		return nil, ErrValidation
	}
	if err := s.rooms.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	r, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

// List returns every room; inactive rooms are included so admins can
// re-enable them, clients filter on is_active.
func (s *Service) List(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req RoomRequest) (*domain.Room, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r := &domain.Room{
		ID:       id,
		Name:     req.Name,
		Capacity: req.Capacity,
		Location: req.Location,
		IsActive: existing.IsActive,
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	if errs := validator.Validate(r); errs != nil {
		return nil, ErrValidation
	}

	ok, err := s.rooms.Update(ctx, r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.rooms.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
