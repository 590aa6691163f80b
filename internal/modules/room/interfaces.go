package room

import (
	"context"

	"officecal/internal/domain"
)

type RoomStore interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
