package event

import (
	"context"
	"time"

	"officecal/internal/domain"
)

// EventStore persists calendar events. Insert/Update of a room-holding
// event re-check the room's conflict domain inside the transaction, the
// same contract the booking store honors.
type EventStore interface {
	Insert(ctx context.Context, e *domain.Event) (*domain.Conflict, error)
	Update(ctx context.Context, e *domain.Event) (*domain.Conflict, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	ListRange(ctx context.Context, from, to time.Time) ([]domain.Event, error)
}

type RoomStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type Publisher interface {
	Publish(topic string, event string, payload any) error
}
