package booking

import (
	"context"
	"time"

	"officecal/internal/domain"
)

// BookingStore is the persistence contract for bookings. Insert and
// Update execute the overlap re-check and the write inside one store
// transaction; a returned non-nil Conflict means nothing was written.
type BookingStore interface {
	Insert(ctx context.Context, b *domain.Booking) (*domain.Conflict, error)
	Update(ctx context.Context, b *domain.Booking) (*domain.Conflict, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindOverlap(ctx context.Context, roomID int64, iv domain.Interval, excludeBookingID int64) (*domain.Conflict, error)
	FindUpcoming(ctx context.Context, employeeID int64, now time.Time) ([]domain.Booking, error)
	ListForRoomDate(ctx context.Context, roomID int64, date time.Time) ([]domain.Booking, error)
}

// RoomStore resolves rooms referenced by bookings.
type RoomStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// Publisher is the fire-and-forget change broadcast. Delivery failures
// never affect the committed booking.
type Publisher interface {
	Publish(topic string, event string, payload any) error
}
