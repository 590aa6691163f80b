package booking

import (
	"context"

	"officecal/internal/domain"
)

// OverlapFinder is the read-only slice of the store the checker needs.
type OverlapFinder interface {
	FindOverlap(ctx context.Context, roomID int64, iv domain.Interval, excludeBookingID int64) (*domain.Conflict, error)
}

// ConflictChecker decides whether a room/date/interval is free against
// the persisted conflict domain (bookings plus room-holding events).
// It reads only; the authoritative re-check happens inside the store
// transaction at write time.
type ConflictChecker struct {
	store OverlapFinder
}

func NewConflictChecker(store OverlapFinder) *ConflictChecker {
	return &ConflictChecker{store: store}
}

// FindConflict returns any one overlapping entry, or nil when the slot
// is free. excludeBookingID skips the booking being updated (0 skips
// nothing). The interval is assumed valid.
func (cc *ConflictChecker) FindConflict(ctx context.Context, roomID int64, iv domain.Interval, excludeBookingID int64) (*domain.Conflict, error) {
	return cc.store.FindOverlap(ctx, roomID, iv, excludeBookingID)
}
