package booking

import (
	"errors"
	"fmt"

	"officecal/internal/domain"
)

var (
	ErrValidation   = errors.New("invalid booking interval")
	ErrNotAvailable = errors.New("room not available")
	ErrNotFound     = errors.New("booking not found")
	ErrRoomNotFound = errors.New("room not found")
	ErrForbidden    = errors.New("forbidden")
)

// ConflictError carries the occupied window a rejected admission ran
// into. errors.Is(err, ErrNotAvailable) holds for it.
type ConflictError struct {
	Conflict *domain.Conflict
}

func (e *ConflictError) Error() string {
	if e.Conflict == nil || e.Conflict.ID == 0 {
		return ErrNotAvailable.Error()
	}
	return fmt.Sprintf("room not available: %s %d occupies %s-%s",
		e.Conflict.Kind, e.Conflict.ID, e.Conflict.Interval.Start, e.Conflict.Interval.End)
}

func (e *ConflictError) Unwrap() error { return ErrNotAvailable }
