package event

import "errors"

var (
	ErrValidation   = errors.New("invalid event interval")
	ErrNotFound     = errors.New("event not found")
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomBusy     = errors.New("room not available")
	ErrForbidden    = errors.New("forbidden")
)
