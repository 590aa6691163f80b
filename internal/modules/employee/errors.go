package employee

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("employee not found")
	ErrEmailTaken = errors.New("email already registered")
)
