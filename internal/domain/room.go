package domain

import "time"

type Room struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Capacity  int       `json:"capacity" validate:"required,gt=0"`
	Location  string    `json:"location,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
