package domain

import "time"

type NotificationType string

const (
	NotifBookingChanged NotificationType = "booking_changed"
	NotifEventChanged   NotificationType = "event_changed"
)

type Notification struct {
	ID         int64            `json:"id"`
	EmployeeID int64            `json:"employee_id"`
	Type       NotificationType `json:"type"`
	Title      string           `json:"title"`
	Message    string           `json:"message" gorm:"type:text"`
	IsRead     bool             `json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}
