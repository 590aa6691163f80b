package notify

import (
	"context"
	"time"

	"officecal/internal/domain"
)

type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByEmployeeID(ctx context.Context, employeeID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, employeeID int64) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, employeeID int64) error
	MarkAllAsRead(ctx context.Context, employeeID int64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Broadcaster is the live push transport behind the service, normally
// the websocket hub.
type Broadcaster interface {
	Publish(topic string, event string, payload any) error
}
