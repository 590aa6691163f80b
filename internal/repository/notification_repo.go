package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"officecal/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) GetByEmployeeID(ctx context.Context, employeeID int64, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, employeeID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("employee_id = ? AND is_read = ?", employeeID, false).
		Count(&cnt).Error
	return cnt, err
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, notificationID, employeeID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND employee_id = ?", notificationID, employeeID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, employeeID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("employee_id = ? AND is_read = ?", employeeID, false).
		Update("is_read", true).Error
}

// DeleteOlderThan removes notifications created before the cutoff.
// Returns the number of rows swept.
func (r *NotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.Notification{})
	return res.RowsAffected, res.Error
}
