package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"officecal/internal/domain"
)

type Service struct {
	store     NotificationStore
	hub       Broadcaster
	retention time.Duration
}

func NewService(store NotificationStore, hub Broadcaster, retention time.Duration) *Service {
	return &Service{store: store, hub: hub, retention: retention}
}

// Publish pushes the event on the live hub and, for employee-addressed
// topics, records an in-app notification so offline employees see the
// change later. Both legs are best effort.
func (s *Service) Publish(topic string, event string, payload any) error {
	if s.hub != nil {
		_ = s.hub.Publish(topic, event, payload)
	}

	employeeID, ok := employeeFromTopic(topic)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n := &domain.Notification{
		EmployeeID: employeeID,
		Type:       typeForEvent(event),
		Title:      titleForEvent(event),
		Message:    messageFor(event, payload),
	}
	if err := s.store.Create(ctx, n); err != nil {
		log.Printf("notification_persist_failed employee_id=%d event=%s err=%v", employeeID, event, err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, employeeID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.store.GetByEmployeeID(ctx, employeeID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.store.CountUnread(ctx, employeeID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, employeeID int64) error {
	return s.store.MarkAsRead(ctx, notificationID, employeeID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, employeeID int64) error {
	return s.store.MarkAllAsRead(ctx, employeeID)
}

// Sweep deletes notifications older than the retention window. Wired to
// the cron schedule in cmd/api.
func (s *Service) Sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.retention)
	n, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("notification_sweep_failed err=%v", err)
		return
	}
	log.Printf("notification_sweep_done removed=%d cutoff=%s", n, cutoff.Format(time.RFC3339))
}

func employeeFromTopic(topic string) (int64, bool) {
	raw, ok := strings.CutPrefix(topic, "employee:")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func typeForEvent(event string) domain.NotificationType {
	if event == "EventChanged" {
		return domain.NotifEventChanged
	}
	return domain.NotifBookingChanged
}

func titleForEvent(event string) string {
	if event == "EventChanged" {
		return "Calendar event updated"
	}
	return "Room booking updated"
}

func messageFor(event string, payload any) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return event
	}
	date, _ := m["date"].(string)
	start, _ := m["start_time"].(string)
	end, _ := m["end_time"].(string)
	if date == "" {
		return event
	}
	return fmt.Sprintf("%s: %s %s-%s", event, date, start, end)
}
