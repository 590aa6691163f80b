package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"officecal/internal/domain"
)

type fakeStore struct {
	mu      sync.Mutex
	rows    []domain.Notification
	failing bool
}

func (f *fakeStore) Create(ctx context.Context, n *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("store down")
	}
	n.ID = int64(len(f.rows) + 1)
	n.CreatedAt = time.Now().UTC()
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeStore) GetByEmployeeID(ctx context.Context, employeeID int64, limit int) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for _, n := range f.rows {
		if n.EmployeeID == employeeID && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeStore) CountUnread(ctx context.Context, employeeID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var cnt int64
	for _, n := range f.rows {
		if n.EmployeeID == employeeID && !n.IsRead {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeStore) MarkAsRead(ctx context.Context, notificationID, employeeID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == notificationID && f.rows[i].EmployeeID == employeeID {
			f.rows[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeStore) MarkAllAsRead(ctx context.Context, employeeID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].EmployeeID == employeeID {
			f.rows[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	var removed int64
	for _, n := range f.rows {
		if n.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	f.rows = kept
	return removed, nil
}

type fakeHub struct {
	published []string
	err       error
}

func (f *fakeHub) Publish(topic string, event string, payload any) error {
	f.published = append(f.published, topic)
	return f.err
}

func TestService_Publish_EmployeeTopicPersists(t *testing.T) {
	store := &fakeStore{}
	hub := &fakeHub{}
	service := NewService(store, hub, 30*24*time.Hour)

	err := service.Publish("employee:7", "BookingChanged", map[string]any{
		"date": "2026-09-10", "start_time": "09:00", "end_time": "10:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"employee:7"}, hub.published)
	assert.Len(t, store.rows, 1)
	assert.Equal(t, int64(7), store.rows[0].EmployeeID)
	assert.Equal(t, domain.NotifBookingChanged, store.rows[0].Type)
	assert.Contains(t, store.rows[0].Message, "2026-09-10")
}

func TestService_Publish_RoomTopicNotPersisted(t *testing.T) {
	store := &fakeStore{}
	hub := &fakeHub{}
	service := NewService(store, hub, 30*24*time.Hour)

	err := service.Publish("room:3", "BookingChanged", nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{"room:3"}, hub.published)
	assert.Empty(t, store.rows)
}

func TestService_Publish_FailuresSwallowed(t *testing.T) {
	store := &fakeStore{failing: true}
	hub := &fakeHub{err: errors.New("hub down")}
	service := NewService(store, hub, 30*24*time.Hour)

	assert.NoError(t, service.Publish("employee:7", "BookingChanged", nil))
}

func TestService_Sweep(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store, &fakeHub{}, time.Hour)

	_ = store.Create(context.Background(), &domain.Notification{EmployeeID: 1})
	store.rows[0].CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
	_ = store.Create(context.Background(), &domain.Notification{EmployeeID: 2})

	service.Sweep(context.Background())

	assert.Len(t, store.rows, 1)
	assert.Equal(t, int64(2), store.rows[0].EmployeeID)
}
