package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"officecal/internal/domain"
)

type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Insert(ctx context.Context, e *domain.Event) (*domain.Conflict, error) {
	args := m.Called(ctx, e)
	if e != nil {
		e.ID = 555 // simulate DB insert
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conflict), args.Error(1)
}

func (m *MockEventStore) Update(ctx context.Context, e *domain.Event) (*domain.Conflict, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conflict), args.Error(1)
}

func (m *MockEventStore) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventStore) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventStore) ListRange(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(topic string, event string, payload any) error {
	args := m.Called(topic, event, payload)
	return args.Error(0)
}

func newTestService(events *MockEventStore, rooms *MockRoomStore, notifs *MockPublisher) *Service {
	s := NewService(events, rooms, notifs)
	s.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Create_RoomlessEvent(t *testing.T) {
	events := new(MockEventStore)
	notifs := new(MockPublisher)

	events.On("Insert", mock.Anything, mock.Anything).Return(nil, nil)
	notifs.On("Publish", mock.Anything, EventEventChanged, mock.Anything).Return(nil)

	service := newTestService(events, new(MockRoomStore), notifs)

	e, err := service.Create(context.Background(), EventRequest{
		Title:     "team retro",
		Date:      "2026-08-20", // roomless events may backfill history
		StartTime: "15:00",
		EndTime:   "16:00",
	}, 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(555), e.ID)
	assert.Nil(t, e.RoomID)
}

func TestService_Create_RoomHeldByBooking(t *testing.T) {
	events := new(MockEventStore)
	rooms := new(MockRoomStore)
	roomID := int64(3)

	rooms.On("GetByID", mock.Anything, roomID).Return(&domain.Room{ID: roomID, Name: "Vega", IsActive: true}, nil)
	events.On("Insert", mock.Anything, mock.Anything).
		Return(&domain.Conflict{Kind: domain.ConflictBooking, ID: 12}, nil)

	service := newTestService(events, rooms, new(MockPublisher))

	_, err := service.Create(context.Background(), EventRequest{
		Title:     "all hands",
		Date:      "2026-09-10",
		StartTime: "09:00",
		EndTime:   "10:00",
		RoomID:    &roomID,
	}, 7)

	assert.ErrorIs(t, err, ErrRoomBusy)

	var rbe *RoomBusyError
	assert.ErrorAs(t, err, &rbe)
	assert.Equal(t, domain.ConflictBooking, rbe.Conflict.Kind)
}

func TestService_Create_RoomHoldingEventMustBeFuture(t *testing.T) {
	roomID := int64(3)
	service := newTestService(new(MockEventStore), new(MockRoomStore), new(MockPublisher))

	_, err := service.Create(context.Background(), EventRequest{
		Title:     "all hands",
		Date:      "2026-08-20",
		StartTime: "09:00",
		EndTime:   "10:00",
		RoomID:    &roomID,
	}, 7)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Update_NotFound(t *testing.T) {
	events := new(MockEventStore)
	events.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(events, new(MockRoomStore), new(MockPublisher))

	_, err := service.Update(context.Background(), 9, EventRequest{
		Title: "x", Date: "2026-09-10", StartTime: "09:00", EndTime: "10:00",
	}, 7, domain.RoleEmployee)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update_Forbidden(t *testing.T) {
	events := new(MockEventStore)
	events.On("GetByID", mock.Anything, int64(9)).Return(&domain.Event{ID: 9, EmployeeID: 42}, nil)

	service := newTestService(events, new(MockRoomStore), new(MockPublisher))

	_, err := service.Update(context.Background(), 9, EventRequest{
		Title: "x", Date: "2026-09-10", StartTime: "09:00", EndTime: "10:00",
	}, 7, domain.RoleEmployee)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_ListRange_Validation(t *testing.T) {
	service := newTestService(new(MockEventStore), new(MockRoomStore), new(MockPublisher))

	_, err := service.ListRange(context.Background(), "2026-09-10", "2026-09-10")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.ListRange(context.Background(), "not-a-date", "2026-09-10")
	assert.ErrorIs(t, err, ErrValidation)
}
