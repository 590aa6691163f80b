package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"officecal/internal/domain"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Insert(ctx context.Context, b *domain.Booking) (*domain.Conflict, error) {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conflict), args.Error(1)
}

func (m *MockBookingStore) Update(ctx context.Context, b *domain.Booking) (*domain.Conflict, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conflict), args.Error(1)
}

func (m *MockBookingStore) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) FindOverlap(ctx context.Context, roomID int64, iv domain.Interval, excludeBookingID int64) (*domain.Conflict, error) {
	args := m.Called(ctx, roomID, iv, excludeBookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conflict), args.Error(1)
}

func (m *MockBookingStore) FindUpcoming(ctx context.Context, employeeID int64, now time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, employeeID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingStore) ListForRoomDate(ctx context.Context, roomID int64, date time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
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

var testClock = func() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(store *MockBookingStore, rooms *MockRoomStore, notifs *MockPublisher) *Service {
	s := NewService(store, rooms, notifs)
	s.now = testClock
	return s
}

func activeRoom(id int64) *domain.Room {
	return &domain.Room{ID: id, Name: "Aurora", Capacity: 8, IsActive: true}
}

func TestService_Create_Success(t *testing.T) {
	store := new(MockBookingStore)
	rooms := new(MockRoomStore)
	notifs := new(MockPublisher)

	rooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(10), nil)
	store.On("FindOverlap", mock.Anything, int64(10), mock.Anything, int64(0)).Return(nil, nil)
	store.On("Insert", mock.Anything, mock.Anything).Return(nil, nil)
	notifs.On("Publish", "room:10", EventBookingChanged, mock.Anything).Return(nil)
	notifs.On("Publish", "employee:7", EventBookingChanged, mock.Anything).Return(nil)

	service := newTestService(store, rooms, notifs)

	resp, err := service.Create(context.Background(), BookingRequest{
		RoomID:      10,
		BookingDate: "2026-09-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
		Purpose:     "standup",
	}, 7)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(999), resp.ID)
	assert.Equal(t, "Aurora", resp.RoomName)
	assert.Equal(t, "09:00", resp.StartTime)
	notifs.AssertExpectations(t)
}

func TestService_Create_EndBeforeStart(t *testing.T) {
	service := newTestService(new(MockBookingStore), new(MockRoomStore), new(MockPublisher))

	_, err := service.Create(context.Background(), BookingRequest{
		RoomID:      10,
		BookingDate: "2026-09-10",
		StartTime:   "14:00",
		EndTime:     "12:00",
	}, 7)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Create_PastDate(t *testing.T) {
	service := newTestService(new(MockBookingStore), new(MockRoomStore), new(MockPublisher))

	_, err := service.Create(context.Background(), BookingRequest{
		RoomID:      10,
		BookingDate: "2026-08-31",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}, 7)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Create_Conflict(t *testing.T) {
	store := new(MockBookingStore)
	rooms := new(MockRoomStore)

	conflict := &domain.Conflict{
		Kind:     domain.ConflictBooking,
		ID:       44,
		Interval: mustIv(t, "2026-09-10", "09:00", "10:30"),
	}

	rooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(10), nil)
	store.On("FindOverlap", mock.Anything, int64(10), mock.Anything, int64(0)).Return(conflict, nil)

	service := newTestService(store, rooms, new(MockPublisher))

	_, err := service.Create(context.Background(), BookingRequest{
		RoomID:      10,
		BookingDate: "2026-09-10",
		StartTime:   "10:00",
		EndTime:     "11:00",
	}, 7)

	assert.ErrorIs(t, err, ErrNotAvailable)

	var ce *ConflictError
	assert.ErrorAs(t, err, &ce)
	assert.Equal(t, int64(44), ce.Conflict.ID)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestService_Create_StoreLevelConflict(t *testing.T) {
	store := new(MockBookingStore)
	rooms := new(MockRoomStore)

	// Pre-check passes, the locked re-check inside the store loses the race.
	rooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(10), nil)
	store.On("FindOverlap", mock.Anything, int64(10), mock.Anything, int64(0)).Return(nil, nil)
	store.On("Insert", mock.Anything, mock.Anything).
		Return(&domain.Conflict{Kind: domain.ConflictBooking, ID: 5}, nil)

	service := newTestService(store, rooms, new(MockPublisher))

	_, err := service.Create(context.Background(), BookingRequest{
		RoomID:      10,
		BookingDate: "2026-09-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}, 7)

	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestService_Create_RoomMissing(t *testing.T) {
	store := new(MockBookingStore)
	rooms := new(MockRoomStore)

	rooms.On("GetByID", mock.Anything, int64(10)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(store, rooms, new(MockPublisher))

	_, err := service.Create(context.Background(), BookingRequest{
		RoomID:      10,
		BookingDate: "2026-09-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}, 7)

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestService_Create_NotifyFailureSwallowed(t *testing.T) {
	store := new(MockBookingStore)
	rooms := new(MockRoomStore)
	notifs := new(MockPublisher)

	rooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(10), nil)
	store.On("FindOverlap", mock.Anything, int64(10), mock.Anything, int64(0)).Return(nil, nil)
	store.On("Insert", mock.Anything, mock.Anything).Return(nil, nil)
	notifs.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	service := newTestService(store, rooms, notifs)

	resp, err := service.Create(context.Background(), BookingRequest{
		RoomID:      10,
		BookingDate: "2026-09-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}, 7)

	assert.NoError(t, err, "publish failure must not surface to the requester")
	assert.NotNil(t, resp)
}

func TestService_Update_SameSlotSucceeds(t *testing.T) {
	store := new(MockBookingStore)
	rooms := new(MockRoomStore)
	notifs := new(MockPublisher)

	existing := &domain.Booking{
		ID:          123,
		RoomID:      10,
		EmployeeID:  7,
		Date:        time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartMinute: 9 * 60,
		EndMinute:   10 * 60,
	}

	store.On("GetByID", mock.Anything, int64(123)).Return(existing, nil)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(10), nil)
	// The booking is excluded from its own conflict check.
	store.On("FindOverlap", mock.Anything, int64(10), mock.Anything, int64(123)).Return(nil, nil)
	store.On("Update", mock.Anything, mock.Anything).Return(nil, nil)
	notifs.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := newTestService(store, rooms, notifs)

	resp, err := service.Update(context.Background(), 123, BookingRequest{
		RoomID:      10,
		BookingDate: "2026-09-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}, 7, domain.RoleEmployee)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestService_Update_NotFound(t *testing.T) {
	store := new(MockBookingStore)

	store.On("GetByID", mock.Anything, int64(123)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(store, new(MockRoomStore), new(MockPublisher))

	_, err := service.Update(context.Background(), 123, BookingRequest{
		RoomID:      10,
		BookingDate: "2026-09-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}, 7, domain.RoleEmployee)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update_Forbidden(t *testing.T) {
	store := new(MockBookingStore)

	store.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:         123,
		RoomID:     10,
		EmployeeID: 42,
	}, nil)

	service := newTestService(store, new(MockRoomStore), new(MockPublisher))

	_, err := service.Update(context.Background(), 123, BookingRequest{
		RoomID:      10,
		BookingDate: "2026-09-10",
		StartTime:   "09:00",
		EndTime:     "10:00",
	}, 7, domain.RoleEmployee)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Delete_Success(t *testing.T) {
	store := new(MockBookingStore)
	notifs := new(MockPublisher)

	store.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:         123,
		RoomID:     10,
		EmployeeID: 7,
	}, nil)
	store.On("Delete", mock.Anything, int64(123)).Return(true, nil)
	notifs.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := newTestService(store, new(MockRoomStore), notifs)

	err := service.Delete(context.Background(), 123, 7, domain.RoleEmployee)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestService_Delete_NotFound(t *testing.T) {
	store := new(MockBookingStore)

	store.On("GetByID", mock.Anything, int64(123)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(store, new(MockRoomStore), new(MockPublisher))

	err := service.Delete(context.Background(), 123, 7, domain.RoleEmployee)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListUpcoming(t *testing.T) {
	store := new(MockBookingStore)
	rooms := new(MockRoomStore)

	day1 := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	upcoming := []domain.Booking{
		{ID: 1, RoomID: 10, EmployeeID: 7, Date: day1, StartMinute: 9 * 60, EndMinute: 10 * 60},
		{ID: 2, RoomID: 10, EmployeeID: 7, Date: day1, StartMinute: 14 * 60, EndMinute: 15 * 60},
		{ID: 3, RoomID: 11, EmployeeID: 7, Date: day2, StartMinute: 9 * 60, EndMinute: 10 * 60},
	}

	store.On("FindUpcoming", mock.Anything, int64(7), testClock()).Return(upcoming, nil)
	rooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(10), nil)
	rooms.On("GetByID", mock.Anything, int64(11)).Return(&domain.Room{ID: 11, Name: "Borealis", IsActive: true}, nil)

	service := newTestService(store, rooms, new(MockPublisher))

	list, err := service.ListUpcomingForEmployee(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "Aurora", list[0].RoomName)
	assert.Equal(t, "Borealis", list[2].RoomName)
	// Room lookups are cached per room.
	rooms.AssertNumberOfCalls(t, "GetByID", 2)
}

func mustIv(t *testing.T, date, start, end string) domain.Interval {
	t.Helper()
	d, err := domain.ParseDate(date)
	assert.NoError(t, err)
	s, err := domain.ParseClockMinute(start)
	assert.NoError(t, err)
	e, err := domain.ParseClockMinute(end)
	assert.NoError(t, err)
	return domain.NewInterval(d, s, e)
}
