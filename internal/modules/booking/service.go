package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"officecal/internal/domain"
)

const EventBookingChanged = "BookingChanged"

func RoomTopic(roomID int64) string         { return fmt.Sprintf("room:%d", roomID) }
func EmployeeTopic(employeeID int64) string { return fmt.Sprintf("employee:%d", employeeID) }

type Service struct {
	bookings BookingStore
	rooms    RoomStore
	notifs   Publisher
	checker  *ConflictChecker
	now      func() time.Time
}

func NewService(bookings BookingStore, rooms RoomStore, notifs Publisher) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		notifs:   notifs,
		checker:  NewConflictChecker(bookings),
		now:      time.Now,
	}
}

func (s *Service) parseInterval(req BookingRequest) (domain.Interval, error) {
	date, err := domain.ParseDate(req.BookingDate)
	if err != nil {
		return domain.Interval{}, ErrValidation
	}
	start, err := domain.ParseClockMinute(req.StartTime)
	if err != nil {
		return domain.Interval{}, ErrValidation
	}
	end, err := domain.ParseClockMinute(req.EndTime)
	if err != nil {
		return domain.Interval{}, ErrValidation
	}

	iv := domain.NewInterval(date, start, end)
	if err := iv.Validate(); err != nil {
		return domain.Interval{}, ErrValidation
	}
	if iv.Date.Before(domain.DateOf(s.now())) {
		return domain.Interval{}, ErrValidation
	}
	return iv, nil
}

func (s *Service) resolveRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Create admits a new booking: validate the interval, probe the conflict
// domain, persist atomically, then broadcast the change.
func (s *Service) Create(ctx context.Context, req BookingRequest, employeeID int64) (*BookingResponse, error) {
	iv, err := s.parseInterval(req)
	if err != nil {
		return nil, err
	}

	room, err := s.resolveRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	// Early probe keeps the common reject cheap; the store repeats it
	// under the room lock before writing.
	if c, err := s.checker.FindConflict(ctx, req.RoomID, iv, 0); err != nil {
		return nil, err
	} else if c != nil {
		return nil, &ConflictError{Conflict: c}
	}

	b := &domain.Booking{
		RoomID:        req.RoomID,
		EmployeeID:    employeeID,
		Date:          iv.Date,
		StartMinute:   iv.Start,
		EndMinute:     iv.End,
		Purpose:       req.Purpose,
		LinkedEventID: req.LinkedEventID,
	}

	conflict, err := s.bookings.Insert(ctx, b)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, &ConflictError{Conflict: conflict}
	}

	s.publishChange(b, 0)
	return s.toResponse(b, room), nil
}

// Update replaces the booking's interval and purpose wholesale; partial
// time edits always re-run admission. The booking excludes itself from
// the conflict check so a no-op update succeeds.
func (s *Service) Update(ctx context.Context, bookingID int64, req BookingRequest, employeeID int64, role domain.Role) (*BookingResponse, error) {
	existing, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if role != domain.RoleAdmin && existing.EmployeeID != employeeID {
		return nil, ErrForbidden
	}

	iv, err := s.parseInterval(req)
	if err != nil {
		return nil, err
	}

	room, err := s.resolveRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	if c, err := s.checker.FindConflict(ctx, req.RoomID, iv, bookingID); err != nil {
		return nil, err
	} else if c != nil {
		return nil, &ConflictError{Conflict: c}
	}

	b := &domain.Booking{
		ID:            bookingID,
		RoomID:        req.RoomID,
		EmployeeID:    existing.EmployeeID,
		Date:          iv.Date,
		StartMinute:   iv.Start,
		EndMinute:     iv.End,
		Purpose:       req.Purpose,
		LinkedEventID: req.LinkedEventID,
	}

	conflict, err := s.bookings.Update(ctx, b)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if conflict != nil {
		return nil, &ConflictError{Conflict: conflict}
	}

	oldRoomID := int64(0)
	if existing.RoomID != b.RoomID {
		oldRoomID = existing.RoomID
	}
	s.publishChange(b, oldRoomID)
	return s.toResponse(b, room), nil
}

// Delete removes the booking outright. Deletion only shrinks the
// occupied set, so there is no conflict check.
func (s *Service) Delete(ctx context.Context, bookingID, employeeID int64, role domain.Role) error {
	existing, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if role != domain.RoleAdmin && existing.EmployeeID != employeeID {
		return ErrForbidden
	}

	ok, err := s.bookings.Delete(ctx, bookingID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	s.publishChange(existing, 0)
	return nil
}

func (s *Service) GetByID(ctx context.Context, bookingID int64) (*BookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(b, room), nil
}

// ListUpcomingForEmployee returns the employee's bookings whose end has
// not passed yet, ascending by (date, start).
func (s *Service) ListUpcomingForEmployee(ctx context.Context, employeeID int64) ([]BookingResponse, error) {
	rows, err := s.bookings.FindUpcoming(ctx, employeeID, s.now())
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, rows)
}

// ListForRoomDate returns one room's schedule for a day, for the
// calendar view.
func (s *Service) ListForRoomDate(ctx context.Context, roomID int64, dateStr string) ([]BookingResponse, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, ErrValidation
	}
	if _, err := s.resolveRoom(ctx, roomID); err != nil {
		return nil, err
	}

	rows, err := s.bookings.ListForRoomDate(ctx, roomID, date)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, rows)
}

func (s *Service) toResponse(b *domain.Booking, room *domain.Room) *BookingResponse {
	var roomName string
	if room != nil {
		roomName = room.Name
	}

	return &BookingResponse{
		ID:            b.ID,
		RoomID:        b.RoomID,
		RoomName:      roomName,
		EmployeeID:    b.EmployeeID,
		BookingDate:   b.Date.Format("2006-01-02"),
		StartTime:     b.StartMinute.String(),
		EndTime:       b.EndMinute.String(),
		Purpose:       b.Purpose,
		LinkedEventID: b.LinkedEventID,
	}
}

func (s *Service) toResponses(ctx context.Context, rows []domain.Booking) ([]BookingResponse, error) {
	names := make(map[int64]*domain.Room)
	out := make([]BookingResponse, 0, len(rows))
	for i := range rows {
		b := &rows[i]
		room, ok := names[b.RoomID]
		if !ok {
			var err error
			room, err = s.rooms.GetByID(ctx, b.RoomID)
			if err != nil {
				room = nil
			}
			names[b.RoomID] = room
		}
		out = append(out, *s.toResponse(b, room))
	}
	return out, nil
}

// publishChange is best effort: a committed booking is the source of
// truth, subscribers that miss the push resync on next load.
func (s *Service) publishChange(b *domain.Booking, oldRoomID int64) {
	if s.notifs == nil {
		return
	}

	payload := map[string]any{
		"booking_id":  b.ID,
		"room_id":     b.RoomID,
		"employee_id": b.EmployeeID,
		"date":        b.Date.Format("2006-01-02"),
		"start_time":  b.StartMinute.String(),
		"end_time":    b.EndMinute.String(),
	}

	topics := []string{RoomTopic(b.RoomID), EmployeeTopic(b.EmployeeID)}
	if oldRoomID != 0 {
		topics = append(topics, RoomTopic(oldRoomID))
	}
	for _, topic := range topics {
		if err := s.notifs.Publish(topic, EventBookingChanged, payload); err != nil {
			log.Printf("notify_failed topic=%s event=%s err=%v", topic, EventBookingChanged, err)
		}
	}
}
