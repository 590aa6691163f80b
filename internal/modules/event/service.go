package event

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"officecal/internal/domain"
	"officecal/internal/modules/realtime"
)

const EventEventChanged = "EventChanged"

// RoomBusyError carries the entry occupying the requested room window.
type RoomBusyError struct {
	Conflict *domain.Conflict
}

func (e *RoomBusyError) Error() string {
	if e.Conflict == nil {
		return ErrRoomBusy.Error()
	}
	return fmt.Sprintf("room not available: %s %d occupies %s-%s",
		e.Conflict.Kind, e.Conflict.ID, e.Conflict.Interval.Start, e.Conflict.Interval.End)
}

func (e *RoomBusyError) Unwrap() error { return ErrRoomBusy }

type Service struct {
	events EventStore
	rooms  RoomStore
	notifs Publisher
	now    func() time.Time
}

func NewService(events EventStore, rooms RoomStore, notifs Publisher) *Service {
	return &Service{events: events, rooms: rooms, notifs: notifs, now: time.Now}
}

func (s *Service) parseInterval(req EventRequest, requireFuture bool) (domain.Interval, error) {
	date, err := domain.ParseDate(req.Date)
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
	if requireFuture && iv.Date.Before(domain.DateOf(s.now())) {
		return domain.Interval{}, ErrValidation
	}
	return iv, nil
}

// Create admits a calendar event. Room-holding events compete with
// bookings for the room and must be future-dated; roomless entries are
// plain calendar items and may backfill history.
func (s *Service) Create(ctx context.Context, req EventRequest, employeeID int64) (*domain.Event, error) {
	iv, err := s.parseInterval(req, req.RoomID != nil)
	if err != nil {
		return nil, err
	}

	if req.RoomID != nil {
		if err := s.checkRoom(ctx, *req.RoomID); err != nil {
			return nil, err
		}
	}

	e := &domain.Event{
		EmployeeID:  employeeID,
		Title:       req.Title,
		Description: req.Description,
		Date:        iv.Date,
		StartMinute: iv.Start,
		EndMinute:   iv.End,
		RoomID:      req.RoomID,
	}

	conflict, err := s.events.Insert(ctx, e)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, &RoomBusyError{Conflict: conflict}
	}

	s.publishChange(e)
	return e, nil
}

func (s *Service) Update(ctx context.Context, eventID int64, req EventRequest, employeeID int64, role domain.Role) (*domain.Event, error) {
	existing, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if role != domain.RoleAdmin && existing.EmployeeID != employeeID {
		return nil, ErrForbidden
	}

	iv, err := s.parseInterval(req, req.RoomID != nil)
	if err != nil {
		return nil, err
	}

	if req.RoomID != nil {
		if err := s.checkRoom(ctx, *req.RoomID); err != nil {
			return nil, err
		}
	}

	e := &domain.Event{
		ID:          eventID,
		EmployeeID:  existing.EmployeeID,
		Title:       req.Title,
		Description: req.Description,
		Date:        iv.Date,
		StartMinute: iv.Start,
		EndMinute:   iv.End,
		RoomID:      req.RoomID,
	}

	conflict, err := s.events.Update(ctx, e)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if conflict != nil {
		return nil, &RoomBusyError{Conflict: conflict}
	}

	s.publishChange(e)
	return e, nil
}

func (s *Service) Delete(ctx context.Context, eventID, employeeID int64, role domain.Role) error {
	existing, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if role != domain.RoleAdmin && existing.EmployeeID != employeeID {
		return ErrForbidden
	}

	ok, err := s.events.Delete(ctx, eventID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	s.publishChange(existing)
	return nil
}

func (s *Service) GetByID(ctx context.Context, eventID int64) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListRange returns events within [from, to), for the calendar grid.
func (s *Service) ListRange(ctx context.Context, fromStr, toStr string) ([]domain.Event, error) {
	from, err := domain.ParseDate(fromStr)
	if err != nil {
		return nil, ErrValidation
	}
	to, err := domain.ParseDate(toStr)
	if err != nil {
		return nil, ErrValidation
	}
	if !to.After(from) {
		return nil, ErrValidation
	}
	return s.events.ListRange(ctx, from, to)
}

func (s *Service) checkRoom(ctx context.Context, roomID int64) error {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	if !room.IsActive {
		return ErrRoomNotFound
	}
	return nil
}

func (s *Service) publishChange(e *domain.Event) {
	if s.notifs == nil {
		return
	}

	payload := map[string]any{
		"event_id":    e.ID,
		"employee_id": e.EmployeeID,
		"date":        e.Date.Format("2006-01-02"),
		"start_time":  e.StartMinute.String(),
		"end_time":    e.EndMinute.String(),
	}

	topics := []string{realtime.TopicCalendar, fmt.Sprintf("employee:%d", e.EmployeeID)}
	if e.RoomID != nil {
		topics = append(topics, fmt.Sprintf("room:%d", *e.RoomID))
	}
	for _, topic := range topics {
		if err := s.notifs.Publish(topic, EventEventChanged, payload); err != nil {
			log.Printf("notify_failed topic=%s event=%s err=%v", topic, EventEventChanged, err)
		}
	}
}
