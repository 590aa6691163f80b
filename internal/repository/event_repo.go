package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"officecal/internal/domain"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	EmployeeID  int64     `gorm:"column:employee_id"`
	Title       string    `gorm:"column:title"`
	Description *string   `gorm:"column:description"`
	Date        time.Time `gorm:"column:date"`
	StartMinute int       `gorm:"column:start_minute"`
	EndMinute   int       `gorm:"column:end_minute"`
	RoomID      *int64    `gorm:"column:room_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (eventModel) TableName() string { return "events" }

func toDomainEvent(m eventModel) *domain.Event {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}

	return &domain.Event{
		ID:          m.ID,
		EmployeeID:  m.EmployeeID,
		Title:       m.Title,
		Description: desc,
		Date:        domain.DateOf(m.Date),
		StartMinute: domain.ClockMinute(m.StartMinute),
		EndMinute:   domain.ClockMinute(m.EndMinute),
		RoomID:      m.RoomID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toEventModel(e *domain.Event) eventModel {
	var desc *string
	if e.Description != "" {
		v := e.Description
		desc = &v
	}

	return eventModel{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		Title:       e.Title,
		Description: desc,
		Date:        domain.DateOf(e.Date),
		StartMinute: int(e.StartMinute),
		EndMinute:   int(e.EndMinute),
		RoomID:      e.RoomID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// Insert admits a calendar event. Room-holding events run through the
// same locked re-check as bookings; roomless events write directly.
func (r *EventRepository) Insert(ctx context.Context, e *domain.Event) (*domain.Conflict, error) {
	var conflict *domain.Conflict
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e.RoomID != nil {
			if err := lockRoom(tx, *e.RoomID); err != nil {
				return err
			}
			c, err := r.findOverlapTx(tx, *e.RoomID, e.Interval(), 0)
			if err != nil {
				return err
			}
			if c != nil {
				conflict = c
				return errOverlapFound
			}
		}

		m := toEventModel(e)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*e = *toDomainEvent(m)
		return nil
	})

	if errors.Is(err, errOverlapFound) {
		return conflict, nil
	}
	return nil, err
}

// Update replaces the event; returns gorm.ErrRecordNotFound when missing.
func (r *EventRepository) Update(ctx context.Context, e *domain.Event) (*domain.Conflict, error) {
	var conflict *domain.Conflict
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing eventModel
		if err := tx.First(&existing, e.ID).Error; err != nil {
			return err
		}

		if e.RoomID != nil {
			if err := lockRoom(tx, *e.RoomID); err != nil {
				return err
			}
			c, err := r.findOverlapTx(tx, *e.RoomID, e.Interval(), e.ID)
			if err != nil {
				return err
			}
			if c != nil {
				conflict = c
				return errOverlapFound
			}
		}

		m := toEventModel(e)
		m.CreatedAt = existing.CreatedAt
		m.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		*e = *toDomainEvent(m)
		return nil
	})

	if errors.Is(err, errOverlapFound) {
		return conflict, nil
	}
	return nil, err
}

func (r *EventRepository) findOverlapTx(tx *gorm.DB, roomID int64, iv domain.Interval, excludeEventID int64) (*domain.Conflict, error) {
	c, err := findBookingOverlap(tx, roomID, iv, 0)
	if err != nil || c != nil {
		return c, err
	}
	return findEventOverlap(tx, roomID, iv, excludeEventID)
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var m eventModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainEvent(m), nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&eventModel{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListRange returns events with from <= date < to, ascending.
func (r *EventRepository) ListRange(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	var rows []eventModel
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", domain.DateOf(from), domain.DateOf(to)).
		Order("date ASC, start_minute ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Event, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainEvent(m))
	}
	return out, nil
}
