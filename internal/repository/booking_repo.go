package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"officecal/internal/domain"
)

// errOverlapFound aborts an admission transaction without writing. It
// never escapes the repository; callers see the conflict value instead.
var errOverlapFound = errors.New("overlap found")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	RoomID        int64     `gorm:"column:room_id"`
	EmployeeID    int64     `gorm:"column:employee_id"`
	Date          time.Time `gorm:"column:date"`
	StartMinute   int       `gorm:"column:start_minute"`
	EndMinute     int       `gorm:"column:end_minute"`
	Purpose       *string   `gorm:"column:purpose"`
	LinkedEventID *int64    `gorm:"column:linked_event_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var purpose string
	if m.Purpose != nil {
		purpose = *m.Purpose
	}

	return &domain.Booking{
		ID:            m.ID,
		RoomID:        m.RoomID,
		EmployeeID:    m.EmployeeID,
		Date:          domain.DateOf(m.Date),
		StartMinute:   domain.ClockMinute(m.StartMinute),
		EndMinute:     domain.ClockMinute(m.EndMinute),
		Purpose:       purpose,
		LinkedEventID: m.LinkedEventID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var purpose *string
	if b.Purpose != "" {
		v := b.Purpose
		purpose = &v
	}

	return bookingModel{
		ID:            b.ID,
		RoomID:        b.RoomID,
		EmployeeID:    b.EmployeeID,
		Date:          domain.DateOf(b.Date),
		StartMinute:   int(b.StartMinute),
		EndMinute:     int(b.EndMinute),
		Purpose:       purpose,
		LinkedEventID: b.LinkedEventID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// Insert admits a new booking. The overlap re-check and the write run in
// one transaction holding the room row lock, so a concurrent admission
// for the same room observes either the lock or the committed row. A
// non-nil conflict means the booking was rejected, nothing was written.
func (r *BookingRepository) Insert(ctx context.Context, b *domain.Booking) (*domain.Conflict, error) {
	var conflict *domain.Conflict
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, b.RoomID); err != nil {
			return err
		}

		c, err := r.findOverlapTx(tx, b.RoomID, b.Interval(), 0)
		if err != nil {
			return err
		}
		if c != nil {
			conflict = c
			return errOverlapFound
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})

	return r.mapAdmissionErr(ctx, b, conflict, err)
}

// Update replaces the booking's room, interval and purpose after
// re-validating against the conflict domain, excluding the booking
// itself. Returns gorm.ErrRecordNotFound when the booking is gone.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) (*domain.Conflict, error) {
	var conflict *domain.Conflict
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoom(tx, b.RoomID); err != nil {
			return err
		}

		var existing bookingModel
		if err := tx.First(&existing, b.ID).Error; err != nil {
			return err
		}

		c, err := r.findOverlapTx(tx, b.RoomID, b.Interval(), b.ID)
		if err != nil {
			return err
		}
		if c != nil {
			conflict = c
			return errOverlapFound
		}

		res := tx.Model(&bookingModel{}).Where("id = ?", b.ID).Updates(map[string]any{
			"room_id":         b.RoomID,
			"date":            domain.DateOf(b.Date),
			"start_minute":    int(b.StartMinute),
			"end_minute":      int(b.EndMinute),
			"purpose":         b.Purpose,
			"linked_event_id": b.LinkedEventID,
			"updated_at":      time.Now().UTC(),
		})
		if res.Error != nil {
			return res.Error
		}

		var m bookingModel
		if err := tx.First(&m, b.ID).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})

	return r.mapAdmissionErr(ctx, b, conflict, err)
}

func (r *BookingRepository) mapAdmissionErr(ctx context.Context, b *domain.Booking, conflict *domain.Conflict, err error) (*domain.Conflict, error) {
	if err == nil {
		return nil, nil
	}
	if errors.Is(err, errOverlapFound) {
		return conflict, nil
	}

	// The Postgres exclusion constraint is the backstop for admissions
	// racing on different connections. Report it as a conflict, with the
	// winning row attached when it is visible by now.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		(pgErr.Code == "23P01" || pgErr.Code == "23505") &&
		pgErr.ConstraintName == "bookings_no_overlap" {
		if c, qerr := r.FindOverlap(ctx, b.RoomID, b.Interval(), b.ID); qerr == nil && c != nil {
			return c, nil
		}
		return &domain.Conflict{Kind: domain.ConflictBooking, Interval: b.Interval()}, nil
	}

	return nil, err
}

func (r *BookingRepository) findOverlapTx(tx *gorm.DB, roomID int64, iv domain.Interval, excludeBookingID int64) (*domain.Conflict, error) {
	c, err := findBookingOverlap(tx, roomID, iv, excludeBookingID)
	if err != nil || c != nil {
		return c, err
	}
	return findEventOverlap(tx, roomID, iv, 0)
}

// FindOverlap is the read-only conflict probe: bookings first, then
// room-holding events, any single overlapping entry qualifies.
func (r *BookingRepository) FindOverlap(ctx context.Context, roomID int64, iv domain.Interval, excludeBookingID int64) (*domain.Conflict, error) {
	return r.findOverlapTx(r.db.WithContext(ctx), roomID, iv, excludeBookingID)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindUpcoming lists an employee's bookings that have not ended yet,
// ascending by (date, start).
func (r *BookingRepository) FindUpcoming(ctx context.Context, employeeID int64, now time.Time) ([]domain.Booking, error) {
	today := domain.DateOf(now)
	nowMinute := int(domain.MinuteOf(now))

	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date > ? OR (date = ? AND end_minute > ?)", today, today, nowMinute).
		Order("date ASC, start_minute ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListForRoomDate returns the day's bookings for a room, ordered by start.
func (r *BookingRepository) ListForRoomDate(ctx context.Context, roomID int64, date time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND date = ?", roomID, domain.DateOf(date)).
		Order("start_minute ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
