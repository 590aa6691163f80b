package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"officecal/internal/domain"
)

type overlapRow struct {
	ID          int64  `gorm:"column:id"`
	Label       string `gorm:"column:label"`
	StartMinute int    `gorm:"column:start_minute"`
	EndMinute   int    `gorm:"column:end_minute"`
}

// lockRoom takes a row lock on the room for the duration of the enclosing
// transaction, serializing admissions per room on Postgres. SQLite allows
// a single writer at a time, so the clause is skipped there (its parser
// rejects FOR UPDATE). Returns gorm.ErrRecordNotFound for unknown rooms.
func lockRoom(tx *gorm.DB, roomID int64) error {
	q := tx.Table("rooms").Select("id").Where("id = ?", roomID)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row struct{ ID int64 }
	return q.Take(&row).Error
}

// findBookingOverlap returns one booking on room+date whose half-open
// minute range intersects iv, skipping excludeID (0 skips nothing).
func findBookingOverlap(tx *gorm.DB, roomID int64, iv domain.Interval, excludeID int64) (*domain.Conflict, error) {
	var rows []overlapRow
	q := `
SELECT id, COALESCE(purpose, '') AS label, start_minute, end_minute
FROM bookings
WHERE room_id = ?
  AND date = ?
  AND id <> ?
  AND start_minute < ?
  AND end_minute > ?
ORDER BY start_minute
LIMIT 1
`
	res := tx.Raw(q, roomID, iv.Date, excludeID, int(iv.End), int(iv.Start)).Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toConflict(domain.ConflictBooking, rows[0], iv.Date), nil
}

// findEventOverlap returns one room-holding calendar event overlapping iv.
func findEventOverlap(tx *gorm.DB, roomID int64, iv domain.Interval, excludeID int64) (*domain.Conflict, error) {
	var rows []overlapRow
	q := `
SELECT id, title AS label, start_minute, end_minute
FROM events
WHERE room_id = ?
  AND date = ?
  AND id <> ?
  AND start_minute < ?
  AND end_minute > ?
ORDER BY start_minute
LIMIT 1
`
	res := tx.Raw(q, roomID, iv.Date, excludeID, int(iv.End), int(iv.Start)).Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return toConflict(domain.ConflictEvent, rows[0], iv.Date), nil
}

func toConflict(kind domain.ConflictKind, row overlapRow, date time.Time) *domain.Conflict {
	return &domain.Conflict{
		Kind:  kind,
		ID:    row.ID,
		Label: row.Label,
		Interval: domain.NewInterval(
			date,
			domain.ClockMinute(row.StartMinute),
			domain.ClockMinute(row.EndMinute),
		),
	}
}
