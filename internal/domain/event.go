package domain

import "time"

// Event is a calendar entry. When RoomID is set the event occupies the
// room and competes with bookings in the same conflict domain.
type Event struct {
	ID          int64       `json:"id"`
	EmployeeID  int64       `json:"employee_id" validate:"required"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	Date        time.Time   `json:"date" validate:"required"`
	StartMinute ClockMinute `json:"start_minute"`
	EndMinute   ClockMinute `json:"end_minute"`
	RoomID      *int64      `json:"room_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (e *Event) Interval() Interval {
	return Interval{Date: DateOf(e.Date), Start: e.StartMinute, End: e.EndMinute}
}
