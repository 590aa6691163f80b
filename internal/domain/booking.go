package domain

import "time"

type Booking struct {
	ID            int64       `json:"id"`
	RoomID        int64       `json:"room_id" validate:"required"`
	EmployeeID    int64       `json:"employee_id" validate:"required"`
	Date          time.Time   `json:"date" validate:"required"`
	StartMinute   ClockMinute `json:"start_minute"`
	EndMinute     ClockMinute `json:"end_minute"`
	Purpose       string      `json:"purpose,omitempty" gorm:"type:text"`
	LinkedEventID *int64      `json:"linked_event_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	Room     *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

func (b *Booking) Interval() Interval {
	return Interval{Date: DateOf(b.Date), Start: b.StartMinute, End: b.EndMinute}
}

type ConflictKind string

const (
	ConflictBooking ConflictKind = "booking"
	ConflictEvent   ConflictKind = "event"
)

// Conflict identifies the stored entry an admission collided with. The
// window and label are informational; rejection only needs presence.
type Conflict struct {
	Kind     ConflictKind `json:"kind"`
	ID       int64        `json:"id"`
	Label    string       `json:"label,omitempty"`
	Interval Interval     `json:"-"`
}
