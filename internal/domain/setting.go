package domain

import "time"

// Setting is a per-employee preference entry (locale, reminder lead,
// notification opt-outs). Keys are unique per employee.
type Setting struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id" gorm:"uniqueIndex:idx_settings_employee_key"`
	Key        string    `json:"key" validate:"required" gorm:"uniqueIndex:idx_settings_employee_key"`
	Value      string    `json:"value" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
