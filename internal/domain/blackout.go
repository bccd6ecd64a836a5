package domain

import "time"

// Holiday is a business-wide blackout period. No bookings may be placed
// inside [StartDate, EndDate).
type Holiday struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	BusinessID int64     `gorm:"index;not null" json:"business_id"`
	StartDate  time.Time `gorm:"not null" json:"start_date"`
	EndDate    time.Time `gorm:"not null" json:"end_date"`
	Reason     string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Holiday) TableName() string { return "holidays" }

// EmployeeHoliday is a resource-scoped blackout period.
type EmployeeHoliday struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	BusinessID int64     `gorm:"index;not null" json:"business_id"`
	EmployeeID int64     `gorm:"index;not null" json:"employee_id"`
	StartDate  time.Time `gorm:"not null" json:"start_date"`
	EndDate    time.Time `gorm:"not null" json:"end_date"`
	Reason     string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (EmployeeHoliday) TableName() string { return "employee_holidays" }

// BlackoutPeriod is the flattened view both holiday kinds reduce to when
// checking a proposed booking interval.
type BlackoutPeriod struct {
	Start  time.Time
	End    time.Time
	Reason string
}

// Covers reports whether [start, end) intersects the blackout.
func (p BlackoutPeriod) Covers(start, end time.Time) bool {
	return start.Before(p.End) && end.After(p.Start)
}
