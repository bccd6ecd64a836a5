package domain

import "time"

// WorkingWindow is one open interval within a weekday, "15:04" wall-clock.
type WorkingWindow struct {
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

// WorkingHoursConfig holds one weekday's schedule for a business (or a
// specific employee when EmployeeID is set).
type WorkingHoursConfig struct {
	ID         int64           `gorm:"primaryKey" json:"id"`
	BusinessID int64           `gorm:"index;not null" json:"business_id"`
	EmployeeID *int64          `gorm:"index" json:"employee_id,omitempty"`
	DayOfWeek  int             `gorm:"not null" json:"day_of_week"` // 0=Sunday per time.Weekday
	Enabled    bool            `gorm:"default:true" json:"enabled"`
	Windows    []WorkingWindow `gorm:"serializer:json;type:text" json:"windows"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (WorkingHoursConfig) TableName() string { return "working_hours_configs" }

// DefaultWorkingHours is the Mon-Sat 09:00-21:00 fallback used when a
// business never configured a schedule.
func DefaultWorkingHours(businessID int64) []WorkingHoursConfig {
	out := make([]WorkingHoursConfig, 0, 7)
	for d := 0; d < 7; d++ {
		cfg := WorkingHoursConfig{
			BusinessID: businessID,
			DayOfWeek:  d,
			Enabled:    d != int(time.Sunday),
			Windows:    []WorkingWindow{{OpenTime: "09:00", CloseTime: "21:00"}},
		}
		if !cfg.Enabled {
			cfg.Windows = nil
		}
		out = append(out, cfg)
	}
	return out
}
