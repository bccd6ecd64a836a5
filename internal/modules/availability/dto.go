package availability

import "time"

type SlotStatus string

const (
	SlotPast      SlotStatus = "past"
	SlotTooSoon   SlotStatus = "too_soon"
	SlotBlocked   SlotStatus = "blocked"
	SlotBooked    SlotStatus = "booked"
	SlotAvailable SlotStatus = "available"
)

type Slot struct {
	Start  time.Time  `json:"start"`
	Status SlotStatus `json:"status"`
}

type DaySlotsRequest struct {
	BusinessID      int64
	ResourceKind    string
	ResourceID      *int64
	Date            string // YYYY-MM-DD
	DurationMinutes int
}

type DaySlotsResponse struct {
	BusinessID int64  `json:"business_id"`
	ResourceID *int64 `json:"resource_id,omitempty"`
	Date       string `json:"date"`
	Slots      []Slot `json:"slots"`
}
