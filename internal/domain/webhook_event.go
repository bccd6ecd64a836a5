package domain

import "time"

// WebhookEvent is the idempotency ledger for payment provider deliveries.
// A row is created on first sight of an event id; processed flips to true
// only after the side effects have been applied.
type WebhookEvent struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	EventID     string     `gorm:"uniqueIndex;type:varchar(64);not null" json:"event_id"`
	Type        string     `gorm:"type:varchar(64);not null" json:"type"`
	Processed   bool       `gorm:"default:false;index" json:"processed"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (WebhookEvent) TableName() string { return "webhook_events" }
