package domain

import "time"

type OutboxStatus string

const (
	OutboxPending OutboxStatus = "pending"
	OutboxSent    OutboxStatus = "sent"
	OutboxFailed  OutboxStatus = "failed"
)

// NotificationOutbox is a queued client notification. Rows are written after
// the primary transaction commits and delivered by the outbox worker, so a
// slow or failing notification channel can never roll back a booking.
type NotificationOutbox struct {
	ID         int64        `gorm:"primaryKey" json:"id"`
	TaskID     string       `gorm:"uniqueIndex;type:varchar(64);not null" json:"task_id"`
	RoutingKey string       `gorm:"type:varchar(64);not null" json:"routing_key"`
	Payload    string       `gorm:"type:text;not null" json:"payload"`
	Status     OutboxStatus `gorm:"type:varchar(16);default:'pending';index" json:"status"`
	Attempts   int          `gorm:"default:0" json:"attempts"`
	LastError  string       `gorm:"type:text" json:"last_error"`
	SentAt     *time.Time   `json:"sent_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (NotificationOutbox) TableName() string { return "notification_outbox" }
