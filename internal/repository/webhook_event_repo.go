package repository

import (
	"context"
	"time"

	"bookwise/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookEventRepository struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// EnsureRecorded inserts the event id on first sight; the unique index on
// event_id plus ON CONFLICT DO NOTHING makes concurrent deliveries of the
// same event race-free. Returns the ledger row as it now stands.
func (r *WebhookEventRepository) EnsureRecorded(ctx context.Context, eventID, eventType string) (*domain.WebhookEvent, error) {
	rec := domain.WebhookEvent{EventID: eventID, Type: eventType}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&rec).Error; err != nil {
		return nil, err
	}

	var out domain.WebhookEvent
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkProcessed flips the ledger entry after all side effects are durably
// applied. Rows-affected gate: only the first caller observes true.
func (r *WebhookEventRepository) MarkProcessed(ctx context.Context, eventID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.WebhookEvent{}).
		Where("event_id = ? AND processed = ?", eventID, false).
		Updates(map[string]interface{}{
			"processed":    true,
			"processed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
