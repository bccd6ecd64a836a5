package repository

import (
	"context"
	"time"

	"bookwise/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, task *domain.NotificationOutbox) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FetchPending reads up to limit pending tasks. SKIP LOCKED keeps concurrent
// workers from scanning the same batch, but the lock ends with the read
// transaction, so a task can still be delivered more than once; consumers
// must treat routing keys as at-least-once.
func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]domain.NotificationOutbox, error) {
	var tasks []domain.NotificationOutbox
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ?", domain.OutboxPending).
			Order("id").
			Limit(limit).
			Find(&tasks).Error
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.NotificationOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  domain.OutboxSent,
			"sent_at": at,
		}).Error
}

// MarkAttemptFailed bumps the attempt counter; after maxAttempts the task is
// parked as failed instead of being retried forever.
func (r *OutboxRepository) MarkAttemptFailed(ctx context.Context, id int64, lastError string, maxAttempts int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task domain.NotificationOutbox
		if err := tx.First(&task, id).Error; err != nil {
			return err
		}
		task.Attempts++
		task.LastError = lastError
		if task.Attempts >= maxAttempts {
			task.Status = domain.OutboxFailed
		}
		return tx.Save(&task).Error
	})
}
