package notification

import (
	"context"

	"bookwise/internal/domain"
)

type outboxRepo interface {
	Enqueue(ctx context.Context, task *domain.NotificationOutbox) error
}
