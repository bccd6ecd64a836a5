package notification

import (
	"context"
	"log"
	"time"

	"bookwise/internal/domain"
)

const maxDeliveryAttempts = 5

type workerOutboxRepo interface {
	FetchPending(ctx context.Context, limit int) ([]domain.NotificationOutbox, error)
	MarkSent(ctx context.Context, id int64, at time.Time) error
	MarkAttemptFailed(ctx context.Context, id int64, lastError string, maxAttempts int) error
}

type publisher interface {
	PublishRaw(ctx context.Context, routingKey string, body []byte) error
}

// Worker drains the outbox and publishes each task to the message broker.
// Delivery is decoupled from request latency; failed tasks are retried with
// backoff until maxDeliveryAttempts.
type Worker struct {
	outbox    workerOutboxRepo
	publisher publisher
	batchSize int
	interval  time.Duration
}

func NewWorker(outbox workerOutboxRepo, publisher publisher, batchSize int, interval time.Duration) *Worker {
	if batchSize <= 0 {
		batchSize = 50
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Worker{outbox: outbox, publisher: publisher, batchSize: batchSize, interval: interval}
}

// Run polls until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Drain(ctx); err != nil {
				log.Printf("level=error msg=outbox drain failed err=%v", err)
			}
		}
	}
}

// Drain delivers one batch of pending tasks.
func (w *Worker) Drain(ctx context.Context) error {
	tasks, err := w.outbox.FetchPending(ctx, w.batchSize)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if err := w.publisher.PublishRaw(ctx, task.RoutingKey, []byte(task.Payload)); err != nil {
			log.Printf("level=error msg=notification publish failed task_id=%s routing_key=%s attempts=%d err=%v",
				task.TaskID, task.RoutingKey, task.Attempts+1, err)
			if merr := w.outbox.MarkAttemptFailed(ctx, task.ID, err.Error(), maxDeliveryAttempts); merr != nil {
				log.Printf("level=error msg=outbox mark attempt failed task_id=%s err=%v", task.TaskID, merr)
			}
			continue
		}
		if err := w.outbox.MarkSent(ctx, task.ID, time.Now().UTC()); err != nil {
			log.Printf("level=error msg=outbox mark sent failed task_id=%s err=%v", task.TaskID, err)
		}
	}
	return nil
}
