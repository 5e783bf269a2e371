package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adilnv/internlink/pkg/logx"
	"github.com/adilnv/internlink/pkg/notify"
)

const maxAttempts = 3

type NotificationWorker struct {
	queue   notify.Queue
	sender  notify.Sender
	workers int
}

func NewNotificationWorker(queue notify.Queue, sender notify.Sender, workers int) *NotificationWorker {
	return &NotificationWorker{
		queue:   queue,
		sender:  sender,
		workers: workers,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d notification workers", w.workers)

	// Start delayed notification mover
	go w.moveDelayed(ctx)

	// Start worker pool
	for i := 0; i < w.workers; i++ {
		go w.deliver(ctx, i)
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, workerID int) {
	logx.Infof("Notification worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Notification worker %d stopping", workerID)
			return
		default:
			// Dequeue with 5 second timeout
			data, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Notification worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Queue timeout, nothing pending
			if len(data) == 0 {
				continue
			}

			var n notify.Notification
			if err := json.Unmarshal(data, &n); err != nil {
				logx.Errorf("Notification worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			if err := w.sender.Send(ctx, &n); err != nil {
				w.retry(ctx, &n, err)
				continue
			}

			logx.Infof("Notification worker %d delivered %s (%s)", workerID, n.ID, n.Event)
		}
	}
}

// retry reschedules a failed delivery with linear backoff until the
// attempt limit is reached.
func (w *NotificationWorker) retry(ctx context.Context, n *notify.Notification, cause error) {
	n.Attempts++
	if n.Attempts >= maxAttempts {
		logx.Errorf("Notification %s dropped after %d attempts: %v", n.ID, n.Attempts, cause)
		return
	}

	delay := time.Duration(n.Attempts) * 30 * time.Second
	if err := w.queue.EnqueueDelayed(ctx, n, delay); err != nil {
		logx.Errorf("Failed to reschedule notification %s: %v", n.ID, err)
		return
	}
	logx.Warnf("Notification %s delivery failed (attempt %d), retrying in %s: %v", n.ID, n.Attempts, delay, cause)
}

func (w *NotificationWorker) moveDelayed(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed notifications: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed notifications to ready queue", count)
			}
		}
	}
}

// LogSender writes deliveries to the application log. It stands in for
// an SMTP or push integration in local environments.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, n *notify.Notification) error {
	logx.Infof("notify %s -> %s: %s", n.Event, n.RecipientID.String(), n.Subject)
	return nil
}
