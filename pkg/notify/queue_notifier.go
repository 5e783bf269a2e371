package notify

import (
	"context"
	"time"

	"github.com/adilnv/internlink/pkg/logx"
	"github.com/google/uuid"
)

// QueueNotifier pushes notifications onto a Queue for asynchronous delivery
type QueueNotifier struct {
	queue Queue
}

// NewQueueNotifier creates a notifier backed by the given queue
func NewQueueNotifier(queue Queue) *QueueNotifier {
	return &QueueNotifier{queue: queue}
}

// Notify stamps and enqueues the notification. Enqueue failures are
// logged and swallowed so domain operations never fail on notification
// transport problems.
func (n *QueueNotifier) Notify(ctx context.Context, notification *Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	if err := n.queue.Enqueue(ctx, notification); err != nil {
		logx.Errorf("Failed to enqueue notification %s (%s): %v", notification.ID, notification.Event, err)
	}
	return nil
}

// NoopNotifier discards notifications; used in tests and when the
// queue is not configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, n *Notification) error { return nil }
