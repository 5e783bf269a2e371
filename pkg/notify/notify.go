package notify

import (
	"context"
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

// Event identifies the lifecycle moment a notification is about
type Event string

const (
	EventCandidatureSubmitted Event = "CANDIDATURE_SUBMITTED"
	EventCandidatureAccepted  Event = "CANDIDATURE_ACCEPTED"
	EventCandidatureRefused   Event = "CANDIDATURE_REFUSED"
	EventStageStarted         Event = "STAGE_STARTED"
	EventStageCompleted       Event = "STAGE_COMPLETED"
	EventMissionAssigned      Event = "MISSION_ASSIGNED"
	EventMissionInReview      Event = "MISSION_IN_REVIEW"
	EventEvaluationValidated  Event = "EVALUATION_VALIDATED"
	EventCertificateIssued    Event = "CERTIFICATE_ISSUED"
)

// Notification is the queued payload delivered to recipients
type Notification struct {
	ID          string         `json:"id"`
	Event       Event          `json:"event"`
	RecipientID kernel.UserID  `json:"recipient_id"`
	Subject     string         `json:"subject"`
	Body        string         `json:"body"`
	Data        map[string]any `json:"data,omitempty"`
	Attempts    int            `json:"attempts"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Queue is the transport port for pending notifications
type Queue interface {
	Enqueue(ctx context.Context, n *Notification) error
	EnqueueDelayed(ctx context.Context, n *Notification, delay time.Duration) error
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)
	MoveDelayedToReady(ctx context.Context) (int, error)
	Size(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// Notifier is the producer-side port used by domain services.
// Implementations must not block the calling request path.
type Notifier interface {
	Notify(ctx context.Context, n *Notification) error
}

// Sender delivers a dequeued notification to its recipient
type Sender interface {
	Send(ctx context.Context, n *Notification) error
}
