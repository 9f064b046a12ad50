package syncqueue

import "github.com/avdeyev/classpack/internal/models"

// EventKind classifies queue notifications.
type EventKind string

const (
	// EventQueueChanged fires whenever the number of pending operations
	// changes (enqueue, successful send, drop).
	EventQueueChanged EventKind = "queue_changed"

	// EventOperationDropped fires exactly once when an operation exhausts
	// its retries and is abandoned. The item's latest state may now exist
	// only locally; the UI layer should surface it.
	EventOperationDropped EventKind = "operation_dropped"
)

// Event is a queue notification delivered to subscribers.
type Event struct {
	Operation *models.Operation // set for EventOperationDropped
	Kind      EventKind
	LastError string // last failure message, set for EventOperationDropped
	QueueLen  int
}
