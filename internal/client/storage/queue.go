package storage

import (
	"context"

	"github.com/avdeyev/classpack/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines the durable store for the pending-operations queue.
// The whole queue is persisted as one ordered blob so a page-reload (or a
// second tab) always sees the latest drained state. Callers must reload
// before trusting in-memory state: another process may have drained items.
type QueueStorage interface {
	// SaveQueue persists the ordered pending operations, replacing the
	// previous contents.
	SaveQueue(ctx context.Context, ops []*models.Operation) error

	// LoadQueue returns the persisted pending operations in FIFO order.
	// Returns an empty slice if nothing is queued.
	LoadQueue(ctx context.Context) ([]*models.Operation, error)
}
