package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/avdeyev/classpack/internal/client/storage"
	"github.com/avdeyev/classpack/internal/models"
)

// queueKey is the single key the whole pending queue is stored under.
// Persisting the queue as one ordered blob keeps FIFO order trivially intact
// across reloads.
var queueKey = []byte("pending")

// SaveQueue persists the ordered pending operations.
func (s *Storage) SaveQueue(ctx context.Context, ops []*models.Operation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to marshal queue: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return fmt.Errorf("queue bucket missing")
		}

		if err := bucket.Put(queueKey, data); err != nil {
			return fmt.Errorf("failed to save queue: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("queue transaction failed: %w", err)
	}

	return nil
}

// LoadQueue returns the persisted pending operations in FIFO order.
func (s *Storage) LoadQueue(ctx context.Context) ([]*models.Operation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	ops := []*models.Operation{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}

		data := bucket.Get(queueKey)
		if data == nil {
			return nil
		}

		if err := json.Unmarshal(data, &ops); err != nil {
			return fmt.Errorf("failed to unmarshal queue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}

	return ops, nil
}
