package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/avdeyev/classpack/internal/client/storage"
	"github.com/avdeyev/classpack/internal/models"
)

// SaveSnapshot persists the snapshot for the entity type, replacing any
// previous one.
func (s *Storage) SaveSnapshot(ctx context.Context, entityType models.EntityType, snap *models.Snapshot) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return fmt.Errorf("snapshots bucket missing")
		}

		if err := bucket.Put([]byte(entityType), data); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("snapshot transaction failed: %w", err)
	}

	return nil
}

// GetSnapshot returns the persisted snapshot for the entity type.
// A type that has never been synced gets a fresh empty snapshot.
func (s *Storage) GetSnapshot(ctx context.Context, entityType models.EntityType) (*models.Snapshot, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	snap := models.NewSnapshot()

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return nil
		}

		data := bucket.Get([]byte(entityType))
		if data == nil {
			return nil
		}

		if err := json.Unmarshal(data, snap); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	// Sets may be nil after unmarshal of an old blob
	if snap.KnownRemoteIDs == nil {
		snap.KnownRemoteIDs = make(map[string]struct{})
	}
	if snap.DeletedIDs == nil {
		snap.DeletedIDs = make(map[string]struct{})
	}

	return snap, nil
}
