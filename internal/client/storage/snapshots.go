package storage

import (
	"context"

	"github.com/avdeyev/classpack/internal/models"
)

//go:generate moq -out snapshots_mock.go . SnapshotStorage

// SnapshotStorage defines the durable local store for per-entity-type
// snapshots: the entity list, the known-remote-ids set and the deleted-ids
// set are persisted together as one blob per entity type.
type SnapshotStorage interface {
	// SaveSnapshot persists the snapshot for the entity type, replacing any
	// previous one.
	SaveSnapshot(ctx context.Context, entityType models.EntityType, snap *models.Snapshot) error

	// GetSnapshot returns the persisted snapshot for the entity type.
	// Returns an empty snapshot (never nil) if none has been saved yet.
	GetSnapshot(ctx context.Context, entityType models.EntityType) (*models.Snapshot, error)
}
