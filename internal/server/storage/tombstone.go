package storage

import (
	"context"

	"github.com/avdeyev/classpack/pkg/api"
)

// TombstoneStorage defines the persistence interface for deletion records.
// One row per (owner, item type, item id) with upsert-on-conflict semantics,
// so repeated deletes of the same item are idempotent.
type TombstoneStorage interface {
	// UpsertTombstone records a deletion, replacing any existing record for
	// the same (owner, item type, item id).
	UpsertTombstone(ctx context.Context, ts api.Tombstone) error

	// ListTombstones returns every tombstone for the owner.
	ListTombstones(ctx context.Context, ownerID string) ([]api.Tombstone, error)

	// DeleteTombstone removes the record for (owner, item type, item id) and
	// returns how many rows were deleted. Zero is not an error.
	DeleteTombstone(ctx context.Context, ownerID, itemType, itemID string) (int64, error)
}
