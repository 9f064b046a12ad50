package storage

import (
	"context"

	"github.com/avdeyev/classpack/pkg/api"
)

// RowStorage defines the persistence interface for content rows. Every
// operation is scoped to one owner: a row is addressed by (owner, id) and a
// caller can never touch another owner's rows.
type RowStorage interface {
	// ListRows returns all rows of one item type for the owner.
	ListRows(ctx context.Context, ownerID, itemType string) ([]api.Row, error)

	// InsertRow creates a row.
	// Returns ErrRowAlreadyExists if (owner, id) is already present.
	InsertRow(ctx context.Context, row api.Row) error

	// UpdateRow updates the row matching (owner, id) and returns how many
	// rows matched. Zero matched is not an error; the caller falls back to
	// an insert.
	UpdateRow(ctx context.Context, row api.Row) (int64, error)

	// DeleteRow deletes the row matching (owner, id) and returns how many
	// rows were deleted. Zero deleted is not an error.
	DeleteRow(ctx context.Context, ownerID, itemType, id string) (int64, error)
}
