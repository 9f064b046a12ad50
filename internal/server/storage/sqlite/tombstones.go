package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/avdeyev/classpack/pkg/api"
)

// UpsertTombstone records a deletion, replacing any existing record for the
// same (owner, item type, item id). The replace keeps the newest client and
// timestamp, which is all the protocol needs: a tombstone either exists or
// it doesn't.
func (s *Storage) UpsertTombstone(ctx context.Context, ts api.Tombstone) error {
	query := `
		INSERT INTO tombstones (owner_id, item_type, item_id, client_id, deleted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (owner_id, item_type, item_id)
		DO UPDATE SET client_id = excluded.client_id, deleted_at = excluded.deleted_at
	`

	_, err := s.db.ExecContext(ctx, query,
		ts.OwnerID,
		ts.ItemType,
		ts.ItemID,
		ts.ClientID,
		ts.DeletedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert tombstone: %w", err)
	}
	return nil
}

// ListTombstones returns every tombstone for the owner.
func (s *Storage) ListTombstones(ctx context.Context, ownerID string) ([]api.Tombstone, error) {
	query := `
		SELECT owner_id, item_type, item_id, client_id, deleted_at
		FROM tombstones
		WHERE owner_id = ?
		ORDER BY deleted_at
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tombstones: %w", err)
	}
	defer rows.Close()

	var result []api.Tombstone
	for rows.Next() {
		var ts api.Tombstone
		var deletedAt int64

		if err := rows.Scan(&ts.OwnerID, &ts.ItemType, &ts.ItemID, &ts.ClientID, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tombstone: %w", err)
		}
		ts.DeletedAt = time.Unix(deletedAt, 0)
		result = append(result, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tombstones: %w", err)
	}
	return result, nil
}

// DeleteTombstone removes the record for (owner, item type, item id).
func (s *Storage) DeleteTombstone(ctx context.Context, ownerID, itemType, itemID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tombstones WHERE owner_id = ? AND item_type = ? AND item_id = ?`,
		ownerID, itemType, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tombstone: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return deleted, nil
}
