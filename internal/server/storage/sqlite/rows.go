package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avdeyev/classpack/internal/server/storage"
	"github.com/avdeyev/classpack/pkg/api"
)

// ListRows returns all rows of one item type for the owner, oldest first.
func (s *Storage) ListRows(ctx context.Context, ownerID, itemType string) ([]api.Row, error) {
	query := `
		SELECT id, teacher_id, item_type, name, folder_id, payload, created_at, updated_at
		FROM content_rows
		WHERE teacher_id = ? AND item_type = ?
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, itemType)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	var result []api.Row
	for rows.Next() {
		var row api.Row
		var payload string
		var createdAt, updatedAt int64

		if err := rows.Scan(&row.ID, &row.TeacherID, &row.ItemType, &row.Name,
			&row.FolderID, &payload, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row.Payload = json.RawMessage(payload)
		row.CreatedAt = time.Unix(createdAt, 0)
		row.UpdatedAt = time.Unix(updatedAt, 0)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return result, nil
}

// InsertRow creates a row.
// Returns ErrRowAlreadyExists if (owner, id) is already present.
func (s *Storage) InsertRow(ctx context.Context, row api.Row) error {
	query := `
		INSERT INTO content_rows (id, teacher_id, item_type, name, folder_id, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		row.ID,
		row.TeacherID,
		row.ItemType,
		row.Name,
		row.FolderID,
		payloadOrEmpty(row.Payload),
		row.CreatedAt.Unix(),
		row.UpdatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrRowAlreadyExists
		}
		return fmt.Errorf("failed to insert row: %w", err)
	}
	return nil
}

// UpdateRow updates the row matching (owner, id) and returns how many rows
// matched.
func (s *Storage) UpdateRow(ctx context.Context, row api.Row) (int64, error) {
	query := `
		UPDATE content_rows
		SET item_type = ?, name = ?, folder_id = ?, payload = ?, updated_at = ?
		WHERE teacher_id = ? AND id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		row.ItemType,
		row.Name,
		row.FolderID,
		payloadOrEmpty(row.Payload),
		row.UpdatedAt.Unix(),
		row.TeacherID,
		row.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update row: %w", err)
	}
	matched, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return matched, nil
}

// DeleteRow deletes the row matching (owner, id) and returns how many rows
// were deleted.
func (s *Storage) DeleteRow(ctx context.Context, ownerID, itemType, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM content_rows WHERE teacher_id = ? AND item_type = ? AND id = ?`,
		ownerID, itemType, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete row: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return deleted, nil
}

func payloadOrEmpty(payload json.RawMessage) string {
	if len(payload) == 0 {
		return "{}"
	}
	return string(payload)
}
