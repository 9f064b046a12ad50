package api

import (
	"encoding/json"
	"time"
)

// Row represents a single content row as stored on the server.
// The payload is opaque to the sync engine: quizzes, worksheets, files and
// links all travel through the same shape.
type Row struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ID        string          `json:"id"`
	TeacherID string          `json:"teacher_id"`
	ItemType  string          `json:"item_type"`
	Name      string          `json:"name"`
	FolderID  string          `json:"folder_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// RowList is the response for a filtered row fetch.
type RowList struct {
	Rows []Row `json:"rows"`
}

// UpdateResult reports how many rows a PATCH matched.
// Zero matched means the row does not exist for this owner and the client
// should fall back to an insert.
type UpdateResult struct {
	Matched int64 `json:"matched"`
}

// DeleteResult reports how many rows a DELETE removed.
// Zero deleted is not an error: the row was already absent.
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}
