package models

import (
	"encoding/json"
	"time"
)

// EntityType identifies a syncable content collection. Each type maps to its
// own server table filter and its own local snapshot.
type EntityType string

const (
	EntityTypeFile      EntityType = "files"
	EntityTypeLink      EntityType = "links"
	EntityTypeWorksheet EntityType = "worksheets"
	EntityTypeQuiz      EntityType = "quizzes"
	EntityTypeFolder    EntityType = "folders"
	EntityTypeDocument  EntityType = "documents"
)

// AllEntityTypes lists every syncable collection, in the order reconciliation
// runs them. Folders come first so moves never reference a folder the local
// store has not seen yet.
var AllEntityTypes = []EntityType{
	EntityTypeFolder,
	EntityTypeFile,
	EntityTypeLink,
	EntityTypeWorksheet,
	EntityTypeQuiz,
	EntityTypeDocument,
}

// ValidEntityType reports whether t names a known collection.
func ValidEntityType(t EntityType) bool {
	for _, known := range AllEntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Entity is one syncable content item. The payload is entity-specific and
// opaque to the engine; id is stable across devices and never reassigned.
type Entity struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Type      EntityType      `json:"type"`
	Name      string          `json:"name"`
	FolderID  string          `json:"folder_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	payload := make(json.RawMessage, len(e.Payload))
	copy(payload, e.Payload)

	clone := *e
	clone.Payload = payload
	return &clone
}
