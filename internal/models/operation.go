package models

import (
	"encoding/json"
	"time"
)

// OpKind is the kind of a queued mutation.
type OpKind string

const (
	OpUpsert OpKind = "upsert"
	OpDelete OpKind = "delete"
)

// Operation is one pending mutation in the sync queue. At most one operation
// exists per (Table, ItemID): enqueuing replaces any older operation for the
// same target, so only the most recent local state is ever sent.
type Operation struct {
	CreatedAt   time.Time       `json:"created_at"`
	LastAttempt time.Time       `json:"last_attempt,omitzero"`
	ID          string          `json:"id"`
	Kind        OpKind          `json:"kind"`
	Table       EntityType      `json:"table"`
	ItemID      string          `json:"item_id"`
	Data        json.RawMessage `json:"data,omitempty"`
	LastError   string          `json:"last_error,omitempty"`
	Retries     int             `json:"retries"`
}

// SameTarget reports whether two operations address the same remote row.
func (op *Operation) SameTarget(other *Operation) bool {
	return op.Table == other.Table && op.ItemID == other.ItemID
}
