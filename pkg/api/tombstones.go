package api

import "time"

// Tombstone is a durable deletion record. One row per (owner, item type,
// item id); the server upserts on conflict so duplicate deletes are idempotent.
type Tombstone struct {
	DeletedAt time.Time `json:"deleted_at"`
	OwnerID   string    `json:"owner_id"`
	ItemType  string    `json:"item_type"`
	ItemID    string    `json:"item_id"`
	ClientID  string    `json:"client_id"`
}

// TombstoneList is the response for a tombstone fetch.
type TombstoneList struct {
	Tombstones []Tombstone `json:"tombstones"`
}

// PutTombstoneRequest records a deletion. Owner is taken from the token.
type PutTombstoneRequest struct {
	ItemType string `json:"item_type"`
	ItemID   string `json:"item_id"`
	ClientID string `json:"client_id"`
}
