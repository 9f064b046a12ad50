package models

import "time"

// Snapshot is the device-local state for one entity type. Three overlapping
// views, all persisted together:
//
//   - Entities: full payloads for local rendering;
//   - KnownRemoteIDs: ids previously observed on the server, used to detect
//     server-side deletions;
//   - DeletedIDs: ids deleted locally whose tombstone is still propagating.
//
// After a successful reconciliation DeletedIDs and the ids of Entities are
// disjoint.
type Snapshot struct {
	Entities       []*Entity           `json:"entities"`
	KnownRemoteIDs map[string]struct{} `json:"known_remote_ids"`
	DeletedIDs     map[string]struct{} `json:"deleted_ids"`
}

// NewSnapshot returns an empty snapshot with allocated sets.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		KnownRemoteIDs: make(map[string]struct{}),
		DeletedIDs:     make(map[string]struct{}),
	}
}

// Find returns the entity with the given id, or nil.
func (s *Snapshot) Find(id string) *Entity {
	for _, e := range s.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Put inserts or replaces an entity by id.
func (s *Snapshot) Put(entity *Entity) {
	for i, e := range s.Entities {
		if e.ID == entity.ID {
			s.Entities[i] = entity
			return
		}
	}
	s.Entities = append(s.Entities, entity)
}

// Remove deletes the entity with the given id and reports whether it existed.
func (s *Snapshot) Remove(id string) bool {
	for i, e := range s.Entities {
		if e.ID == id {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			return true
		}
	}
	return false
}

// Tombstone is the client-side view of a deletion record.
type Tombstone struct {
	DeletedAt time.Time  `json:"deleted_at"`
	OwnerID   string     `json:"owner_id"`
	ItemType  EntityType `json:"item_type"`
	ItemID    string     `json:"item_id"`
	ClientID  string     `json:"client_id"`
}
