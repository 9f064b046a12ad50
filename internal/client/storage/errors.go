package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no saved session exists
	ErrSessionNotFound = errors.New("session not found")

	// ErrSnapshotNotFound indicates that no snapshot exists for the entity type
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
