// Package content is the per-entity-type façade over the sync engine. It
// carries no merge or retry logic of its own: a save writes the local
// snapshot first, so the caller sees the change immediately, and then hands
// the mutation to the sync queue.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avdeyev/classpack/internal/client/storage"
	"github.com/avdeyev/classpack/internal/models"
	"github.com/avdeyev/classpack/internal/validation"
)

var (
	ErrNotFound       = errors.New("item not found")
	ErrFolderNotFound = errors.New("folder not found")
)

//go:generate moq -out enqueuer_mock.go . Enqueuer

// Enqueuer is the queue surface the façade pushes mutations through.
type Enqueuer interface {
	EnqueueUpsert(ctx context.Context, table models.EntityType, itemID string, data json.RawMessage) error
	EnqueueDelete(ctx context.Context, table models.EntityType, itemID string) error
}

// Service adapts the generic engine for one entity type. All six types share
// this one implementation; only the type tag differs.
type Service struct {
	entityType models.EntityType
	snapshots  storage.SnapshotStorage
	queue      Enqueuer
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a façade for one entity type.
func NewService(
	entityType models.EntityType,
	snapshots storage.SnapshotStorage,
	queue Enqueuer,
	logger *slog.Logger,
) *Service {
	return &Service{
		entityType: entityType,
		snapshots:  snapshots,
		queue:      queue,
		logger:     logger,
		now:        time.Now,
	}
}

// Save creates or updates an item. The local snapshot is written
// synchronously; the remote write happens asynchronously through the queue.
// An empty id means create: a fresh id is assigned and returned on the
// entity.
func (s *Service) Save(ctx context.Context, e *models.Entity) error {
	if err := validation.ValidateItemName(e.Name); err != nil {
		return err
	}
	if e.FolderID != "" {
		if err := s.folderExists(ctx, e.FolderID); err != nil {
			return err
		}
	}

	now := s.now()
	if e.ID == "" {
		e.ID = uuid.New().String()
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	e.Type = s.entityType
	if e.Payload == nil {
		e.Payload = json.RawMessage(`{}`)
	}

	snap, err := s.snapshots.GetSnapshot(ctx, s.entityType)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap.Find(e.ID) == nil && e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	snap.Put(e.Clone())
	// Saving under a previously deleted id is a deliberate re-creation; the
	// queue retires the remote tombstone on upload.
	delete(snap.DeletedIDs, e.ID)
	if err := s.snapshots.SaveSnapshot(ctx, s.entityType, snap); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	data, err := json.Marshal(models.RowFromEntity(e))
	if err != nil {
		return fmt.Errorf("failed to encode item: %w", err)
	}
	return s.queue.EnqueueUpsert(ctx, s.entityType, e.ID, data)
}

// Delete removes an item locally and queues the remote delete. Deleting an
// id that does not exist locally is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	snap, err := s.snapshots.GetSnapshot(ctx, s.entityType)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	existed := snap.Remove(id)
	// The deleted-id keeps a stale remote copy from being merged back in
	// while the delete is in flight; reconciliation retires it once the
	// delete has propagated.
	snap.DeletedIDs[id] = struct{}{}
	if err := s.snapshots.SaveSnapshot(ctx, s.entityType, snap); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	if !existed {
		s.logger.Debug("delete of locally unknown item", "type", s.entityType, "id", id)
	}
	return s.queue.EnqueueDelete(ctx, s.entityType, id)
}

// Get returns one item by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Entity, error) {
	snap, err := s.snapshots.GetSnapshot(ctx, s.entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	e := snap.Find(id)
	if e == nil {
		return nil, ErrNotFound
	}
	return e.Clone(), nil
}

// List returns all local items of this type.
func (s *Service) List(ctx context.Context) ([]*models.Entity, error) {
	snap, err := s.snapshots.GetSnapshot(ctx, s.entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	items := make([]*models.Entity, 0, len(snap.Entities))
	for _, e := range snap.Entities {
		items = append(items, e.Clone())
	}
	return items, nil
}

// MoveToFolder re-parents an item. An empty folderID moves it to the root.
func (s *Service) MoveToFolder(ctx context.Context, id, folderID string) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	e.FolderID = folderID
	return s.Save(ctx, e)
}

func (s *Service) folderExists(ctx context.Context, folderID string) error {
	folders, err := s.snapshots.GetSnapshot(ctx, models.EntityTypeFolder)
	if err != nil {
		return fmt.Errorf("failed to load folders: %w", err)
	}
	if folders.Find(folderID) == nil {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, folderID)
	}
	return nil
}
