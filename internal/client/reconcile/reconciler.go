// Package reconcile merges three independent, possibly contradictory sources
// into a corrected local snapshot for each entity type: the fresh remote row
// set, the previous local snapshot, and the owner's tombstones. The merge
// never resurrects a deleted item and never silently discards an unsynced
// local one.
package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	httpClient "github.com/avdeyev/classpack/internal/client/api"
	"github.com/avdeyev/classpack/internal/client/auth"
	"github.com/avdeyev/classpack/internal/client/storage"
	"github.com/avdeyev/classpack/internal/client/tombstones"
	"github.com/avdeyev/classpack/internal/models"
)

//go:generate moq -out enqueuer_mock.go . Enqueuer

// Enqueuer is the push side of the engine. Reconciliation never uploads
// directly: everything outbound goes through the same queue as direct user
// mutations, so coalescing and retry policy apply uniformly. PendingDeletes
// exposes the deletes still awaiting delivery; only those locally-deleted ids
// stay excluded from a merge when the server carries no tombstone for them.
type Enqueuer interface {
	EnqueueUpsert(ctx context.Context, table models.EntityType, itemID string, data json.RawMessage) error
	EnqueueDelete(ctx context.Context, table models.EntityType, itemID string) error
	PendingDeletes(ctx context.Context, table models.EntityType) (map[string]struct{}, error)
}

// Reconciler runs the merge pass. One instance serves all entity types.
type Reconciler struct {
	snapshots   storage.SnapshotStorage
	apiClient   httpClient.ClientAPI
	tombstones  tombstones.Client
	credentials auth.CredentialsProvider
	queue       Enqueuer
	logger      *slog.Logger
}

// New creates a reconciler.
func New(
	snapshots storage.SnapshotStorage,
	apiClient httpClient.ClientAPI,
	tombstoneClient tombstones.Client,
	credentials auth.CredentialsProvider,
	queue Enqueuer,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		snapshots:   snapshots,
		apiClient:   apiClient,
		tombstones:  tombstoneClient,
		credentials: credentials,
		queue:       queue,
		logger:      logger,
	}
}

// ReconcileAll runs the merge pass for every entity type, folders first.
// A failing type does not stop the others.
func (r *Reconciler) ReconcileAll(ctx context.Context) error {
	var errs []error
	for _, t := range models.AllEntityTypes {
		if err := r.Reconcile(ctx, t); err != nil {
			errs = append(errs, fmt.Errorf("reconcile %s: %w", t, err))
		}
	}
	return errors.Join(errs...)
}

// Reconcile runs one merge pass for a single entity type.
//
// Without a valid credential the pass aborts before touching local state:
// merging an empty remote set fetched with no auth would wipe the
// known-remote-ids set and make every local item look new again.
func (r *Reconciler) Reconcile(ctx context.Context, entityType models.EntityType) error {
	creds, err := r.credentials.Credentials(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			r.logger.Debug("reconcile skipped: not authenticated", "type", entityType)
			return nil
		}
		return fmt.Errorf("failed to resolve credentials: %w", err)
	}

	snap, err := r.snapshots.GetSnapshot(ctx, entityType)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	// A failed tombstone fetch degrades to an empty set: the pass still runs
	// with a documented resurrection risk instead of the client going stale.
	// The previous snapshot's deleted-ids then stand in for the tombstones,
	// and no retirement happens this pass.
	stonesOK := true
	stones, err := r.tombstones.Fetch(ctx, creds)
	if err != nil {
		r.logger.Warn("tombstone fetch failed, proceeding without",
			"type", entityType, "error", err)
		stones = nil
		stonesOK = false
	}
	stoneIDs := make(map[string]struct{})
	for _, ts := range stones {
		if ts.ItemType == entityType {
			stoneIDs[ts.ItemID] = struct{}{}
		}
	}

	pending, err := r.queue.PendingDeletes(ctx, entityType)
	if err != nil {
		return fmt.Errorf("failed to inspect pending deletes: %w", err)
	}

	rows, err := r.apiClient.ListRows(ctx, creds.AccessToken, entityType)
	if err != nil {
		return fmt.Errorf("failed to fetch remote rows: %w", err)
	}

	remoteIDs := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		remoteIDs[row.ID] = struct{}{}
	}

	// An id counts as deleted while a remote tombstone exists or this
	// device's own delete is still queued. A deleted-id from the previous
	// snapshot with neither is a confirmed, fully propagated delete: it is
	// retired, so a later re-creation on another device merges back in. Only
	// a degraded tombstone fetch keeps the stale set authoritative.
	isDeleted := func(id string) bool {
		if _, ok := stoneIDs[id]; ok {
			return true
		}
		if _, ok := pending[id]; ok {
			return true
		}
		if !stonesOK {
			_, ok := snap.DeletedIDs[id]
			return ok
		}
		return false
	}

	merged := models.NewSnapshot()
	for id := range stoneIDs {
		merged.DeletedIDs[id] = struct{}{}
	}
	for id := range pending {
		merged.DeletedIDs[id] = struct{}{}
	}
	if !stonesOK {
		for id := range snap.DeletedIDs {
			merged.DeletedIDs[id] = struct{}{}
		}
	}

	// Remote rows win for anything the server still has, except deleted
	// ids: those are excluded from the merge and, unless this device's own
	// delete is already queued, the delete is retried. A leftover remote
	// copy of a tombstoned item means the original delete's remote call
	// failed after the tombstone write succeeded.
	var retryDeletes []string
	for _, row := range rows {
		if isDeleted(row.ID) {
			if _, queued := pending[row.ID]; !queued {
				retryDeletes = append(retryDeletes, row.ID)
			}
			continue
		}
		merged.Put(models.EntityFromRow(row))
		merged.KnownRemoteIDs[row.ID] = struct{}{}
	}

	// Local items fall into three buckets. Previously seen remotely but
	// absent from the fresh fetch: deleted server-side, purged by not
	// carrying them over. Never seen remotely and not tombstoned: genuinely
	// new, kept and re-uploaded. Never seen remotely but tombstoned: deleted
	// on another device before this one ever synced it, and re-uploading it
	// would resurrect it everywhere.
	var uploads []*models.Entity
	for _, e := range snap.Entities {
		if _, ok := remoteIDs[e.ID]; ok {
			continue
		}
		if _, ok := snap.KnownRemoteIDs[e.ID]; ok {
			r.logger.Debug("purging remotely deleted item", "type", entityType, "id", e.ID)
			continue
		}
		if isDeleted(e.ID) {
			r.logger.Debug("skipping tombstoned local-only item", "type", entityType, "id", e.ID)
			continue
		}
		merged.Put(e)
		uploads = append(uploads, e)
	}

	if err := r.snapshots.SaveSnapshot(ctx, entityType, merged); err != nil {
		return fmt.Errorf("failed to persist merged snapshot: %w", err)
	}

	for _, id := range retryDeletes {
		if err := r.queue.EnqueueDelete(ctx, entityType, id); err != nil {
			return fmt.Errorf("failed to re-enqueue delete for %s: %w", id, err)
		}
	}
	for _, e := range uploads {
		data, err := json.Marshal(models.RowFromEntity(e))
		if err != nil {
			return fmt.Errorf("failed to encode entity %s: %w", e.ID, err)
		}
		if err := r.queue.EnqueueUpsert(ctx, entityType, e.ID, data); err != nil {
			return fmt.Errorf("failed to re-enqueue upload for %s: %w", e.ID, err)
		}
	}

	r.logger.Info("reconciled",
		"type", entityType,
		"remote", len(rows),
		"kept", len(merged.Entities),
		"uploads", len(uploads),
		"retry_deletes", len(retryDeletes))

	return nil
}
