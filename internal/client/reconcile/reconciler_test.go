package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/avdeyev/classpack/internal/client/api"
	"github.com/avdeyev/classpack/internal/client/auth"
	"github.com/avdeyev/classpack/internal/client/storage"
	"github.com/avdeyev/classpack/internal/client/tombstones"
	"github.com/avdeyev/classpack/internal/models"
	pkgapi "github.com/avdeyev/classpack/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memSnapshots is a SnapshotStorageMock backed by an in-memory map.
func memSnapshots() *storage.SnapshotStorageMock {
	byType := map[models.EntityType]*models.Snapshot{}
	return &storage.SnapshotStorageMock{
		SaveSnapshotFunc: func(ctx context.Context, entityType models.EntityType, snap *models.Snapshot) error {
			byType[entityType] = snap
			return nil
		},
		GetSnapshotFunc: func(ctx context.Context, entityType models.EntityType) (*models.Snapshot, error) {
			if snap, ok := byType[entityType]; ok {
				return snap, nil
			}
			return models.NewSnapshot(), nil
		},
	}
}

func authedCreds() *auth.CredentialsProviderMock {
	return &auth.CredentialsProviderMock{
		CredentialsFunc: func(ctx context.Context) (*auth.Credentials, error) {
			return &auth.Credentials{UserID: "user-1", ClientID: "client-1", AccessToken: "token-1"}, nil
		},
	}
}

func stonesWith(list ...models.Tombstone) *tombstones.ClientMock {
	return &tombstones.ClientMock{
		FetchFunc: func(ctx context.Context, creds *auth.Credentials) ([]models.Tombstone, error) {
			return list, nil
		},
	}
}

func rowsAPI(rowsByType map[models.EntityType][]pkgapi.Row) *httpClient.ClientAPIMock {
	return &httpClient.ClientAPIMock{
		ListRowsFunc: func(ctx context.Context, accessToken string, table models.EntityType) ([]pkgapi.Row, error) {
			return rowsByType[table], nil
		},
	}
}

func noopQueue() *EnqueuerMock {
	return queueWithPending()
}

// queueWithPending fakes a queue that reports the given item ids as deletes
// still awaiting delivery.
func queueWithPending(ids ...string) *EnqueuerMock {
	pending := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		pending[id] = struct{}{}
	}
	return &EnqueuerMock{
		EnqueueUpsertFunc: func(ctx context.Context, table models.EntityType, itemID string, data json.RawMessage) error {
			return nil
		},
		EnqueueDeleteFunc: func(ctx context.Context, table models.EntityType, itemID string) error {
			return nil
		},
		PendingDeletesFunc: func(ctx context.Context, table models.EntityType) (map[string]struct{}, error) {
			return pending, nil
		},
	}
}

func quiz(id, name string) pkgapi.Row {
	return pkgapi.Row{
		ID:        id,
		TeacherID: "user-1",
		ItemType:  string(models.EntityTypeQuiz),
		Name:      name,
		Payload:   json.RawMessage(`{}`),
	}
}

func localEntity(id string) *models.Entity {
	return &models.Entity{
		ID:      id,
		OwnerID: "user-1",
		Type:    models.EntityTypeQuiz,
		Name:    "local " + id,
		Payload: json.RawMessage(`{}`),
	}
}

func TestReconcile_NotAuthenticatedAborts(t *testing.T) {
	creds := &auth.CredentialsProviderMock{
		CredentialsFunc: func(ctx context.Context) (*auth.Credentials, error) {
			return nil, auth.ErrNotAuthenticated
		},
	}
	snaps := memSnapshots()
	mockAPI := &httpClient.ClientAPIMock{}

	r := New(snaps, mockAPI, stonesWith(), creds, noopQueue(), testLogger())
	require.NoError(t, r.Reconcile(context.Background(), models.EntityTypeQuiz))

	// no remote call, no snapshot write: an unauthenticated fetch would
	// have merged an empty remote set over real local state
	assert.Empty(t, mockAPI.ListRowsCalls())
	assert.Empty(t, snaps.SaveSnapshotCalls())
}

func TestReconcile_MergesRemoteRows(t *testing.T) {
	snaps := memSnapshots()
	mockAPI := rowsAPI(map[models.EntityType][]pkgapi.Row{
		models.EntityTypeQuiz: {quiz("q1", "fractions"), quiz("q2", "decimals")},
	})

	r := New(snaps, mockAPI, stonesWith(), authedCreds(), noopQueue(), testLogger())
	ctx := context.Background()
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	require.Len(t, snap.Entities, 2)
	assert.Contains(t, snap.KnownRemoteIDs, "q1")
	assert.Contains(t, snap.KnownRemoteIDs, "q2")
	assert.Equal(t, "fractions", snap.Find("q1").Name)
}

func TestReconcile_NoResurrection(t *testing.T) {
	// tombstone for q1 exists; the server still has a leftover copy and the
	// local snapshot still renders it
	ctx := context.Background()
	snaps := memSnapshots()
	prev := models.NewSnapshot()
	prev.Put(localEntity("q1"))
	prev.KnownRemoteIDs["q1"] = struct{}{}
	require.NoError(t, snaps.SaveSnapshot(ctx, models.EntityTypeQuiz, prev))

	mockAPI := rowsAPI(map[models.EntityType][]pkgapi.Row{
		models.EntityTypeQuiz: {quiz("q1", "deleted elsewhere")},
	})
	queue := noopQueue()
	stones := stonesWith(models.Tombstone{ItemType: models.EntityTypeQuiz, ItemID: "q1", OwnerID: "user-1"})

	r := New(snaps, mockAPI, stones, authedCreds(), queue, testLogger())
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	assert.Nil(t, snap.Find("q1"))
	assert.NotContains(t, snap.KnownRemoteIDs, "q1")
	assert.Contains(t, snap.DeletedIDs, "q1")

	// the leftover remote copy gets its delete retried; nothing is uploaded
	require.Len(t, queue.EnqueueDeleteCalls(), 1)
	assert.Equal(t, "q1", queue.EnqueueDeleteCalls()[0].ItemID)
	assert.Empty(t, queue.EnqueueUpsertCalls())
}

func TestReconcile_TombstonedLocalOnlyItemNotUploaded(t *testing.T) {
	// q1 was created and deleted on another device before this one ever
	// synced: it exists only in this device's stale snapshot
	ctx := context.Background()
	snaps := memSnapshots()
	prev := models.NewSnapshot()
	prev.Put(localEntity("q1"))
	require.NoError(t, snaps.SaveSnapshot(ctx, models.EntityTypeQuiz, prev))

	queue := noopQueue()
	stones := stonesWith(models.Tombstone{ItemType: models.EntityTypeQuiz, ItemID: "q1", OwnerID: "user-1"})

	r := New(snaps, rowsAPI(nil), stones, authedCreds(), queue, testLogger())
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	assert.Nil(t, snap.Find("q1"))
	assert.Empty(t, queue.EnqueueUpsertCalls())
	assert.Empty(t, queue.EnqueueDeleteCalls())
}

func TestReconcile_RemoteDeletionPropagates(t *testing.T) {
	// q1 was seen remotely before and is gone from the fresh fetch without a
	// local delete: the server-side deletion wins
	ctx := context.Background()
	snaps := memSnapshots()
	prev := models.NewSnapshot()
	prev.Put(localEntity("q1"))
	prev.KnownRemoteIDs["q1"] = struct{}{}
	require.NoError(t, snaps.SaveSnapshot(ctx, models.EntityTypeQuiz, prev))

	queue := noopQueue()
	r := New(snaps, rowsAPI(nil), stonesWith(), authedCreds(), queue, testLogger())
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	assert.Nil(t, snap.Find("q1"))
	assert.Empty(t, queue.EnqueueUpsertCalls())
}

func TestReconcile_NewLocalItemUploaded(t *testing.T) {
	// q1 exists only locally, was never seen remotely and is not tombstoned
	ctx := context.Background()
	snaps := memSnapshots()
	prev := models.NewSnapshot()
	prev.Put(localEntity("q1"))
	require.NoError(t, snaps.SaveSnapshot(ctx, models.EntityTypeQuiz, prev))

	queue := noopQueue()
	r := New(snaps, rowsAPI(nil), stonesWith(), authedCreds(), queue, testLogger())
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	require.NotNil(t, snap.Find("q1"))
	// still local-only until the queue drains and the next pass sees it
	assert.NotContains(t, snap.KnownRemoteIDs, "q1")

	require.Len(t, queue.EnqueueUpsertCalls(), 1)
	call := queue.EnqueueUpsertCalls()[0]
	assert.Equal(t, models.EntityTypeQuiz, call.Table)
	assert.Equal(t, "q1", call.ItemID)

	var row pkgapi.Row
	require.NoError(t, json.Unmarshal(call.Data, &row))
	assert.Equal(t, "local q1", row.Name)
}

func TestReconcile_TombstoneFetchFailureDegrades(t *testing.T) {
	stones := &tombstones.ClientMock{
		FetchFunc: func(ctx context.Context, creds *auth.Credentials) ([]models.Tombstone, error) {
			return nil, errors.New("tombstone table unavailable")
		},
	}
	snaps := memSnapshots()
	mockAPI := rowsAPI(map[models.EntityType][]pkgapi.Row{
		models.EntityTypeQuiz: {quiz("q1", "fractions")},
	})

	r := New(snaps, mockAPI, stones, authedCreds(), noopQueue(), testLogger())
	ctx := context.Background()
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	// the pass still merged the remote rows instead of going stale
	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	require.NotNil(t, snap.Find("q1"))
}

func TestReconcile_RemoteFetchFailureAborts(t *testing.T) {
	ctx := context.Background()
	snaps := memSnapshots()
	prev := models.NewSnapshot()
	prev.Put(localEntity("q1"))
	prev.KnownRemoteIDs["q1"] = struct{}{}
	require.NoError(t, snaps.SaveSnapshot(ctx, models.EntityTypeQuiz, prev))
	saves := len(snaps.SaveSnapshotCalls())

	mockAPI := &httpClient.ClientAPIMock{
		ListRowsFunc: func(ctx context.Context, accessToken string, table models.EntityType) ([]pkgapi.Row, error) {
			return nil, errors.New("gateway timeout")
		},
	}

	r := New(snaps, mockAPI, stonesWith(), authedCreds(), noopQueue(), testLogger())
	require.Error(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	// local state is untouched: a failed fetch must not look like an empty
	// remote set
	assert.Len(t, snaps.SaveSnapshotCalls(), saves)
}

// The two-device scenario: device one creates A, syncs, deletes A. Device
// two went offline before the delete and still holds a stale copy of A with
// A in its known-remote-ids. When device two reconciles, the tombstone must
// win everywhere.
func TestReconcile_TwoDeviceDelete(t *testing.T) {
	ctx := context.Background()
	snaps := memSnapshots()
	stale := models.NewSnapshot()
	stale.Put(localEntity("A"))
	stale.KnownRemoteIDs["A"] = struct{}{}
	require.NoError(t, snaps.SaveSnapshot(ctx, models.EntityTypeQuiz, stale))

	queue := noopQueue()
	stones := stonesWith(models.Tombstone{ItemType: models.EntityTypeQuiz, ItemID: "A", OwnerID: "user-1"})

	// device one's delete already reached the server: no remote rows remain
	r := New(snaps, rowsAPI(nil), stones, authedCreds(), queue, testLogger())
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	assert.Nil(t, snap.Find("A"))
	assert.Empty(t, queue.EnqueueUpsertCalls(), "stale copy must not be re-uploaded")
}

func TestReconcile_RecreatedElsewhereMergesBack(t *testing.T) {
	// this device deleted q1 long ago and the delete fully propagated; later
	// another device deliberately re-created it, clearing the tombstone. The
	// stale deleted-id must not kill the re-creation.
	ctx := context.Background()
	snaps := memSnapshots()
	prev := models.NewSnapshot()
	prev.DeletedIDs["q1"] = struct{}{}
	require.NoError(t, snaps.SaveSnapshot(ctx, models.EntityTypeQuiz, prev))

	mockAPI := rowsAPI(map[models.EntityType][]pkgapi.Row{
		models.EntityTypeQuiz: {quiz("q1", "recreated elsewhere")},
	})
	queue := noopQueue()

	r := New(snaps, mockAPI, stonesWith(), authedCreds(), queue, testLogger())
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	require.NotNil(t, snap.Find("q1"))
	assert.Equal(t, "recreated elsewhere", snap.Find("q1").Name)
	assert.NotContains(t, snap.DeletedIDs, "q1")
	assert.Empty(t, queue.EnqueueDeleteCalls(), "re-creation must not be deleted again")
}

func TestReconcile_ConfirmedDeleteRetired(t *testing.T) {
	// the delete propagated everywhere: no remote row, no remote tombstone,
	// nothing queued. The deleted-id has done its job and is dropped so the
	// set does not grow forever.
	ctx := context.Background()
	snaps := memSnapshots()
	prev := models.NewSnapshot()
	prev.DeletedIDs["q1"] = struct{}{}
	require.NoError(t, snaps.SaveSnapshot(ctx, models.EntityTypeQuiz, prev))

	r := New(snaps, rowsAPI(nil), stonesWith(), authedCreds(), noopQueue(), testLogger())
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	assert.Empty(t, snap.DeletedIDs)
}

func TestReconcile_QueuedDeleteStaysExcluded(t *testing.T) {
	// this device deleted q1 but the queue has not drained yet: the server
	// still shows the row and carries no tombstone. The pending delete must
	// keep the row out of the merge instead of resurrecting it locally.
	ctx := context.Background()
	snaps := memSnapshots()
	prev := models.NewSnapshot()
	prev.DeletedIDs["q1"] = struct{}{}
	require.NoError(t, snaps.SaveSnapshot(ctx, models.EntityTypeQuiz, prev))

	mockAPI := rowsAPI(map[models.EntityType][]pkgapi.Row{
		models.EntityTypeQuiz: {quiz("q1", "not yet deleted remotely")},
	})
	queue := queueWithPending("q1")

	r := New(snaps, mockAPI, stonesWith(), authedCreds(), queue, testLogger())
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	assert.Nil(t, snap.Find("q1"))
	assert.Contains(t, snap.DeletedIDs, "q1")
	// the delete is already queued; re-enqueueing would reset its retries
	assert.Empty(t, queue.EnqueueDeleteCalls())
}

func TestReconcile_DegradedFetchKeepsStaleDeletes(t *testing.T) {
	// when tombstones cannot be fetched nothing can be confirmed, so the
	// previous deleted-ids stay authoritative and nothing is retired.
	ctx := context.Background()
	snaps := memSnapshots()
	prev := models.NewSnapshot()
	prev.DeletedIDs["q1"] = struct{}{}
	require.NoError(t, snaps.SaveSnapshot(ctx, models.EntityTypeQuiz, prev))

	stones := &tombstones.ClientMock{
		FetchFunc: func(ctx context.Context, creds *auth.Credentials) ([]models.Tombstone, error) {
			return nil, errors.New("tombstone table unavailable")
		},
	}
	mockAPI := rowsAPI(map[models.EntityType][]pkgapi.Row{
		models.EntityTypeQuiz: {quiz("q1", "leftover copy")},
	})
	queue := noopQueue()

	r := New(snaps, mockAPI, stones, authedCreds(), queue, testLogger())
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	assert.Nil(t, snap.Find("q1"))
	assert.Contains(t, snap.DeletedIDs, "q1")
	require.Len(t, queue.EnqueueDeleteCalls(), 1)
}

func TestReconcile_TombstoneForOtherTypeIgnored(t *testing.T) {
	ctx := context.Background()
	snaps := memSnapshots()
	mockAPI := rowsAPI(map[models.EntityType][]pkgapi.Row{
		models.EntityTypeQuiz: {quiz("shared-id", "quiz")},
	})
	stones := stonesWith(models.Tombstone{ItemType: models.EntityTypeFile, ItemID: "shared-id", OwnerID: "user-1"})

	r := New(snaps, mockAPI, stones, authedCreds(), noopQueue(), testLogger())
	require.NoError(t, r.Reconcile(ctx, models.EntityTypeQuiz))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	require.NotNil(t, snap.Find("shared-id"))
	assert.NotContains(t, snap.DeletedIDs, "shared-id")
}

func TestReconcileAll_RunsEveryTypeFoldersFirst(t *testing.T) {
	var order []models.EntityType
	mockAPI := &httpClient.ClientAPIMock{
		ListRowsFunc: func(ctx context.Context, accessToken string, table models.EntityType) ([]pkgapi.Row, error) {
			order = append(order, table)
			return nil, nil
		},
	}

	r := New(memSnapshots(), mockAPI, stonesWith(), authedCreds(), noopQueue(), testLogger())
	require.NoError(t, r.ReconcileAll(context.Background()))

	require.Equal(t, models.AllEntityTypes, order)
	assert.Equal(t, models.EntityTypeFolder, order[0])
}

func TestReconcileAll_FailingTypeDoesNotStopOthers(t *testing.T) {
	var attempted []models.EntityType
	mockAPI := &httpClient.ClientAPIMock{
		ListRowsFunc: func(ctx context.Context, accessToken string, table models.EntityType) ([]pkgapi.Row, error) {
			attempted = append(attempted, table)
			if table == models.EntityTypeFolder {
				return nil, errors.New("boom")
			}
			return nil, nil
		},
	}

	r := New(memSnapshots(), mockAPI, stonesWith(), authedCreds(), noopQueue(), testLogger())
	err := r.ReconcileAll(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "folders")
	assert.Len(t, attempted, len(models.AllEntityTypes))
}
