package content

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/classpack/internal/client/storage"
	"github.com/avdeyev/classpack/internal/models"
	pkgapi "github.com/avdeyev/classpack/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

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

func noopQueue() *EnqueuerMock {
	return &EnqueuerMock{
		EnqueueUpsertFunc: func(ctx context.Context, table models.EntityType, itemID string, data json.RawMessage) error {
			return nil
		},
		EnqueueDeleteFunc: func(ctx context.Context, table models.EntityType, itemID string) error {
			return nil
		},
	}
}

func TestService_SaveAssignsIDAndQueuesUpsert(t *testing.T) {
	snaps := memSnapshots()
	queue := noopQueue()
	svc := NewService(models.EntityTypeQuiz, snaps, queue, testLogger())
	ctx := context.Background()

	e := &models.Entity{Name: "fractions", Payload: json.RawMessage(`{"questions":[]}`)}
	require.NoError(t, svc.Save(ctx, e))

	require.NotEmpty(t, e.ID)
	assert.Equal(t, models.EntityTypeQuiz, e.Type)
	assert.False(t, e.CreatedAt.IsZero())

	// local first: the item is readable before any drain
	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "fractions", got.Name)

	require.Len(t, queue.EnqueueUpsertCalls(), 1)
	call := queue.EnqueueUpsertCalls()[0]
	assert.Equal(t, e.ID, call.ItemID)

	var row pkgapi.Row
	require.NoError(t, json.Unmarshal(call.Data, &row))
	assert.Equal(t, "fractions", row.Name)
	assert.JSONEq(t, `{"questions":[]}`, string(row.Payload))
}

func TestService_SaveRejectsBadName(t *testing.T) {
	svc := NewService(models.EntityTypeQuiz, memSnapshots(), noopQueue(), testLogger())

	err := svc.Save(context.Background(), &models.Entity{Name: ""})
	require.Error(t, err)
}

func TestService_SaveKeepsCreatedAtOnUpdate(t *testing.T) {
	svc := NewService(models.EntityTypeQuiz, memSnapshots(), noopQueue(), testLogger())
	ctx := context.Background()

	e := &models.Entity{Name: "v1"}
	require.NoError(t, svc.Save(ctx, e))
	created := e.CreatedAt

	svc.now = func() time.Time { return created.Add(time.Hour) }
	e.Name = "v2"
	require.NoError(t, svc.Save(ctx, e))

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Name)
	assert.Equal(t, created, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(created))
}

func TestService_SaveIntoMissingFolderRejected(t *testing.T) {
	svc := NewService(models.EntityTypeFile, memSnapshots(), noopQueue(), testLogger())

	err := svc.Save(context.Background(), &models.Entity{Name: "notes.pdf", FolderID: "nope"})
	require.ErrorIs(t, err, ErrFolderNotFound)
}

func TestService_SaveIntoExistingFolder(t *testing.T) {
	snaps := memSnapshots()
	ctx := context.Background()

	folders := NewService(models.EntityTypeFolder, snaps, noopQueue(), testLogger())
	folder := &models.Entity{Name: "Algebra"}
	require.NoError(t, folders.Save(ctx, folder))

	files := NewService(models.EntityTypeFile, snaps, noopQueue(), testLogger())
	require.NoError(t, files.Save(ctx, &models.Entity{Name: "notes.pdf", FolderID: folder.ID}))
}

func TestService_SaveClearsLocalDeletedID(t *testing.T) {
	snaps := memSnapshots()
	svc := NewService(models.EntityTypeQuiz, snaps, noopQueue(), testLogger())
	ctx := context.Background()

	e := &models.Entity{Name: "quiz"}
	require.NoError(t, svc.Save(ctx, e))
	require.NoError(t, svc.Delete(ctx, e.ID))

	// deliberate re-creation under the same id
	require.NoError(t, svc.Save(ctx, e))

	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	assert.NotContains(t, snap.DeletedIDs, e.ID)
	require.NotNil(t, snap.Find(e.ID))
}

func TestService_DeleteRemovesLocallyAndQueues(t *testing.T) {
	snaps := memSnapshots()
	queue := noopQueue()
	svc := NewService(models.EntityTypeQuiz, snaps, queue, testLogger())
	ctx := context.Background()

	e := &models.Entity{Name: "quiz"}
	require.NoError(t, svc.Save(ctx, e))
	require.NoError(t, svc.Delete(ctx, e.ID))

	_, err := svc.Get(ctx, e.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// the deleted-id guards against a stale remote copy merging back in
	snap, err := snaps.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	assert.Contains(t, snap.DeletedIDs, e.ID)

	require.Len(t, queue.EnqueueDeleteCalls(), 1)
	assert.Equal(t, e.ID, queue.EnqueueDeleteCalls()[0].ItemID)
}

func TestService_DeleteUnknownIDStillQueued(t *testing.T) {
	queue := noopQueue()
	svc := NewService(models.EntityTypeQuiz, memSnapshots(), queue, testLogger())

	require.NoError(t, svc.Delete(context.Background(), "never-existed"))
	assert.Len(t, queue.EnqueueDeleteCalls(), 1)
}

func TestService_ListReturnsClones(t *testing.T) {
	svc := NewService(models.EntityTypeLink, memSnapshots(), noopQueue(), testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, &models.Entity{Name: "khan academy"}))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// mutating the returned copy must not leak into the snapshot
	items[0].Name = "scribbled over"
	again, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "khan academy", again[0].Name)
}

func TestService_MoveToFolder(t *testing.T) {
	snaps := memSnapshots()
	queue := noopQueue()
	ctx := context.Background()

	folders := NewService(models.EntityTypeFolder, snaps, noopQueue(), testLogger())
	folder := &models.Entity{Name: "Geometry"}
	require.NoError(t, folders.Save(ctx, folder))

	docs := NewService(models.EntityTypeDocument, snaps, queue, testLogger())
	doc := &models.Entity{Name: "syllabus"}
	require.NoError(t, docs.Save(ctx, doc))

	require.NoError(t, docs.MoveToFolder(ctx, doc.ID, folder.ID))

	got, err := docs.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, folder.ID, got.FolderID)
	// save + move both travel through the queue
	assert.Len(t, queue.EnqueueUpsertCalls(), 2)

	require.NoError(t, docs.MoveToFolder(ctx, doc.ID, ""))
	got, err = docs.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FolderID)
}

func TestService_MoveUnknownItem(t *testing.T) {
	svc := NewService(models.EntityTypeDocument, memSnapshots(), noopQueue(), testLogger())

	err := svc.MoveToFolder(context.Background(), "nope", "")
	require.ErrorIs(t, err, ErrNotFound)
}

type reconcilerFunc func(ctx context.Context) error

func (f reconcilerFunc) ReconcileAll(ctx context.Context) error { return f(ctx) }

type drainerFunc func(ctx context.Context) error

func (f drainerFunc) Drain(ctx context.Context) error { return f(ctx) }

func TestManager_ServicePerType(t *testing.T) {
	m := NewManager(memSnapshots(), noopQueue(), nil, nil, testLogger())

	for _, typ := range models.AllEntityTypes {
		svc, err := m.Service(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, svc.entityType)
	}

	_, err := m.Service("spreadsheets")
	require.Error(t, err)
}

func TestManager_SyncNowPullsThenPushes(t *testing.T) {
	var order []string
	m := NewManager(memSnapshots(), noopQueue(),
		reconcilerFunc(func(ctx context.Context) error {
			order = append(order, "reconcile")
			return nil
		}),
		drainerFunc(func(ctx context.Context) error {
			order = append(order, "drain")
			return nil
		}),
		testLogger())

	require.NoError(t, m.SyncNow(context.Background()))
	assert.Equal(t, []string{"reconcile", "drain"}, order)
}

func TestManager_SyncNowReconcileFailureSkipsDrain(t *testing.T) {
	drained := false
	m := NewManager(memSnapshots(), noopQueue(),
		reconcilerFunc(func(ctx context.Context) error { return errors.New("offline") }),
		drainerFunc(func(ctx context.Context) error {
			drained = true
			return nil
		}),
		testLogger())

	require.Error(t, m.SyncNow(context.Background()))
	assert.False(t, drained)
}
