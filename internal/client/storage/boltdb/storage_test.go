package boltdb

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/classpack/internal/client/storage"
	"github.com/avdeyev/classpack/internal/models"
)

// createTestStorage creates a temporary bolt store for tests.
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func createTestEntity(id string, entityType models.EntityType) *models.Entity {
	now := time.Now()
	return &models.Entity{
		ID:        id,
		OwnerID:   "teacher-1",
		Type:      entityType,
		Name:      "item " + id,
		Payload:   json.RawMessage(`{"body":"` + id + `"}`),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStorage_SnapshotRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	snap := models.NewSnapshot()
	snap.Put(createTestEntity("q1", models.EntityTypeQuiz))
	snap.Put(createTestEntity("q2", models.EntityTypeQuiz))
	snap.KnownRemoteIDs["q1"] = struct{}{}
	snap.DeletedIDs["q3"] = struct{}{}

	require.NoError(t, store.SaveSnapshot(ctx, models.EntityTypeQuiz, snap))

	got, err := store.GetSnapshot(ctx, models.EntityTypeQuiz)
	require.NoError(t, err)
	assert.Len(t, got.Entities, 2)
	assert.NotNil(t, got.Find("q1"))
	assert.Contains(t, got.KnownRemoteIDs, "q1")
	assert.Contains(t, got.DeletedIDs, "q3")
}

func TestStorage_GetSnapshot_Empty(t *testing.T) {
	store := createTestStorage(t)

	snap, err := store.GetSnapshot(context.Background(), models.EntityTypeFile)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Empty(t, snap.Entities)
	assert.NotNil(t, snap.KnownRemoteIDs)
	assert.NotNil(t, snap.DeletedIDs)
}

func TestStorage_SnapshotsAreIsolatedPerType(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	quizSnap := models.NewSnapshot()
	quizSnap.Put(createTestEntity("q1", models.EntityTypeQuiz))
	require.NoError(t, store.SaveSnapshot(ctx, models.EntityTypeQuiz, quizSnap))

	fileSnap, err := store.GetSnapshot(ctx, models.EntityTypeFile)
	require.NoError(t, err)
	assert.Empty(t, fileSnap.Entities)
}

func TestStorage_QueueRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	ops := []*models.Operation{
		{ID: "op-1", Kind: models.OpUpsert, Table: models.EntityTypeQuiz, ItemID: "q1", CreatedAt: time.Now()},
		{ID: "op-2", Kind: models.OpDelete, Table: models.EntityTypeFile, ItemID: "f1", CreatedAt: time.Now(), Retries: 2},
	}

	require.NoError(t, store.SaveQueue(ctx, ops))

	got, err := store.LoadQueue(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// FIFO order survives the round trip
	assert.Equal(t, "op-1", got[0].ID)
	assert.Equal(t, "op-2", got[1].ID)
	assert.Equal(t, 2, got[1].Retries)
}

func TestStorage_LoadQueue_Empty(t *testing.T) {
	store := createTestStorage(t)

	ops, err := store.LoadQueue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestStorage_SaveQueue_ReplacesPrevious(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveQueue(ctx, []*models.Operation{
		{ID: "op-1", Kind: models.OpUpsert, Table: models.EntityTypeQuiz, ItemID: "q1"},
	}))
	require.NoError(t, store.SaveQueue(ctx, []*models.Operation{}))

	ops, err := store.LoadQueue(ctx)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestStorage_SessionLifecycle(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	session := &storage.Session{
		Username:     "ms_frizzle",
		UserID:       "user-1",
		ClientID:     "client-1",
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	require.NoError(t, store.DeleteSession(ctx))

	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestStorage_ClosedErrors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	store.db = nil

	ctx := context.Background()
	_, err = store.LoadQueue(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = store.GetSnapshot(ctx, models.EntityTypeQuiz)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
