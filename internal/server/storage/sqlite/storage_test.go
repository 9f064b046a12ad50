package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/classpack/internal/models"
	"github.com/avdeyev/classpack/internal/server/storage"
	"github.com/avdeyev/classpack/pkg/api"
)

func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func createTestUser(t *testing.T, s *Storage, id, username string) {
	t.Helper()

	err := s.CreateUser(context.Background(), &models.User{
		ID:           id,
		Username:     username,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
}

func testRow(ownerID, id, itemType, name string) api.Row {
	now := time.Now().Truncate(time.Second)
	return api.Row{
		ID:        id,
		TeacherID: ownerID,
		ItemType:  itemType,
		Name:      name,
		Payload:   json.RawMessage(`{"v":1}`),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStorage_Users(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()

	createTestUser(t, s, "user-1", "alice_teacher")

	user, err := s.GetUserByUsername(ctx, "alice_teacher")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, user.PasswordHash)

	byID, err := s.GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "alice_teacher", byID.Username)

	// duplicate username
	err = s.CreateUser(ctx, &models.User{
		ID:           "user-2",
		Username:     "alice_teacher",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	})
	require.ErrorIs(t, err, storage.ErrUserAlreadyExists)

	_, err = s.GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestStorage_RefreshTokens(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice_teacher")

	token := &models.RefreshToken{
		Token:     "tok-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveRefreshToken(ctx, token))

	got, err := s.GetRefreshToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.False(t, got.IsExpired())

	require.NoError(t, s.DeleteRefreshToken(ctx, "tok-1"))
	_, err = s.GetRefreshToken(ctx, "tok-1")
	require.ErrorIs(t, err, storage.ErrTokenNotFound)

	err = s.DeleteRefreshToken(ctx, "tok-1")
	require.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestStorage_DeleteExpiredTokens(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice_teacher")

	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     "expired",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}))
	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     "valid",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	n, err := s.DeleteExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.GetRefreshToken(ctx, "valid")
	require.NoError(t, err)
}

func TestStorage_RowsCRUD(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice_teacher")

	row := testRow("user-1", "q1", "quizzes", "fractions")
	require.NoError(t, s.InsertRow(ctx, row))

	// duplicate (owner, id)
	err := s.InsertRow(ctx, row)
	require.ErrorIs(t, err, storage.ErrRowAlreadyExists)

	rows, err := s.ListRows(ctx, "user-1", "quizzes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fractions", rows[0].Name)
	assert.JSONEq(t, `{"v":1}`, string(rows[0].Payload))

	row.Name = "fractions v2"
	row.UpdatedAt = time.Now()
	matched, err := s.UpdateRow(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	rows, err = s.ListRows(ctx, "user-1", "quizzes")
	require.NoError(t, err)
	assert.Equal(t, "fractions v2", rows[0].Name)

	// update of a missing row matches nothing
	missing := testRow("user-1", "nope", "quizzes", "ghost")
	matched, err = s.UpdateRow(ctx, missing)
	require.NoError(t, err)
	assert.Zero(t, matched)

	deleted, err := s.DeleteRow(ctx, "user-1", "quizzes", "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// second delete is a no-op, not an error
	deleted, err = s.DeleteRow(ctx, "user-1", "quizzes", "q1")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestStorage_RowsOwnerIsolation(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice_teacher")
	createTestUser(t, s, "user-2", "bob_teacher")

	require.NoError(t, s.InsertRow(ctx, testRow("user-1", "q1", "quizzes", "alice quiz")))
	require.NoError(t, s.InsertRow(ctx, testRow("user-2", "q1", "quizzes", "bob quiz")))

	rows, err := s.ListRows(ctx, "user-1", "quizzes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice quiz", rows[0].Name)

	// one owner's delete never reaches the other's row with the same id
	deleted, err := s.DeleteRow(ctx, "user-1", "quizzes", "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	rows, err = s.ListRows(ctx, "user-2", "quizzes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestStorage_RowsTypeIsolation(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice_teacher")

	require.NoError(t, s.InsertRow(ctx, testRow("user-1", "a", "quizzes", "quiz")))
	require.NoError(t, s.InsertRow(ctx, testRow("user-1", "b", "worksheets", "sheet")))

	quizzes, err := s.ListRows(ctx, "user-1", "quizzes")
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "quiz", quizzes[0].Name)
}

func TestStorage_Tombstones(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice_teacher")

	ts := api.Tombstone{
		OwnerID:   "user-1",
		ItemType:  "quizzes",
		ItemID:    "q1",
		ClientID:  "device-a",
		DeletedAt: time.Now().Truncate(time.Second),
	}
	require.NoError(t, s.UpsertTombstone(ctx, ts))

	// same target again from another device: still one record
	ts.ClientID = "device-b"
	require.NoError(t, s.UpsertTombstone(ctx, ts))

	list, err := s.ListTombstones(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "device-b", list[0].ClientID)

	deleted, err := s.DeleteTombstone(ctx, "user-1", "quizzes", "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = s.DeleteTombstone(ctx, "user-1", "quizzes", "q1")
	require.NoError(t, err)
	assert.Zero(t, deleted)

	list, err = s.ListTombstones(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
