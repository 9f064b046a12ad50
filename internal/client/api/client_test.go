package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeyev/classpack/internal/models"
	pkgapi "github.com/avdeyev/classpack/pkg/api"
)

func TestClient_ListRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/rows/quizzes", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		resp := pkgapi.RowList{Rows: []pkgapi.Row{
			{ID: "q1", TeacherID: "user-1", ItemType: "quizzes", Name: "Fractions"},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	rows, err := client.ListRows(context.Background(), "token-1", models.EntityTypeQuiz)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "q1", rows[0].ID)
}

func TestClient_InsertRow_DuplicateKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Error: "duplicate key"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.InsertRow(context.Background(), "token-1", models.EntityTypeFile, pkgapi.Row{ID: "f1"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestClient_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.ListRows(context.Background(), "stale", models.EntityTypeFile)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_UpdateRow_ReportsMatched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/rows/worksheets/w1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(pkgapi.UpdateResult{Matched: 0})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	matched, err := client.UpdateRow(context.Background(), "token-1", models.EntityTypeWorksheet, pkgapi.Row{ID: "w1"})
	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestClient_DeleteRow_ZeroRowsIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_ = json.NewEncoder(w).Encode(pkgapi.DeleteResult{Deleted: 0})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	deleted, err := client.DeleteRow(context.Background(), "token-1", models.EntityTypeLink, "gone")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestClient_TombstoneEndpoints(t *testing.T) {
	var gotPut pkgapi.PutTombstoneRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/tombstones":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPut))
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/tombstones":
			_ = json.NewEncoder(w).Encode(pkgapi.TombstoneList{Tombstones: []pkgapi.Tombstone{
				{OwnerID: "user-1", ItemType: "quizzes", ItemID: "q1"},
			}})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/tombstones/quizzes/q1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	err := client.PutTombstone(ctx, "token-1", pkgapi.PutTombstoneRequest{
		ItemType: "quizzes", ItemID: "q1", ClientID: "client-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "q1", gotPut.ItemID)

	stones, err := client.ListTombstones(ctx, "token-1")
	require.NoError(t, err)
	require.Len(t, stones, 1)
	assert.Equal(t, "q1", stones[0].ItemID)

	require.NoError(t, client.DeleteTombstone(ctx, "token-1", models.EntityTypeQuiz, "q1"))
}

func TestClient_ServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Error: "database unavailable"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.ListRows(context.Background(), "token-1", models.EntityTypeQuiz)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}
