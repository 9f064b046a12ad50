package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avdeyev/classpack/internal/models"
	"github.com/avdeyev/classpack/internal/server/middleware"
	"github.com/avdeyev/classpack/internal/server/storage"
	"github.com/avdeyev/classpack/internal/validation"
	"github.com/avdeyev/classpack/pkg/api"
)

// RowsHandler serves per-collection CRUD over content rows. The owner is
// always the authenticated user; the TeacherID carried in request bodies is
// ignored and overwritten from the token.
type RowsHandler struct {
	logger *slog.Logger
	rows   storage.RowStorage
}

// NewRowsHandler creates a handler backed by the given row storage.
func NewRowsHandler(logger *slog.Logger, rows storage.RowStorage) *RowsHandler {
	return &RowsHandler{
		logger: logger,
		rows:   rows,
	}
}

// List handles GET /api/v1/rows/{table}.
func (h *RowsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, table, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	rows, err := h.rows.ListRows(ctx, ownerID, table)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list rows",
			slog.String("table", table), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.RowList{Rows: rows}, http.StatusOK)
}

// Insert handles POST /api/v1/rows/{table}.
func (h *RowsHandler) Insert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, table, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	row, ok := h.decodeRow(w, r, ownerID, table)
	if !ok {
		return
	}

	if err := h.rows.InsertRow(ctx, row); err != nil {
		if errors.Is(err, storage.ErrRowAlreadyExists) {
			sendError(h.logger, w, "row already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to insert row",
			slog.String("table", table), slog.String("id", row.ID), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, row, http.StatusCreated)
}

// Update handles PATCH /api/v1/rows/{table}/{id}. A miss is reported as
// matched=0, never as an HTTP error; the client falls back to an insert.
func (h *RowsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, table, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	row, ok := h.decodeRow(w, r, ownerID, table)
	if !ok {
		return
	}
	row.ID = id

	matched, err := h.rows.UpdateRow(ctx, row)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update row",
			slog.String("table", table), slog.String("id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.UpdateResult{Matched: matched}, http.StatusOK)
}

// Delete handles DELETE /api/v1/rows/{table}/{id}. Deleting an absent row
// reports deleted=0 and succeeds.
func (h *RowsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, table, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	deleted, err := h.rows.DeleteRow(ctx, ownerID, table, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete row",
			slog.String("table", table), slog.String("id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.DeleteResult{Deleted: deleted}, http.StatusOK)
}

// requestScope extracts the authenticated owner and the validated table name.
func (h *RowsHandler) requestScope(w http.ResponseWriter, r *http.Request) (ownerID, table string, ok bool) {
	ownerID, found := middleware.GetUserID(r.Context())
	if !found {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	table = chi.URLParam(r, "table")
	if err := validation.ValidateEntityType(models.EntityType(table)); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}
	return ownerID, table, true
}

// decodeRow parses the request body and pins owner, type and timestamps.
func (h *RowsHandler) decodeRow(w http.ResponseWriter, r *http.Request, ownerID, table string) (api.Row, bool) {
	var row api.Row
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return api.Row{}, false
	}
	if row.ID == "" {
		sendError(h.logger, w, "id is required", http.StatusBadRequest)
		return api.Row{}, false
	}
	if err := validation.ValidateItemName(row.Name); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return api.Row{}, false
	}

	row.TeacherID = ownerID
	row.ItemType = table
	if len(row.Payload) == 0 {
		row.Payload = json.RawMessage(`{}`)
	}
	now := time.Now()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now
	return row, true
}
