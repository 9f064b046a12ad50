package handlers

import (
	"encoding/json"
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

// TombstonesHandler serves the deletion records that let devices propagate
// deletes past the offline window. Upserts are idempotent, so a device may
// retry a delete any number of times.
type TombstonesHandler struct {
	logger *slog.Logger
	stones storage.TombstoneStorage
}

// NewTombstonesHandler creates a handler backed by the given storage.
func NewTombstonesHandler(logger *slog.Logger, stones storage.TombstoneStorage) *TombstonesHandler {
	return &TombstonesHandler{
		logger: logger,
		stones: stones,
	}
}

// List handles GET /api/v1/tombstones.
func (h *TombstonesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := middleware.GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	stones, err := h.stones.ListTombstones(ctx, ownerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tombstones", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.TombstoneList{Tombstones: stones}, http.StatusOK)
}

// Put handles PUT /api/v1/tombstones. The owner comes from the token and the
// deletion time from the server clock, so clients cannot forge either.
func (h *TombstonesHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := middleware.GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PutTombstoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateEntityType(models.EntityType(req.ItemType)); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ItemID == "" {
		sendError(h.logger, w, "item_id is required", http.StatusBadRequest)
		return
	}

	ts := api.Tombstone{
		OwnerID:   ownerID,
		ItemType:  req.ItemType,
		ItemID:    req.ItemID,
		ClientID:  req.ClientID,
		DeletedAt: time.Now(),
	}
	if err := h.stones.UpsertTombstone(ctx, ts); err != nil {
		h.logger.ErrorContext(ctx, "failed to upsert tombstone",
			slog.String("item_type", ts.ItemType), slog.String("item_id", ts.ItemID), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "tombstone recorded",
		slog.String("item_type", ts.ItemType),
		slog.String("item_id", ts.ItemID))

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/tombstones/{type}/{id}. Used when an item is
// deliberately recreated: the tombstone must not shoot the new copy down.
func (h *TombstonesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := middleware.GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	itemType := chi.URLParam(r, "type")
	itemID := chi.URLParam(r, "id")
	if err := validation.ValidateEntityType(models.EntityType(itemType)); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	deleted, err := h.stones.DeleteTombstone(ctx, ownerID, itemType, itemID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete tombstone",
			slog.String("item_type", itemType), slog.String("item_id", itemID), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.DeleteResult{Deleted: deleted}, http.StatusOK)
}
