package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avdeyev/classpack/internal/client/storage"
	"github.com/avdeyev/classpack/internal/models"
)

// Reconciler pulls remote state and repairs the local snapshots.
type Reconciler interface {
	ReconcileAll(ctx context.Context) error
}

// Drainer pushes pending local mutations.
type Drainer interface {
	Drain(ctx context.Context) error
}

// Manager bundles one façade per entity type and drives full sync passes.
type Manager struct {
	byType     map[models.EntityType]*Service
	reconciler Reconciler
	drainer    Drainer
	logger     *slog.Logger
}

// NewManager builds a façade for every entity type over the shared snapshot
// store and queue.
func NewManager(
	snapshots storage.SnapshotStorage,
	queue Enqueuer,
	reconciler Reconciler,
	drainer Drainer,
	logger *slog.Logger,
) *Manager {
	byType := make(map[models.EntityType]*Service, len(models.AllEntityTypes))
	for _, t := range models.AllEntityTypes {
		byType[t] = NewService(t, snapshots, queue, logger)
	}
	return &Manager{
		byType:     byType,
		reconciler: reconciler,
		drainer:    drainer,
		logger:     logger,
	}
}

// Service returns the façade for the given entity type.
func (m *Manager) Service(t models.EntityType) (*Service, error) {
	svc, ok := m.byType[t]
	if !ok {
		return nil, fmt.Errorf("unknown entity type: %s", t)
	}
	return svc, nil
}

// SyncNow runs one full sync pass: pull and merge remote state, then push
// everything pending. The reconciler routes its own uploads through the
// queue, so the drain afterwards covers both direct user mutations and
// reconciliation repairs.
func (m *Manager) SyncNow(ctx context.Context) error {
	if err := m.reconciler.ReconcileAll(ctx); err != nil {
		return fmt.Errorf("failed to reconcile: %w", err)
	}
	if err := m.drainer.Drain(ctx); err != nil {
		return fmt.Errorf("failed to drain queue: %w", err)
	}
	return nil
}

// StartAutoSync runs SyncNow on a ticker until ctx is cancelled. A failing
// pass is logged and retried on the next tick.
func (m *Manager) StartAutoSync(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := m.SyncNow(ctx); err != nil {
			m.logger.Warn("sync pass failed", "error", err)
		}
	}
}
