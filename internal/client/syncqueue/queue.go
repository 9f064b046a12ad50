// Package syncqueue delivers local mutations to the remote store: a durable,
// ordered queue that drains sequentially with retry and backoff, survives
// process restarts, and coalesces repeated mutations of the same item.
package syncqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	httpClient "github.com/avdeyev/classpack/internal/client/api"
	"github.com/avdeyev/classpack/internal/client/auth"
	"github.com/avdeyev/classpack/internal/client/storage"
	"github.com/avdeyev/classpack/internal/client/tombstones"
	"github.com/avdeyev/classpack/internal/models"
	pkgapi "github.com/avdeyev/classpack/pkg/api"
)

// Defaults for the retry policy. Tuned, not derived; override via Options.
const (
	DefaultMaxRetries  = 5
	DefaultBaseBackoff = 2 * time.Second
	DefaultMaxBackoff  = 5 * time.Minute
)

// Options configures the queue's retry policy and clock.
type Options struct {
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
	// MaxRetries is the number of failed attempts after which an operation
	// is dropped.
	MaxRetries int
	// BaseBackoff is the delay after the first failure; it doubles per
	// retry up to MaxBackoff.
	BaseBackoff time.Duration
	// MaxBackoff caps the computed delay; once reached, further failures
	// keep the delay at the cap.
	MaxBackoff time.Duration
}

func (o *Options) fillDefaults() {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.BaseBackoff <= 0 {
		o.BaseBackoff = DefaultBaseBackoff
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = DefaultMaxBackoff
	}
}

// Backoff returns the delay imposed after the given number of consecutive
// failures: BaseBackoff after the first, doubling per failure. Delays grow
// strictly until they reach MaxBackoff and stay constant at the cap from
// then on.
func (o *Options) Backoff(failures int) time.Duration {
	d := o.BaseBackoff
	for i := 1; i < failures; i++ {
		d *= 2
		if d >= o.MaxBackoff {
			return o.MaxBackoff
		}
	}
	return d
}

// Queue is the persisted sync queue. All state lives in QueueStorage; the
// queue holds no in-memory copy, so several processes sharing the same
// durable store always observe each other's drains.
type Queue struct {
	store       storage.QueueStorage
	apiClient   httpClient.ClientAPI
	tombstones  tombstones.Client
	credentials auth.CredentialsProvider
	logger      *slog.Logger
	kickC       chan struct{}
	subscribers []func(Event)
	opts        Options
	subMu       sync.Mutex
	enqueueMu   sync.Mutex
	draining    atomic.Bool
}

// New creates a sync queue.
func New(
	store storage.QueueStorage,
	apiClient httpClient.ClientAPI,
	tombstoneClient tombstones.Client,
	credentials auth.CredentialsProvider,
	logger *slog.Logger,
	opts Options,
) *Queue {
	opts.fillDefaults()
	return &Queue{
		store:       store,
		apiClient:   apiClient,
		tombstones:  tombstoneClient,
		credentials: credentials,
		logger:      logger,
		opts:        opts,
		kickC:       make(chan struct{}, 1),
	}
}

// Subscribe registers a callback for queue events. Callbacks run on the
// draining goroutine and must not block.
func (q *Queue) Subscribe(fn func(Event)) {
	q.subMu.Lock()
	q.subscribers = append(q.subscribers, fn)
	q.subMu.Unlock()
}

func (q *Queue) emit(ev Event) {
	q.subMu.Lock()
	subs := make([]func(Event), len(q.subscribers))
	copy(subs, q.subscribers)
	q.subMu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// EnqueueUpsert queues (or replaces) an upsert for (table, itemID) and
// triggers an asynchronous drain attempt.
func (q *Queue) EnqueueUpsert(ctx context.Context, table models.EntityType, itemID string, data json.RawMessage) error {
	return q.enqueue(ctx, &models.Operation{
		ID:        uuid.New().String(),
		Kind:      models.OpUpsert,
		Table:     table,
		ItemID:    itemID,
		Data:      data,
		CreatedAt: q.opts.Now(),
	})
}

// EnqueueDelete queues (or replaces) a delete for (table, itemID) and
// triggers an asynchronous drain attempt.
func (q *Queue) EnqueueDelete(ctx context.Context, table models.EntityType, itemID string) error {
	return q.enqueue(ctx, &models.Operation{
		ID:        uuid.New().String(),
		Kind:      models.OpDelete,
		Table:     table,
		ItemID:    itemID,
		CreatedAt: q.opts.Now(),
	})
}

// enqueue coalesces: the new operation replaces any pending one for the same
// (table, itemID), keeping that slot's queue position. Only the most recent
// local mutation per item is ever sent, so queue length is bounded by the
// number of distinct dirty items.
func (q *Queue) enqueue(ctx context.Context, op *models.Operation) error {
	n, replaced, err := q.append(ctx, op)
	if err != nil {
		return err
	}

	q.logger.Debug("operation enqueued",
		"kind", op.Kind, "table", op.Table, "item_id", op.ItemID, "coalesced", replaced)

	// Emitted after the queue mutex is released so a subscriber may call
	// back into the queue.
	q.emit(Event{Kind: EventQueueChanged, QueueLen: n})
	q.Kick()
	return nil
}

// append persists op under the queue mutex and reports the new length and
// whether an existing operation was coalesced away.
func (q *Queue) append(ctx context.Context, op *models.Operation) (int, bool, error) {
	q.enqueueMu.Lock()
	defer q.enqueueMu.Unlock()

	ops, err := q.store.LoadQueue(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("failed to load queue: %w", err)
	}

	replaced := false
	for i, existing := range ops {
		if existing.SameTarget(op) {
			ops[i] = op
			replaced = true
			break
		}
	}
	if !replaced {
		ops = append(ops, op)
	}

	if err := q.store.SaveQueue(ctx, ops); err != nil {
		return 0, false, fmt.Errorf("failed to persist queue: %w", err)
	}
	return len(ops), replaced, nil
}

// PendingDeletes returns the item ids of the table's queued deletes. The
// reconciler consults it to tell a delete still in flight from this device
// apart from an item re-created on another one.
func (q *Queue) PendingDeletes(ctx context.Context, table models.EntityType) (map[string]struct{}, error) {
	ops, err := q.store.LoadQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}
	ids := make(map[string]struct{})
	for _, op := range ops {
		if op.Table == table && op.Kind == models.OpDelete {
			ids[op.ItemID] = struct{}{}
		}
	}
	return ids, nil
}

// Len returns the number of pending operations.
func (q *Queue) Len(ctx context.Context) (int, error) {
	ops, err := q.store.LoadQueue(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load queue: %w", err)
	}
	return len(ops), nil
}

// Kick requests an asynchronous drain. Non-blocking; collapsed if one is
// already requested. Delivered to the StartAutoDrain runner.
func (q *Queue) Kick() {
	select {
	case q.kickC <- struct{}{}:
	default:
	}
}

// StartAutoDrain runs drain passes until ctx is cancelled: on a periodic
// ticker and on every Kick (enqueue, connectivity restore, app focus).
// Run it once per process.
func (q *Queue) StartAutoDrain(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-q.kickC:
		}

		if err := q.Drain(ctx); err != nil {
			q.logger.Warn("drain pass failed", "error", err)
		}
	}
}

// Drain processes the queue head-first until it is empty, an item fails, or
// the head is still inside its backoff window. Concurrent calls observe the
// in-progress drain and return immediately: the timer, a focus event and an
// explicit call may all fire at once and must not start parallel passes.
//
// Order is strict FIFO. A head item that keeps failing blocks everything
// behind it until it succeeds or exhausts its retries; reordering would break
// the per-item commit order guarantee.
func (q *Queue) Drain(ctx context.Context) error {
	if !q.draining.CompareAndSwap(false, true) {
		q.logger.Debug("drain already in progress")
		return nil
	}
	defer q.draining.Store(false)

	// Auth is re-resolved on every pass: tokens expire and rotate.
	creds, err := q.credentials.Credentials(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			// Offline/no session is a deferred state, not an error.
			q.logger.Debug("drain skipped: not authenticated")
			return nil
		}
		return fmt.Errorf("failed to resolve credentials: %w", err)
	}

	for {
		// Reload the head from durable storage every iteration: another
		// process may have drained or enqueued since we last looked.
		op, err := q.head(ctx)
		if err != nil {
			return err
		}
		if op == nil {
			return nil
		}

		if wait := q.notBefore(op); wait > 0 {
			q.logger.Debug("head operation inside backoff window",
				"item_id", op.ItemID, "retries", op.Retries, "wait", wait)
			return nil
		}

		if sendErr := q.send(ctx, creds, op); sendErr != nil {
			op.Retries++
			op.LastAttempt = q.opts.Now()
			op.LastError = sendErr.Error()

			if op.Retries >= q.opts.MaxRetries {
				// Bounded retries: abandon the operation rather than
				// retry forever, and surface it loudly.
				n, err := q.remove(ctx, op.ID)
				if err != nil {
					return fmt.Errorf("failed to persist queue after drop: %w", err)
				}
				q.logger.Error("operation dropped after max retries",
					"kind", op.Kind, "table", op.Table, "item_id", op.ItemID,
					"retries", op.Retries, "error", sendErr)
				q.emit(Event{
					Kind:      EventOperationDropped,
					Operation: op,
					LastError: op.LastError,
					QueueLen:  n,
				})
				q.emit(Event{Kind: EventQueueChanged, QueueLen: n})
				return nil
			}

			if err := q.update(ctx, op); err != nil {
				return fmt.Errorf("failed to persist queue after failure: %w", err)
			}
			q.logger.Warn("operation failed, will retry",
				"kind", op.Kind, "table", op.Table, "item_id", op.ItemID,
				"retries", op.Retries, "error", sendErr)
			return nil
		}

		n, err := q.remove(ctx, op.ID)
		if err != nil {
			return fmt.Errorf("failed to persist queue after send: %w", err)
		}
		q.logger.Debug("operation delivered",
			"kind", op.Kind, "table", op.Table, "item_id", op.ItemID)
		q.emit(Event{Kind: EventQueueChanged, QueueLen: n})
	}
}

// head returns the first pending operation, or nil when the queue is empty.
func (q *Queue) head(ctx context.Context) (*models.Operation, error) {
	q.enqueueMu.Lock()
	defer q.enqueueMu.Unlock()

	ops, err := q.store.LoadQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}
	if len(ops) == 0 {
		return nil, nil
	}
	return ops[0], nil
}

// remove deletes the operation with the given id and returns the new length.
// Matching by operation id, not target: a coalescing enqueue during the send
// replaces the operation under a fresh id, and that newer mutation must not
// be popped by its predecessor's success.
func (q *Queue) remove(ctx context.Context, opID string) (int, error) {
	q.enqueueMu.Lock()
	defer q.enqueueMu.Unlock()

	ops, err := q.store.LoadQueue(ctx)
	if err != nil {
		return 0, err
	}
	for i, existing := range ops {
		if existing.ID == opID {
			ops = append(ops[:i], ops[i+1:]...)
			break
		}
	}
	if err := q.store.SaveQueue(ctx, ops); err != nil {
		return 0, err
	}
	return len(ops), nil
}

// update rewrites the stored copy of op (retry bookkeeping) if it is still
// queued.
func (q *Queue) update(ctx context.Context, op *models.Operation) error {
	q.enqueueMu.Lock()
	defer q.enqueueMu.Unlock()

	ops, err := q.store.LoadQueue(ctx)
	if err != nil {
		return err
	}
	for i, existing := range ops {
		if existing.ID == op.ID {
			ops[i] = op
			break
		}
	}
	return q.store.SaveQueue(ctx, ops)
}

// notBefore returns how long the operation must still wait before its next
// attempt, zero if it is eligible now.
func (q *Queue) notBefore(op *models.Operation) time.Duration {
	if op.Retries == 0 || op.LastAttempt.IsZero() {
		return 0
	}
	eligibleAt := op.LastAttempt.Add(q.opts.Backoff(op.Retries))
	return eligibleAt.Sub(q.opts.Now())
}

// send performs one delivery attempt.
func (q *Queue) send(ctx context.Context, creds *auth.Credentials, op *models.Operation) error {
	switch op.Kind {
	case models.OpDelete:
		return q.sendDelete(ctx, creds, op)
	case models.OpUpsert:
		return q.sendUpsert(ctx, creds, op)
	default:
		return fmt.Errorf("unknown operation kind: %s", op.Kind)
	}
}

// sendDelete writes the tombstone first (best effort), then deletes the row.
// Zero rows deleted is success: the item was already absent remotely.
func (q *Queue) sendDelete(ctx context.Context, creds *auth.Credentials, op *models.Operation) error {
	// A failed tombstone write must not block the delete itself. The cost
	// of proceeding without it is a documented weaker guarantee: another
	// device may re-upload the item if the row delete also races.
	if err := q.tombstones.Record(ctx, creds, op.Table, op.ItemID); err != nil {
		q.logger.Warn("tombstone write failed, proceeding with delete",
			"table", op.Table, "item_id", op.ItemID, "error", err)
	}

	deleted, err := q.apiClient.DeleteRow(ctx, creds.AccessToken, op.Table, op.ItemID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		q.logger.Debug("remote row already absent", "table", op.Table, "item_id", op.ItemID)
	}
	return nil
}

// sendUpsert tries an update by id; zero rows matched falls back to an
// insert. A duplicate-key conflict on the insert means another writer
// already created the row, which is success, not an error.
func (q *Queue) sendUpsert(ctx context.Context, creds *auth.Credentials, op *models.Operation) error {
	var row pkgapi.Row
	if err := json.Unmarshal(op.Data, &row); err != nil {
		return fmt.Errorf("malformed operation data: %w", err)
	}
	row.ID = op.ItemID
	row.TeacherID = creds.UserID
	row.ItemType = string(op.Table)

	matched, err := q.apiClient.UpdateRow(ctx, creds.AccessToken, op.Table, row)
	if err != nil {
		return err
	}

	if matched == 0 {
		if err := q.apiClient.InsertRow(ctx, creds.AccessToken, op.Table, row); err != nil {
			if !errors.Is(err, httpClient.ErrDuplicateKey) {
				return err
			}
			q.logger.Debug("insert conflicted, row already exists",
				"table", op.Table, "item_id", op.ItemID)
		}
	}

	// The item now exists remotely again; retire any tombstone so other
	// devices do not purge a deliberately re-created item. Best effort.
	if err := q.tombstones.Clear(ctx, creds, op.Table, op.ItemID); err != nil {
		q.logger.Debug("tombstone clear after upsert failed",
			"table", op.Table, "item_id", op.ItemID, "error", err)
	}

	return nil
}
