package tombstones

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	httpClient "github.com/avdeyev/classpack/internal/client/api"
	"github.com/avdeyev/classpack/internal/client/auth"
	"github.com/avdeyev/classpack/internal/models"
	pkgapi "github.com/avdeyev/classpack/pkg/api"
)

// DefaultCacheTTL is how long a fetched tombstone set is reused. All six
// entity types reconcile in the same burst; one fetch serves the whole pass.
const DefaultCacheTTL = 5 * time.Second

//go:generate moq -out client_mock.go . Client

// Client reads and writes deletion records. A tombstone is a durable fact
// ("this item was intentionally deleted") independent of whether the row
// delete has landed on every table yet.
type Client interface {
	// Fetch returns all tombstones for the owner. Results are cached for a
	// short TTL.
	Fetch(ctx context.Context, creds *auth.Credentials) ([]models.Tombstone, error)

	// Record upserts a deletion record. Idempotent: recording the same
	// deletion twice succeeds.
	Record(ctx context.Context, creds *auth.Credentials, itemType models.EntityType, itemID string) error

	// Clear removes a deletion record once the remote row is confirmed
	// gone. Failure is non-fatal; the record is reviewed again next sync.
	Clear(ctx context.Context, creds *auth.Credentials, itemType models.EntityType, itemID string) error
}

// client is the HTTP-backed Client with a single-owner TTL cache.
type client struct {
	fetchedAt   time.Time
	apiClient   httpClient.ClientAPI
	logger      *slog.Logger
	now         func() time.Time
	cachedOwner string
	cached      []models.Tombstone
	ttl         time.Duration
	mu          sync.Mutex
}

// Option configures the tombstone client.
type Option func(*client)

// WithCacheTTL overrides the fetch-cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *client) { c.ttl = ttl }
}

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *client) { c.now = now }
}

// NewClient creates a tombstone client.
func NewClient(apiClient httpClient.ClientAPI, logger *slog.Logger, opts ...Option) Client {
	c := &client{
		apiClient: apiClient,
		logger:    logger,
		ttl:       DefaultCacheTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns all tombstones for the owner, from cache when fresh.
func (c *client) Fetch(ctx context.Context, creds *auth.Credentials) ([]models.Tombstone, error) {
	c.mu.Lock()
	if c.cachedOwner == creds.UserID && c.now().Sub(c.fetchedAt) < c.ttl {
		cached := c.cached
		c.mu.Unlock()
		c.logger.Debug("tombstone fetch served from cache", "count", len(cached))
		return cached, nil
	}
	c.mu.Unlock()

	raw, err := c.apiClient.ListTombstones(ctx, creds.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tombstones: %w", err)
	}

	stones := make([]models.Tombstone, 0, len(raw))
	for _, t := range raw {
		stones = append(stones, models.Tombstone{
			OwnerID:   t.OwnerID,
			ItemType:  models.EntityType(t.ItemType),
			ItemID:    t.ItemID,
			DeletedAt: t.DeletedAt,
			ClientID:  t.ClientID,
		})
	}

	c.mu.Lock()
	c.cachedOwner = creds.UserID
	c.cached = stones
	c.fetchedAt = c.now()
	c.mu.Unlock()

	return stones, nil
}

// Record upserts a deletion record and invalidates the cache.
func (c *client) Record(ctx context.Context, creds *auth.Credentials, itemType models.EntityType, itemID string) error {
	err := c.apiClient.PutTombstone(ctx, creds.AccessToken, pkgapi.PutTombstoneRequest{
		ItemType: string(itemType),
		ItemID:   itemID,
		ClientID: creds.ClientID,
	})
	if err != nil {
		return fmt.Errorf("failed to record tombstone: %w", err)
	}

	c.invalidate()
	return nil
}

// Clear removes a deletion record and invalidates the cache.
func (c *client) Clear(ctx context.Context, creds *auth.Credentials, itemType models.EntityType, itemID string) error {
	if err := c.apiClient.DeleteTombstone(ctx, creds.AccessToken, itemType, itemID); err != nil {
		return fmt.Errorf("failed to clear tombstone: %w", err)
	}

	c.invalidate()
	return nil
}

func (c *client) invalidate() {
	c.mu.Lock()
	c.cachedOwner = ""
	c.cached = nil
	c.mu.Unlock()
}
