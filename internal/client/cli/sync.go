package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()
	c.io.Println("Syncing with server...")

	if err := c.manager.SyncNow(ctx); err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	pending, err := c.queue.Len(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pending queue: %w", err)
	}

	c.io.Println()
	if pending == 0 {
		c.io.Println("✓ Everything is in sync.")
	} else {
		c.io.Printf("Sync pass finished; %d change(s) still pending (will retry).\n", pending)
	}
	return nil
}
