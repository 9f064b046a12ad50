package cli

import (
	"context"
	"time"

	"github.com/avdeyev/classpack/internal/client/syncqueue"
)

const watchInterval = 30 * time.Second

// runWatch keeps the client syncing until the context is cancelled. Queue
// events are printed as they happen so the terminal doubles as a sync
// monitor.
func (c *Cli) runWatch(ctx context.Context) error {
	c.io.Println("Watching for changes. Press Ctrl+C to stop.")
	c.io.Println()

	c.queue.Subscribe(func(ev syncqueue.Event) {
		switch ev.Kind {
		case syncqueue.EventQueueChanged:
			c.io.Printf("[%s] pending: %d\n", time.Now().Format("15:04:05"), ev.QueueLen)
		case syncqueue.EventOperationDropped:
			c.io.Printf("[%s] FAILED to sync %s %s after repeated retries: %s\n",
				time.Now().Format("15:04:05"), ev.Operation.Table, ev.Operation.ItemID, ev.LastError)
			c.io.Println("This change exists only on this device now.")
		}
	})

	go c.queue.StartAutoDrain(ctx, watchInterval)

	if err := c.manager.SyncNow(ctx); err != nil {
		c.io.Printf("initial sync failed: %v (will retry)\n", err)
	}
	c.manager.StartAutoSync(ctx, watchInterval)
	return nil
}
