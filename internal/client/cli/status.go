package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeyev/classpack/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	session, err := c.auth.Status(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'classpack login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to check session: %w", err)
	}

	expiresAt := time.Unix(session.ExpiresAt, 0)
	c.io.Println("Status: Authenticated")
	c.io.Printf("Username:      %s\n", session.Username)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
	if remaining := time.Until(expiresAt); remaining > 0 {
		c.io.Printf("Remaining:     %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("Token has expired; it will be refreshed on the next sync.")
	}

	pending, err := c.queue.Len(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pending queue: %w", err)
	}
	c.io.Println()
	if pending > 0 {
		c.io.Printf("Pending sync: %d change(s) waiting to be uploaded\n", pending)
		c.io.Println("Run 'classpack sync' to push them now.")
	} else {
		c.io.Println("✓ All changes synchronized")
	}
	return nil
}
