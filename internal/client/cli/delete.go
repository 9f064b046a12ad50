package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeyev/classpack/internal/client/content"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: classpack delete <type> <id>")
	}
	entityType, err := parseEntityType(args[0])
	if err != nil {
		return err
	}
	svc, err := c.manager.Service(entityType)
	if err != nil {
		return err
	}
	id := args[1]

	item, err := svc.Get(ctx, id)
	if err != nil && !errors.Is(err, content.ErrNotFound) {
		return err
	}
	if item != nil {
		answer, err := c.io.ReadInput(fmt.Sprintf("Delete '%s' on every device? [y/N]: ", item.Name))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if answer != "y" && answer != "Y" && answer != "yes" {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	if err := svc.Delete(ctx, id); err != nil {
		return err
	}

	c.io.Println("✓ Deleted locally and queued for remote deletion.")
	return nil
}
