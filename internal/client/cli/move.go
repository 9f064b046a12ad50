package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runMove(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: classpack move <type> <id> [folder-id]")
	}
	entityType, err := parseEntityType(args[0])
	if err != nil {
		return err
	}
	svc, err := c.manager.Service(entityType)
	if err != nil {
		return err
	}

	folderID := ""
	if len(args) > 2 {
		folderID = args[2]
	}

	if err := svc.MoveToFolder(ctx, args[1], folderID); err != nil {
		return err
	}

	if folderID == "" {
		c.io.Println("✓ Moved to the root.")
	} else {
		c.io.Printf("✓ Moved into folder %s.\n", folderID)
	}
	return nil
}
