package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing type. Usage: classpack list <files|links|worksheets|quizzes|folders|documents>")
	}
	entityType, err := parseEntityType(args[0])
	if err != nil {
		return err
	}
	svc, err := c.manager.Service(entityType)
	if err != nil {
		return err
	}

	items, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list: %w", err)
	}

	c.io.Printf("=== %s ===\n", entityType)
	c.io.Println()

	if len(items) == 0 {
		c.io.Println("Nothing here yet.")
		c.io.Printf("Use 'classpack add %s' to create the first one.\n", args[0])
		return nil
	}

	c.io.Printf("Found %d item(s):\n", len(items))
	c.io.Println()
	for i, item := range items {
		c.io.Printf("%d. %s\n", i+1, item.Name)
		c.io.Printf("   ID:      %s\n", item.ID)
		if item.FolderID != "" {
			c.io.Printf("   Folder:  %s\n", item.FolderID)
		}
		if !item.UpdatedAt.IsZero() {
			c.io.Printf("   Updated: %s\n", item.UpdatedAt.Format(time.RFC3339))
		}
		c.io.Println()
	}
	return nil
}
