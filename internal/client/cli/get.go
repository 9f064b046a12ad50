package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: classpack get <type> <id>")
	}
	entityType, err := parseEntityType(args[0])
	if err != nil {
		return err
	}
	svc, err := c.manager.Service(entityType)
	if err != nil {
		return err
	}

	item, err := svc.Get(ctx, args[1])
	if err != nil {
		return err
	}

	c.io.Println("=== Item Details ===")
	c.io.Println()
	c.io.Printf("Name:    %s\n", item.Name)
	c.io.Printf("ID:      %s\n", item.ID)
	c.io.Printf("Type:    %s\n", item.Type)
	if item.FolderID != "" {
		c.io.Printf("Folder:  %s\n", item.FolderID)
	}
	if !item.CreatedAt.IsZero() {
		c.io.Printf("Created: %s\n", item.CreatedAt.Format(time.RFC3339))
	}
	if !item.UpdatedAt.IsZero() {
		c.io.Printf("Updated: %s\n", item.UpdatedAt.Format(time.RFC3339))
	}

	if len(item.Payload) > 0 && string(item.Payload) != "{}" {
		var pretty json.RawMessage = item.Payload
		formatted, err := json.MarshalIndent(pretty, "", "  ")
		if err == nil {
			c.io.Println()
			c.io.Println("Payload:")
			c.io.Printf("%s\n", formatted)
		}
	}
	return nil
}
