package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avdeyev/classpack/internal/models"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing type. Usage: classpack add <file|link|worksheet|quiz|folder|document>")
	}
	entityType, err := parseEntityType(args[0])
	if err != nil {
		return err
	}
	svc, err := c.manager.Service(entityType)
	if err != nil {
		return err
	}

	c.io.Printf("=== Add %s ===\n", args[0])
	c.io.Println()

	name, err := c.io.ReadInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	e := &models.Entity{Name: name}

	if entityType != models.EntityTypeFolder {
		folderID, err := c.io.ReadInput("Folder ID (empty for root): ")
		if err != nil {
			return fmt.Errorf("failed to read folder: %w", err)
		}
		e.FolderID = folderID
	}

	// Links get a dedicated prompt; everything else takes raw payload JSON.
	if entityType == models.EntityTypeLink {
		url, err := c.io.ReadInput("URL: ")
		if err != nil {
			return fmt.Errorf("failed to read url: %w", err)
		}
		payload, err := json.Marshal(map[string]string{"url": url})
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		e.Payload = payload
	} else {
		raw, err := c.io.ReadInput("Payload JSON (empty for {}): ")
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		if raw != "" {
			if !json.Valid([]byte(raw)) {
				return fmt.Errorf("payload is not valid JSON")
			}
			e.Payload = json.RawMessage(raw)
		}
	}

	if err := svc.Save(ctx, e); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Saved locally and queued for upload.")
	c.io.Printf("ID: %s\n", e.ID)
	return nil
}
