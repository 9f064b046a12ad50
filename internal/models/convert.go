package models

import (
	"github.com/avdeyev/classpack/pkg/api"
)

// EntityFromRow maps a server row to the local entity shape.
func EntityFromRow(row api.Row) *Entity {
	return &Entity{
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		ID:        row.ID,
		OwnerID:   row.TeacherID,
		Type:      EntityType(row.ItemType),
		Name:      row.Name,
		FolderID:  row.FolderID,
		Payload:   row.Payload,
	}
}

// RowFromEntity maps a local entity to the server row shape.
func RowFromEntity(e *Entity) api.Row {
	return api.Row{
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		ID:        e.ID,
		TeacherID: e.OwnerID,
		ItemType:  string(e.Type),
		Name:      e.Name,
		FolderID:  e.FolderID,
		Payload:   e.Payload,
	}
}
