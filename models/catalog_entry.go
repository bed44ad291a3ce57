package models

import "github.com/google/uuid"

// CatalogEntry is the flattened display record of an application joined
// with its developer and asset bundle.
type CatalogEntry struct {
	ID          uint      `json:"id"`
	UUID        uuid.UUID `json:"uuid"`
	Name        string    `json:"name"`
	Developer   string    `json:"developer"`
	Icon        string    `json:"icon"`
	Installed   bool      `json:"installed"`
	Description string    `json:"description"`
	Downloads   int64     `json:"downloads"`
}
