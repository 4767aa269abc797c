package domain

import "time"

// Inventory change actions carried on InventoryChangedEvent.
const (
	ChangeActionCreated = "created"
	ChangeActionUpdated = "updated"
	ChangeActionDeleted = "deleted"
)

// InventoryChangedEvent marks that the catalog changed. Consumers re-query
// current state; the event carries no diff.
type InventoryChangedEvent struct {
	ItemID    string    `json:"item_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
