package models

import "taxsync/core/platform"

// SyncAction tags a synchronization record.
type SyncAction string

const (
	// ActionCreate creates a new tax rate on the destination platform.
	ActionCreate SyncAction = "create"
	// ActionUpdate rewrites an existing destination tax rate.
	ActionUpdate SyncAction = "update"
	// ActionDelete removes an existing destination tax rate.
	ActionDelete SyncAction = "delete"
)

// SyncRecord is one create/update/delete instruction for the downstream
// apply step. The Rate is destination-shaped; for deletes it is the existing
// platform rate being removed.
type SyncRecord struct {
	Action              SyncAction       `json:"action"`
	Rate                platform.TaxRate `json:"rate"`
	DestinationServerID int              `json:"destination_server_id"`
}
