package domain

import "time"

// EventAction is the keyword stored with each commission event.
type EventAction string

const (
	ActionCreated              EventAction = "created"
	ActionUpdated              EventAction = "updated"
	ActionItemAdded            EventAction = "item_added"
	ActionItemUpdated          EventAction = "item_updated"
	ActionItemRemoved          EventAction = "item_removed"
	ActionItemPicked           EventAction = "item_picked"
	ActionItemUnpicked         EventAction = "item_unpicked"
	ActionBackorderSet         EventAction = "backorder_set"
	ActionBackorderCleared     EventAction = "backorder_cleared"
	ActionStatusChanged        EventAction = "status_changed"
	ActionReturnInitiated      EventAction = "return_initiated"
	ActionReturnLabelGenerated EventAction = "return_label_generated"
	ActionLabelsPrinted        EventAction = "labels_printed"
	ActionLabelQueued          EventAction = "label_queued"
	ActionOfficeProcessed      EventAction = "office_processed"
	ActionAuditScanned         EventAction = "audit_scanned"
	ActionAuditReset           EventAction = "audit_reset"
	ActionDeleted              EventAction = "deleted"
	ActionRestored             EventAction = "restored"
)

// CommissionEvent is an append-only audit trail entry. The commission name is
// copied in so the entry stays readable after the commission is purged.
type CommissionEvent struct {
	EventID        string      `json:"eventID"`
	CommissionID   string      `json:"commissionID"`
	CommissionName string      `json:"commissionName"`
	UserID         string      `json:"userID"`
	Action         EventAction `json:"action"`
	Details        string      `json:"details"`
	CreatedAt      time.Time   `json:"createdAt"`
}
