package models

import "time"

// AuditFields holds the common audit columns.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Commission is the row shape of the commissions table.
type Commission struct {
	CommissionID        string     `db:"commission_id"`
	Name                string     `db:"name"`
	OrderNumber         string     `db:"order_number"`
	Notes               string     `db:"notes"`
	Status              string     `db:"status"`
	WarehouseID         string     `db:"warehouse_id"`
	SupplierID          *string    `db:"supplier_id"`
	SupplierOrderNumber *string    `db:"supplier_order_number"`
	WithdrawnAt         *time.Time `db:"withdrawn_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
	NeedsLabel          bool       `db:"needs_label"`
	IsProcessed         bool       `db:"is_processed"`
	OfficeNotes         string     `db:"office_notes"`
	LastScannedAt       *time.Time `db:"last_scanned_at"`
	HasBeenFulfilled    bool       `db:"has_been_fulfilled"`
	ReturnDisposition   *string    `db:"return_disposition"`
	ReturnReason        string     `db:"return_reason"`
	ReturnRequestedAt   *time.Time `db:"return_requested_at"`
	AuditFields
}

// CommissionItem is the row shape of the commission_items table.
type CommissionItem struct {
	ItemID            string  `db:"item_id"`
	CommissionID      string  `db:"commission_id"`
	ItemType          string  `db:"item_type"`
	ArticleID         *string `db:"article_id"`
	CustomName        string  `db:"custom_name"`
	ExternalReference string  `db:"external_reference"`
	Amount            int     `db:"amount"`
	IsPicked          bool    `db:"is_picked"`
	IsBackorder       bool    `db:"is_backorder"`
	Notes             string  `db:"notes"`
	AttachmentData    *string `db:"attachment_data"`
}

// CommissionEvent is the row shape of the commission_events table.
type CommissionEvent struct {
	EventID        string    `db:"event_id"`
	CommissionID   string    `db:"commission_id"`
	CommissionName string    `db:"commission_name"`
	UserID         string    `db:"user_id"`
	Action         string    `db:"action"`
	Details        string    `db:"details"`
	CreatedAt      time.Time `db:"created_at"`
}
