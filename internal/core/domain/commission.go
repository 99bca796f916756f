package domain

import (
	"fmt"
	"strings"
	"time"
)

// Commission is a job's collection of items to be picked, handed out and
// possibly returned.
type Commission struct {
	CommissionID        string             `json:"commissionID"`
	Name                string             `json:"name"`
	OrderNumber         string             `json:"orderNumber"`
	Notes               string             `json:"notes"`
	Status              CommissionStatus   `json:"status"`
	WarehouseID         string             `json:"warehouseID"`
	SupplierID          *string            `json:"supplierID"`
	SupplierOrderNumber *string            `json:"supplierOrderNumber"`
	WithdrawnAt         *time.Time         `json:"withdrawnAt"`
	DeletedAt           *time.Time         `json:"deletedAt"`
	NeedsLabel          bool               `json:"needsLabel"`
	IsProcessed         bool               `json:"isProcessed"` // office bookkeeping flag
	OfficeNotes         string             `json:"officeNotes"`
	LastScannedAt       *time.Time         `json:"lastScannedAt"`
	HasBeenFulfilled    bool               `json:"hasBeenFulfilled"` // stock already deducted in this lifecycle
	ReturnDisposition   *ReturnDisposition `json:"returnDisposition"`
	ReturnReason        string             `json:"returnReason"`
	ReturnRequestedAt   *time.Time         `json:"returnRequestedAt"`
	AuditFields
}

// IsDeleted reports whether the commission sits in the trash.
func (c *Commission) IsDeleted() bool {
	return c.DeletedAt != nil
}

// IsVerified reports whether the commission was scanned in the current audit round.
func (c *Commission) IsVerified() bool {
	return c.LastScannedAt != nil
}

// CheckInvariants validates the status-dependent fields.
func (c *Commission) CheckInvariants() error {
	if !c.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
	}
	if (c.WithdrawnAt != nil) != (c.Status == StatusWithdrawn) {
		return fmt.Errorf("%w: withdrawn_at must be set exactly while withdrawn (status %s)", ErrInvalidStatus, c.Status)
	}
	if c.Status.IsReturnTrack() && c.ReturnDisposition == nil {
		return fmt.Errorf("%w: return status %s without disposition", ErrInvalidStatus, c.Status)
	}
	return nil
}

// CommissionFilter narrows list queries. Deleted commissions are never part
// of a filtered list; the trash has its own query.
type CommissionFilter struct {
	WarehouseID string
	Statuses    []CommissionStatus
	Search      string // matched against name and order number
	NeedsLabel  *bool
	Limit       int
}

// Matches applies the filter in memory. Used by the in-memory store.
func (f CommissionFilter) Matches(c Commission) bool {
	if c.DeletedAt != nil {
		return false
	}
	if f.WarehouseID != "" && c.WarehouseID != f.WarehouseID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if s == c.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.NeedsLabel != nil && c.NeedsLabel != *f.NeedsLabel {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.OrderNumber), q) {
			return false
		}
	}
	return true
}
