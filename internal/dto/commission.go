package dto

import (
	"time"

	"github.com/SscSPs/commission_app/internal/core/domain"
)

// --- Commission DTOs ---

// CreateCommissionRequest defines data for creating a new commission.
type CreateCommissionRequest struct {
	Name                string              `json:"name" binding:"required,max=200"`
	OrderNumber         string              `json:"orderNumber" binding:"max=100"`
	Notes               string              `json:"notes"`
	WarehouseID         string              `json:"warehouseID" binding:"required"`
	SupplierID          *string             `json:"supplierID,omitempty"`
	SupplierOrderNumber *string             `json:"supplierOrderNumber,omitempty"`
	Items               []CreateItemRequest `json:"items" binding:"dive"`
}

// UpdateCommissionRequest carries optional detail edits; nil fields stay unchanged.
type UpdateCommissionRequest struct {
	Name                *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	OrderNumber         *string `json:"orderNumber,omitempty" binding:"omitempty,max=100"`
	Notes               *string `json:"notes,omitempty"`
	SupplierID          *string `json:"supplierID,omitempty"`
	SupplierOrderNumber *string `json:"supplierOrderNumber,omitempty"`
}

// OfficeRequest sets the office bookkeeping flag.
type OfficeRequest struct {
	IsProcessed bool   `json:"isProcessed"`
	OfficeNotes string `json:"officeNotes"`
}

// CommissionResponse defines data returned for a commission.
type CommissionResponse struct {
	CommissionID        string                    `json:"commissionID"`
	Name                string                    `json:"name"`
	OrderNumber         string                    `json:"orderNumber"`
	Notes               string                    `json:"notes"`
	Status              domain.CommissionStatus   `json:"status"`
	StatusLabel         string                    `json:"statusLabel"`
	WarehouseID         string                    `json:"warehouseID"`
	SupplierID          *string                   `json:"supplierID,omitempty"`
	SupplierOrderNumber *string                   `json:"supplierOrderNumber,omitempty"`
	WithdrawnAt         *time.Time                `json:"withdrawnAt,omitempty"`
	DeletedAt           *time.Time                `json:"deletedAt,omitempty"`
	NeedsLabel          bool                      `json:"needsLabel"`
	IsProcessed         bool                      `json:"isProcessed"`
	OfficeNotes         string                    `json:"officeNotes"`
	LastScannedAt       *time.Time                `json:"lastScannedAt,omitempty"`
	HasBeenFulfilled    bool                      `json:"hasBeenFulfilled"`
	ReturnDisposition   *domain.ReturnDisposition `json:"returnDisposition,omitempty"`
	ReturnReason        string                    `json:"returnReason,omitempty"`
	ReturnRequestedAt   *time.Time                `json:"returnRequestedAt,omitempty"`
	CreatedAt           time.Time                 `json:"createdAt"`
	CreatedBy           string                    `json:"createdBy"`
	LastUpdatedAt       time.Time                 `json:"lastUpdatedAt"`
	LastUpdatedBy       string                    `json:"lastUpdatedBy"`
	Items               []ItemResponse            `json:"items,omitempty"`
	Summary             *domain.PickSummary       `json:"summary,omitempty"`
}

// ToCommissionResponse converts domain.Commission to DTO.
func ToCommissionResponse(c *domain.Commission) CommissionResponse {
	return CommissionResponse{
		CommissionID:        c.CommissionID,
		Name:                c.Name,
		OrderNumber:         c.OrderNumber,
		Notes:               c.Notes,
		Status:              c.Status,
		StatusLabel:         c.Status.Label(),
		WarehouseID:         c.WarehouseID,
		SupplierID:          c.SupplierID,
		SupplierOrderNumber: c.SupplierOrderNumber,
		WithdrawnAt:         c.WithdrawnAt,
		DeletedAt:           c.DeletedAt,
		NeedsLabel:          c.NeedsLabel,
		IsProcessed:         c.IsProcessed,
		OfficeNotes:         c.OfficeNotes,
		LastScannedAt:       c.LastScannedAt,
		HasBeenFulfilled:    c.HasBeenFulfilled,
		ReturnDisposition:   c.ReturnDisposition,
		ReturnReason:        c.ReturnReason,
		ReturnRequestedAt:   c.ReturnRequestedAt,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
		LastUpdatedAt:       c.LastUpdatedAt,
		LastUpdatedBy:       c.LastUpdatedBy,
	}
}

// ToCommissionDetailResponse includes the item lines.
func ToCommissionDetailResponse(c *domain.CommissionWithItems) CommissionResponse {
	resp := ToCommissionResponse(&c.Commission)
	resp.Items = ToItemResponses(c.Items)
	summary := c.Summary
	resp.Summary = &summary
	return resp
}

// ListCommissionsResponse wraps a list of commissions.
type ListCommissionsResponse struct {
	Commissions []CommissionResponse `json:"commissions"`
}

// ToListCommissionsResponse converts a slice of domain.Commission to DTO.
func ToListCommissionsResponse(cs []domain.Commission) ListCommissionsResponse {
	list := make([]CommissionResponse, len(cs))
	for i := range cs {
		list[i] = ToCommissionResponse(&cs[i])
	}
	return ListCommissionsResponse{Commissions: list}
}

// TransitionResponse is returned by status changes that touch stock.
type TransitionResponse struct {
	Commission CommissionResponse        `json:"commission"`
	OldStatus  domain.CommissionStatus   `json:"oldStatus"`
	NewStatus  domain.CommissionStatus   `json:"newStatus"`
	Deductions []domain.DeductionOutcome `json:"deductions"`
}

// ToTransitionResponse converts domain.TransitionResult to DTO.
func ToTransitionResponse(r *domain.TransitionResult) TransitionResponse {
	deductions := r.Deductions
	if deductions == nil {
		deductions = []domain.DeductionOutcome{}
	}
	return TransitionResponse{
		Commission: ToCommissionResponse(&r.Commission),
		OldStatus:  r.OldStatus,
		NewStatus:  r.NewStatus,
		Deductions: deductions,
	}
}

// InitiateReturnRequest starts the storno workflow.
type InitiateReturnRequest struct {
	Disposition string `json:"disposition" binding:"required,oneof=restock return_supplier"`
	Reason      string `json:"reason" binding:"max=500"`
}

// ReturnReadyResponse carries the commission and its freshly generated return label.
type ReturnReadyResponse struct {
	Commission CommissionResponse `json:"commission"`
	Label      domain.ReturnLabel `json:"label"`
}

// ListCommissionsParams defines query parameters for listing commissions.
type ListCommissionsParams struct {
	WarehouseID string   `form:"warehouseID"`
	Status      []string `form:"status"`
	Query       string   `form:"q" binding:"max=200"`
	NeedsLabel  *bool    `form:"needsLabel"`
	Limit       int      `form:"limit" binding:"omitempty,min=1,max=500"`
}
