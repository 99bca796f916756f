package dto

import (
	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ScanRequest carries a scanned QR payload or commission id.
type ScanRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// AuditReportResponse defines the audit overview.
type AuditReportResponse struct {
	WarehouseID string               `json:"warehouseID"`
	Missing     []CommissionResponse `json:"missing"`
	Verified    []CommissionResponse `json:"verified"`
	Open        []CommissionResponse `json:"open"`
	Progress    decimal.Decimal      `json:"progress"`
}

// ToAuditReportResponse converts domain.AuditReport to DTO.
func ToAuditReportResponse(r *domain.AuditReport) AuditReportResponse {
	return AuditReportResponse{
		WarehouseID: r.WarehouseID,
		Missing:     ToListCommissionsResponse(r.Missing).Commissions,
		Verified:    ToListCommissionsResponse(r.Verified).Commissions,
		Open:        ToListCommissionsResponse(r.Open).Commissions,
		Progress:    r.Progress,
	}
}

// AuditResetResponse reports how many scans were cleared.
type AuditResetResponse struct {
	Reset int `json:"reset"`
}

// AuditParams selects the warehouse of an audit operation.
type AuditParams struct {
	WarehouseID string `form:"warehouseID"`
}
