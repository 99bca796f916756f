package mapping

import (
	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/SscSPs/commission_app/internal/models"
)

// ToModelCommission converts a domain Commission to a model Commission
func ToModelCommission(d domain.Commission) models.Commission {
	var disposition *string
	if d.ReturnDisposition != nil {
		v := string(*d.ReturnDisposition)
		disposition = &v
	}
	return models.Commission{
		CommissionID:        d.CommissionID,
		Name:                d.Name,
		OrderNumber:         d.OrderNumber,
		Notes:               d.Notes,
		Status:              string(d.Status),
		WarehouseID:         d.WarehouseID,
		SupplierID:          d.SupplierID,
		SupplierOrderNumber: d.SupplierOrderNumber,
		WithdrawnAt:         d.WithdrawnAt,
		DeletedAt:           d.DeletedAt,
		NeedsLabel:          d.NeedsLabel,
		IsProcessed:         d.IsProcessed,
		OfficeNotes:         d.OfficeNotes,
		LastScannedAt:       d.LastScannedAt,
		HasBeenFulfilled:    d.HasBeenFulfilled,
		ReturnDisposition:   disposition,
		ReturnReason:        d.ReturnReason,
		ReturnRequestedAt:   d.ReturnRequestedAt,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCommission converts a model Commission to a domain Commission
func ToDomainCommission(m models.Commission) domain.Commission {
	var disposition *domain.ReturnDisposition
	if m.ReturnDisposition != nil {
		disposition = domain.ReturnDisposition(*m.ReturnDisposition).Ptr()
	}
	return domain.Commission{
		CommissionID:        m.CommissionID,
		Name:                m.Name,
		OrderNumber:         m.OrderNumber,
		Notes:               m.Notes,
		Status:              domain.CommissionStatus(m.Status),
		WarehouseID:         m.WarehouseID,
		SupplierID:          m.SupplierID,
		SupplierOrderNumber: m.SupplierOrderNumber,
		WithdrawnAt:         m.WithdrawnAt,
		DeletedAt:           m.DeletedAt,
		NeedsLabel:          m.NeedsLabel,
		IsProcessed:         m.IsProcessed,
		OfficeNotes:         m.OfficeNotes,
		LastScannedAt:       m.LastScannedAt,
		HasBeenFulfilled:    m.HasBeenFulfilled,
		ReturnDisposition:   disposition,
		ReturnReason:        m.ReturnReason,
		ReturnRequestedAt:   m.ReturnRequestedAt,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCommissions converts a slice of model Commissions
func ToDomainCommissions(ms []models.Commission) []domain.Commission {
	out := make([]domain.Commission, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCommission(m)
	}
	return out
}

// ToModelCommissionItem converts a domain CommissionItem to a model CommissionItem
func ToModelCommissionItem(d domain.CommissionItem) models.CommissionItem {
	return models.CommissionItem{
		ItemID:            d.ItemID,
		CommissionID:      d.CommissionID,
		ItemType:          string(d.Type),
		ArticleID:         d.ArticleID,
		CustomName:        d.CustomName,
		ExternalReference: d.ExternalReference,
		Amount:            d.Amount,
		IsPicked:          d.IsPicked,
		IsBackorder:       d.IsBackorder,
		Notes:             d.Notes,
		AttachmentData:    d.AttachmentData,
	}
}

// ToDomainCommissionItem converts a model CommissionItem to a domain CommissionItem
func ToDomainCommissionItem(m models.CommissionItem) domain.CommissionItem {
	return domain.CommissionItem{
		ItemID:            m.ItemID,
		CommissionID:      m.CommissionID,
		Type:              domain.ItemType(m.ItemType),
		ArticleID:         m.ArticleID,
		CustomName:        m.CustomName,
		ExternalReference: m.ExternalReference,
		Amount:            m.Amount,
		IsPicked:          m.IsPicked,
		IsBackorder:       m.IsBackorder,
		Notes:             m.Notes,
		AttachmentData:    m.AttachmentData,
	}
}

// ToDomainCommissionEvent converts a model CommissionEvent to a domain CommissionEvent
func ToDomainCommissionEvent(m models.CommissionEvent) domain.CommissionEvent {
	return domain.CommissionEvent{
		EventID:        m.EventID,
		CommissionID:   m.CommissionID,
		CommissionName: m.CommissionName,
		UserID:         m.UserID,
		Action:         domain.EventAction(m.Action),
		Details:        m.Details,
		CreatedAt:      m.CreatedAt,
	}
}
