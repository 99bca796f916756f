package services

import (
	"context"

	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/SscSPs/commission_app/internal/dto"
)

// CommissionReaderSvc defines read operations on commissions.
type CommissionReaderSvc interface {
	GetCommission(ctx context.Context, commissionID string) (*domain.CommissionWithItems, error)
	ListCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, error)
	ListEvents(ctx context.Context, commissionID string, limit int, nextToken *string) ([]domain.CommissionEvent, *string, error)
}

// CommissionWriterSvc defines commission creation and detail edits.
type CommissionWriterSvc interface {
	CreateCommission(ctx context.Context, req dto.CreateCommissionRequest, actorID string) (*domain.CommissionWithItems, error)
	UpdateCommission(ctx context.Context, commissionID string, req dto.UpdateCommissionRequest, actorID string) (*domain.Commission, error)
	SetOfficeProcessed(ctx context.Context, commissionID string, processed bool, officeNotes string, actorID string) (*domain.Commission, error)
}

// CommissionItemSvc defines item line management.
type CommissionItemSvc interface {
	AddItem(ctx context.Context, commissionID string, req dto.CreateItemRequest, actorID string) (*domain.CommissionItem, error)
	UpdateItem(ctx context.Context, commissionID, itemID string, req dto.UpdateItemRequest, actorID string) (*domain.CommissionItem, error)
	RemoveItem(ctx context.Context, commissionID, itemID string, actorID string) error
}

// CommissionSvcFacade combines all commission CRUD interfaces.
type CommissionSvcFacade interface {
	CommissionReaderSvc
	CommissionWriterSvc
	CommissionItemSvc
}
