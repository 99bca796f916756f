package repositories

import (
	"context"

	"github.com/SscSPs/commission_app/internal/core/domain"
)

// CommissionItemReader defines read operations for commission items.
type CommissionItemReader interface {
	FindItemByID(ctx context.Context, commissionID, itemID string) (*domain.CommissionItem, error)
	FindItemsByCommissionID(ctx context.Context, commissionID string) ([]domain.CommissionItem, error)
}

// CommissionItemWriter defines write operations for commission items.
type CommissionItemWriter interface {
	SaveItem(ctx context.Context, item domain.CommissionItem) error
	UpdateItem(ctx context.Context, item domain.CommissionItem) error
	DeleteItem(ctx context.Context, commissionID, itemID string) error
}

// CommissionItemRepositoryFacade combines item reads and writes.
type CommissionItemRepositoryFacade interface {
	CommissionItemReader
	CommissionItemWriter
}
