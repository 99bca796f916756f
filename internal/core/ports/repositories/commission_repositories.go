package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/commission_app/internal/core/domain"
)

// CommissionReader defines read operations for commissions.
type CommissionReader interface {
	// FindCommissionByID returns the commission, including trashed ones.
	FindCommissionByID(ctx context.Context, commissionID string) (*domain.Commission, error)

	// FindCommissionForUpdate is FindCommissionByID with a row lock inside a transaction.
	FindCommissionForUpdate(ctx context.Context, commissionID string) (*domain.Commission, error)

	// ListCommissions returns active (not deleted) commissions matching the filter.
	ListCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, error)

	// ListDeletedCommissions returns the trash, most recently deleted first.
	ListDeletedCommissions(ctx context.Context) ([]domain.Commission, error)
}

// CommissionWriter defines write operations for commissions.
type CommissionWriter interface {
	SaveCommission(ctx context.Context, commission domain.Commission) error
	UpdateCommission(ctx context.Context, commission domain.Commission) error
}

// CommissionLifecycleManager covers bulk maintenance of commissions.
type CommissionLifecycleManager interface {
	// ClearLastScanned resets the audit mark and returns the ids that were verified.
	ClearLastScanned(ctx context.Context, warehouseID string) ([]string, error)

	// PurgeDeletedBefore permanently removes trashed commissions and their items.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CommissionRepositoryFacade combines all commission repository interfaces.
type CommissionRepositoryFacade interface {
	CommissionReader
	CommissionWriter
	CommissionLifecycleManager
}
