package services

import (
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// changes may be nil when no live feed is served.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, changes portssvc.ChangeSubscriber, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Changes: changes}

	// The ledger is created first since the transition engine deducts through it
	container.StockLedger = NewStockLedgerService(repos, options...)
	container.Transition = NewTransitionService(repos, container.StockLedger, options...)

	container.Commission = NewCommissionService(repos, options...)
	container.Return = NewReturnService(repos, options...)
	container.PrintQueue = NewPrintQueueService(repos, cfg.PrintHistoryLimit, options...)
	container.Audit = NewAuditService(repos, options...)
	container.Trash = NewTrashService(repos, cfg.TrashRetention, options...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CommissionSvcFacade = (*commissionService)(nil)
	_ portssvc.TransitionSvc       = (*transitionService)(nil)
	_ portssvc.StockLedgerSvc      = (*stockLedgerService)(nil)
	_ portssvc.ReturnSvc           = (*returnService)(nil)
	_ portssvc.PrintQueueSvc       = (*printQueueService)(nil)
	_ portssvc.AuditSvc            = (*auditService)(nil)
	_ portssvc.TrashSvc            = (*trashService)(nil)
)
