package services

import (
	"context"
	"io"

	"github.com/SscSPs/commission_app/internal/core/domain"
)

// TransitionSvc is the status state machine of a commission.
type TransitionSvc interface {
	TogglePicked(ctx context.Context, commissionID, itemID, actorID string) (*domain.Commission, *domain.CommissionItem, error)
	ToggleBackorder(ctx context.Context, commissionID, itemID, actorID string) (*domain.Commission, *domain.CommissionItem, error)
	SetReady(ctx context.Context, commissionID, actorID string) (*domain.TransitionResult, error)
	ResetToPreparing(ctx context.Context, commissionID, actorID string) (*domain.Commission, error)
	Withdraw(ctx context.Context, commissionID, actorID string) (*domain.Commission, error)
	RevertWithdrawal(ctx context.Context, commissionID, actorID string) (*domain.Commission, error)
	MarkMissing(ctx context.Context, commissionID, actorID string) (*domain.Commission, error)
}

// StockLedgerSvc adjusts article stock. Deduct is only called from the
// transition engine.
type StockLedgerSvc interface {
	Deduct(ctx context.Context, articleID string, amount int, reference, actorID string) (domain.DeductionOutcome, error)
	ListMovements(ctx context.Context, articleID string, limit int) ([]domain.StockMovement, error)
}

// ReturnSvc drives the storno sub-workflow.
type ReturnSvc interface {
	InitiateReturn(ctx context.Context, commissionID string, disposition domain.ReturnDisposition, reason, actorID string) (*domain.Commission, error)
	MarkReturnReady(ctx context.Context, commissionID, actorID string) (*domain.Commission, *domain.ReturnLabel, error)
	CompleteReturn(ctx context.Context, commissionID, actorID string) (*domain.Commission, error)
	GetReturnLabel(ctx context.Context, commissionID string) (*domain.ReturnLabel, error)
}

// PrintQueueSvc manages the needs_label flag and label history.
type PrintQueueSvc interface {
	QueueLabel(ctx context.Context, commissionID, actorID string) (*domain.Commission, error)
	ListQueue(ctx context.Context, warehouseID string) ([]domain.Commission, error)
	GetPickLabel(ctx context.Context, commissionID string) (*domain.PickLabel, error)
	MarkAsPrinted(ctx context.Context, commissionIDs []string, actorID string) (*domain.PrintBatchResult, error)
	PrintHistory(ctx context.Context, limit int) ([]domain.CommissionEvent, error)
}

// AuditSvc runs the physical stock-take of prepared commissions.
type AuditSvc interface {
	Overview(ctx context.Context, warehouseID string) (*domain.AuditReport, error)
	RecordScan(ctx context.Context, payload, actorID string) (*domain.Commission, error)
	ResetAudit(ctx context.Context, warehouseID, actorID string) (int, error)
	ExportReport(ctx context.Context, warehouseID string, w io.Writer) error
}

// TrashSvc handles soft deletion and retention.
type TrashSvc interface {
	SoftDelete(ctx context.Context, commissionID, actorID string) error
	Restore(ctx context.Context, commissionID, actorID string) (*domain.Commission, error)
	ListTrash(ctx context.Context) ([]domain.Commission, error)
	PurgeExpired(ctx context.Context) (int64, error)
}
