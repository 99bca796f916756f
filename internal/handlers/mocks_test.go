package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/commission_app/internal/core/domain"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CommissionService ---
type MockCommissionService struct {
	mock.Mock
}

func (m *MockCommissionService) GetCommission(ctx context.Context, commissionID string) (*domain.CommissionWithItems, error) {
	args := m.Called(ctx, commissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionWithItems), args.Error(1)
}

func (m *MockCommissionService) ListCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commission), args.Error(1)
}

func (m *MockCommissionService) ListEvents(ctx context.Context, commissionID string, limit int, nextToken *string) ([]domain.CommissionEvent, *string, error) {
	args := m.Called(ctx, commissionID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.CommissionEvent), next, args.Error(2)
}

func (m *MockCommissionService) CreateCommission(ctx context.Context, req dto.CreateCommissionRequest, actorID string) (*domain.CommissionWithItems, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionWithItems), args.Error(1)
}

func (m *MockCommissionService) UpdateCommission(ctx context.Context, commissionID string, req dto.UpdateCommissionRequest, actorID string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionService) SetOfficeProcessed(ctx context.Context, commissionID string, processed bool, officeNotes string, actorID string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, processed, officeNotes, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionService) AddItem(ctx context.Context, commissionID string, req dto.CreateItemRequest, actorID string) (*domain.CommissionItem, error) {
	args := m.Called(ctx, commissionID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionItem), args.Error(1)
}

func (m *MockCommissionService) UpdateItem(ctx context.Context, commissionID, itemID string, req dto.UpdateItemRequest, actorID string) (*domain.CommissionItem, error) {
	args := m.Called(ctx, commissionID, itemID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommissionItem), args.Error(1)
}

func (m *MockCommissionService) RemoveItem(ctx context.Context, commissionID, itemID string, actorID string) error {
	return m.Called(ctx, commissionID, itemID, actorID).Error(0)
}

// --- Mock TransitionService ---
type MockTransitionService struct {
	mock.Mock
}

func (m *MockTransitionService) toggle(ctx context.Context, method string, commissionID, itemID, actorID string) (*domain.Commission, *domain.CommissionItem, error) {
	args := m.MethodCalled(method, ctx, commissionID, itemID, actorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Commission), args.Get(1).(*domain.CommissionItem), args.Error(2)
}

func (m *MockTransitionService) TogglePicked(ctx context.Context, commissionID, itemID, actorID string) (*domain.Commission, *domain.CommissionItem, error) {
	return m.toggle(ctx, "TogglePicked", commissionID, itemID, actorID)
}

func (m *MockTransitionService) ToggleBackorder(ctx context.Context, commissionID, itemID, actorID string) (*domain.Commission, *domain.CommissionItem, error) {
	return m.toggle(ctx, "ToggleBackorder", commissionID, itemID, actorID)
}

func (m *MockTransitionService) SetReady(ctx context.Context, commissionID, actorID string) (*domain.TransitionResult, error) {
	args := m.Called(ctx, commissionID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionResult), args.Error(1)
}

func (m *MockTransitionService) commission(ctx context.Context, method string, commissionID, actorID string) (*domain.Commission, error) {
	args := m.MethodCalled(method, ctx, commissionID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockTransitionService) ResetToPreparing(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	return m.commission(ctx, "ResetToPreparing", commissionID, actorID)
}

func (m *MockTransitionService) Withdraw(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	return m.commission(ctx, "Withdraw", commissionID, actorID)
}

func (m *MockTransitionService) RevertWithdrawal(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	return m.commission(ctx, "RevertWithdrawal", commissionID, actorID)
}

func (m *MockTransitionService) MarkMissing(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	return m.commission(ctx, "MarkMissing", commissionID, actorID)
}

// --- Mock PrintQueueService ---
type MockPrintQueueService struct {
	mock.Mock
}

func (m *MockPrintQueueService) QueueLabel(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockPrintQueueService) ListQueue(ctx context.Context, warehouseID string) ([]domain.Commission, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commission), args.Error(1)
}

func (m *MockPrintQueueService) GetPickLabel(ctx context.Context, commissionID string) (*domain.PickLabel, error) {
	args := m.Called(ctx, commissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PickLabel), args.Error(1)
}

func (m *MockPrintQueueService) MarkAsPrinted(ctx context.Context, commissionIDs []string, actorID string) (*domain.PrintBatchResult, error) {
	args := m.Called(ctx, commissionIDs, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrintBatchResult), args.Error(1)
}

func (m *MockPrintQueueService) PrintHistory(ctx context.Context, limit int) ([]domain.CommissionEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommissionEvent), args.Error(1)
}

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Overview(ctx context.Context, warehouseID string) (*domain.AuditReport, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}

func (m *MockAuditService) RecordScan(ctx context.Context, payload, actorID string) (*domain.Commission, error) {
	args := m.Called(ctx, payload, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockAuditService) ResetAudit(ctx context.Context, warehouseID, actorID string) (int, error) {
	args := m.Called(ctx, warehouseID, actorID)
	return args.Int(0), args.Error(1)
}

func (m *MockAuditService) ExportReport(ctx context.Context, warehouseID string, w io.Writer) error {
	args := m.Called(ctx, warehouseID, w)
	return args.Error(0)
}

// --- Mock TrashService ---
type MockTrashService struct {
	mock.Mock
}

func (m *MockTrashService) SoftDelete(ctx context.Context, commissionID, actorID string) error {
	return m.Called(ctx, commissionID, actorID).Error(0)
}

func (m *MockTrashService) Restore(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockTrashService) ListTrash(ctx context.Context) ([]domain.Commission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commission), args.Error(1)
}

func (m *MockTrashService) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ReturnService ---
type MockReturnService struct {
	mock.Mock
}

func (m *MockReturnService) InitiateReturn(ctx context.Context, commissionID string, disposition domain.ReturnDisposition, reason, actorID string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, disposition, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockReturnService) MarkReturnReady(ctx context.Context, commissionID, actorID string) (*domain.Commission, *domain.ReturnLabel, error) {
	args := m.Called(ctx, commissionID, actorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Commission), args.Get(1).(*domain.ReturnLabel), args.Error(2)
}

func (m *MockReturnService) CompleteReturn(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockReturnService) GetReturnLabel(ctx context.Context, commissionID string) (*domain.ReturnLabel, error) {
	args := m.Called(ctx, commissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnLabel), args.Error(1)
}

// --- Mock StockLedgerService ---
type MockStockLedgerService struct {
	mock.Mock
}

func (m *MockStockLedgerService) Deduct(ctx context.Context, articleID string, amount int, reference, actorID string) (domain.DeductionOutcome, error) {
	args := m.Called(ctx, articleID, amount, reference, actorID)
	return args.Get(0).(domain.DeductionOutcome), args.Error(1)
}

func (m *MockStockLedgerService) ListMovements(ctx context.Context, articleID string, limit int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, articleID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.CommissionSvcFacade = (*MockCommissionService)(nil)
	_ portssvc.TransitionSvc       = (*MockTransitionService)(nil)
	_ portssvc.PrintQueueSvc       = (*MockPrintQueueService)(nil)
	_ portssvc.AuditSvc            = (*MockAuditService)(nil)
	_ portssvc.TrashSvc            = (*MockTrashService)(nil)
	_ portssvc.ReturnSvc           = (*MockReturnService)(nil)
	_ portssvc.StockLedgerSvc      = (*MockStockLedgerService)(nil)
)
