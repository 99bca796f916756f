package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

type transitionService struct {
	BaseService
	ledger portssvc.StockLedgerSvc
}

// NewTransitionService creates the status state machine. ledger performs the
// stock deduction on the first transition to Ready.
func NewTransitionService(repos portsrepo.RepositoryProvider, ledger portssvc.StockLedgerSvc, options ...ServiceOption) portssvc.TransitionSvc {
	return &transitionService{
		BaseService: newBaseService(repos, options...),
		ledger:      ledger,
	}
}

func (s *transitionService) TogglePicked(ctx context.Context, commissionID, itemID, actorID string) (_ *domain.Commission, _ *domain.CommissionItem, err error) {
	ctx, span := tracing.StartSpan(ctx, "commission.toggle_picked",
		attribute.String("commission.id", commissionID), attribute.String("item.id", itemID))
	defer func() { tracing.End(span, err) }()

	var (
		commission *domain.Commission
		item       *domain.CommissionItem
		action     domain.EventAction
		advanced   bool
	)
	err = s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, it, err := s.loadPickable(ctx, commissionID, itemID)
		if err != nil {
			return err
		}
		if it.IsBackorder {
			return domain.ErrItemBackordered
		}

		it.IsPicked = !it.IsPicked
		if err := s.repos.ItemRepo.UpdateItem(ctx, *it); err != nil {
			return fmt.Errorf("failed to update item %s: %w", itemID, err)
		}
		action = domain.ActionItemUnpicked
		if it.IsPicked {
			action = domain.ActionItemPicked
		}
		if err := s.appendEvent(ctx, *c, action, describeItem(*it), actorID); err != nil {
			return err
		}

		if it.IsPicked && c.Status == domain.StatusDraft {
			if err := s.changeStatus(ctx, c, domain.StatusPreparing, "first item picked", actorID); err != nil {
				return err
			}
			advanced = true
		}
		commission, item = c, it
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to toggle picked", slog.String("commission_id", commissionID), slog.String("item_id", itemID))
		return nil, nil, err
	}

	if advanced {
		s.metrics.RecordTransition(string(domain.StatusDraft), string(domain.StatusPreparing))
		s.publish(ctx, *commission, domain.ActionStatusChanged, actorID)
	} else {
		s.publish(ctx, *commission, action, actorID)
	}
	return commission, item, nil
}

func (s *transitionService) ToggleBackorder(ctx context.Context, commissionID, itemID, actorID string) (_ *domain.Commission, _ *domain.CommissionItem, err error) {
	ctx, span := tracing.StartSpan(ctx, "commission.toggle_backorder",
		attribute.String("commission.id", commissionID), attribute.String("item.id", itemID))
	defer func() { tracing.End(span, err) }()

	var (
		commission *domain.Commission
		item       *domain.CommissionItem
		action     domain.EventAction
	)
	err = s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, it, err := s.loadPickable(ctx, commissionID, itemID)
		if err != nil {
			return err
		}
		if it.Type != domain.ItemTypeExternal {
			return domain.ErrBackorderStockItem
		}

		it.IsBackorder = !it.IsBackorder
		if err := s.repos.ItemRepo.UpdateItem(ctx, *it); err != nil {
			return fmt.Errorf("failed to update item %s: %w", itemID, err)
		}
		// The printed label shows backorder markers, so it is stale now.
		c.NeedsLabel = true
		if err := s.saveCommission(ctx, c, actorID); err != nil {
			return err
		}
		action = domain.ActionBackorderCleared
		if it.IsBackorder {
			action = domain.ActionBackorderSet
		}
		if err := s.appendEvent(ctx, *c, action, describeItem(*it), actorID); err != nil {
			return err
		}
		commission, item = c, it
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to toggle backorder", slog.String("commission_id", commissionID), slog.String("item_id", itemID))
		return nil, nil, err
	}
	s.publish(ctx, *commission, action, actorID)
	return commission, item, nil
}

// loadPickable loads an active commission in a pickable status and one of its items.
func (s *transitionService) loadPickable(ctx context.Context, commissionID, itemID string) (*domain.Commission, *domain.CommissionItem, error) {
	c, err := s.loadActive(ctx, commissionID, true)
	if err != nil {
		return nil, nil, err
	}
	if !c.Status.IsPickable() {
		return nil, nil, fmt.Errorf("%w: status %s", domain.ErrNotPickable, c.Status)
	}
	it, err := s.repos.ItemRepo.FindItemByID(ctx, commissionID, itemID)
	if err != nil {
		return nil, nil, err
	}
	return c, it, nil
}

// SetReady completes preparation. On the first Ready of a lifecycle every
// stock item is deducted from the ledger; the deductions, the status change
// and its event commit together or not at all.
func (s *transitionService) SetReady(ctx context.Context, commissionID, actorID string) (_ *domain.TransitionResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "commission.set_ready", attribute.String("commission.id", commissionID))
	defer func() { tracing.End(span, err) }()

	var result *domain.TransitionResult
	err = s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		if c.Status != domain.StatusDraft && c.Status != domain.StatusPreparing {
			return domain.TransitionError(c.Status, domain.StatusReady)
		}

		items, err := s.repos.ItemRepo.FindItemsByCommissionID(ctx, commissionID)
		if err != nil {
			return err
		}
		if err := checkReadyGuard(items); err != nil {
			return err
		}

		from := c.Status
		var deductions []domain.DeductionOutcome
		note := "stock already deducted"
		if !c.HasBeenFulfilled {
			deductions, err = s.deductStock(ctx, *c, items, actorID)
			if err != nil {
				return err
			}
			c.HasBeenFulfilled = true
			note = ""
			if short := countBackordered(deductions); short > 0 {
				note = fmt.Sprintf("stock short for %d item(s)", short)
			}
		}

		if err := s.changeStatus(ctx, c, domain.StatusReady, note, actorID); err != nil {
			return err
		}
		result = &domain.TransitionResult{
			Commission: *c,
			OldStatus:  from,
			NewStatus:  c.Status,
			Deductions: deductions,
		}
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to set commission ready", slog.String("commission_id", commissionID))
		return nil, err
	}

	s.metrics.RecordTransition(string(result.OldStatus), string(result.NewStatus))
	for _, d := range result.Deductions {
		s.metrics.RecordDeduction(string(d.Result))
	}
	if result.HasBackorderedDeductions() {
		s.GetLogger(ctx).Warn("Commission ready with stock shortfall",
			slog.String("commission_id", commissionID),
			slog.Int("backordered", countBackordered(result.Deductions)))
	}
	s.publish(ctx, result.Commission, domain.ActionStatusChanged, actorID)
	return result, nil
}

// checkReadyGuard rejects backorders before looking at pick state.
func checkReadyGuard(items []domain.CommissionItem) error {
	if len(items) == 0 {
		return domain.ErrNoItems
	}
	for _, it := range items {
		if it.IsBackorder {
			return domain.ErrBackorderPending
		}
	}
	for _, it := range items {
		if !it.IsPicked {
			return domain.ErrNotAllPicked
		}
	}
	return nil
}

func (s *transitionService) deductStock(ctx context.Context, c domain.Commission, items []domain.CommissionItem, actorID string) ([]domain.DeductionOutcome, error) {
	reference := c.OrderNumber
	if reference == "" {
		reference = c.CommissionID
	}
	outcomes := []domain.DeductionOutcome{}
	for _, it := range items {
		if it.Type != domain.ItemTypeStock || it.ArticleID == nil {
			continue
		}
		outcome, err := s.ledger.Deduct(ctx, *it.ArticleID, it.Amount, reference, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to deduct stock for item %s: %w", it.ItemID, err)
		}
		outcome.ItemID = it.ItemID
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func countBackordered(outcomes []domain.DeductionOutcome) int {
	n := 0
	for _, d := range outcomes {
		if d.Result == domain.DeductionBackordered {
			n++
		}
	}
	return n
}

// ResetToPreparing reopens a Ready or Missing commission. Stock deducted
// earlier stays deducted.
func (s *transitionService) ResetToPreparing(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	return s.transition(ctx, "commission.reset_to_preparing", commissionID, actorID,
		[]domain.CommissionStatus{domain.StatusReady, domain.StatusMissing}, domain.StatusPreparing,
		func(c *domain.Commission, _ time.Time) string {
			c.LastScannedAt = nil
			if c.HasBeenFulfilled {
				return "stock deduction is not reversed"
			}
			return ""
		})
}

func (s *transitionService) Withdraw(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	return s.transition(ctx, "commission.withdraw", commissionID, actorID,
		[]domain.CommissionStatus{domain.StatusReady}, domain.StatusWithdrawn,
		func(c *domain.Commission, now time.Time) string {
			c.WithdrawnAt = &now
			c.LastScannedAt = nil
			return ""
		})
}

func (s *transitionService) RevertWithdrawal(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	return s.transition(ctx, "commission.revert_withdrawal", commissionID, actorID,
		[]domain.CommissionStatus{domain.StatusWithdrawn}, domain.StatusReady,
		func(c *domain.Commission, _ time.Time) string {
			c.WithdrawnAt = nil
			return "withdrawal reverted"
		})
}

func (s *transitionService) MarkMissing(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	return s.transition(ctx, "commission.mark_missing", commissionID, actorID,
		[]domain.CommissionStatus{domain.StatusReady, domain.StatusReturnReady}, domain.StatusMissing,
		func(c *domain.Commission, _ time.Time) string {
			c.LastScannedAt = nil
			return "not found during audit"
		})
}

// transition runs a status change that touches no items or stock. mutate
// adjusts status-dependent fields and returns the note for the event.
func (s *transitionService) transition(
	ctx context.Context,
	spanName, commissionID, actorID string,
	sources []domain.CommissionStatus,
	to domain.CommissionStatus,
	mutate func(c *domain.Commission, now time.Time) string,
) (_ *domain.Commission, err error) {
	ctx, span := tracing.StartSpan(ctx, spanName, attribute.String("commission.id", commissionID))
	defer func() { tracing.End(span, err) }()

	var (
		commission *domain.Commission
		from       domain.CommissionStatus
	)
	err = s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		if !statusIn(c.Status, sources) {
			return domain.TransitionError(c.Status, to)
		}
		from = c.Status
		note := mutate(c, s.now())
		if err := s.changeStatus(ctx, c, to, note, actorID); err != nil {
			return err
		}
		commission = c
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Commission transition failed",
			slog.String("commission_id", commissionID), slog.String("to", string(to)))
		return nil, err
	}

	s.metrics.RecordTransition(string(from), string(to))
	s.LogInfo(ctx, "Commission status changed",
		slog.String("commission_id", commissionID),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	s.publish(ctx, *commission, domain.ActionStatusChanged, actorID)
	return commission, nil
}

func statusIn(s domain.CommissionStatus, set []domain.CommissionStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}
