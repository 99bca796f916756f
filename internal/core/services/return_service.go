package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

var returnSources = []domain.CommissionStatus{
	domain.StatusDraft,
	domain.StatusPreparing,
	domain.StatusReady,
	domain.StatusWithdrawn,
	domain.StatusMissing,
}

type returnService struct {
	BaseService
}

// NewReturnService creates the storno workflow service.
func NewReturnService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ReturnSvc {
	return &returnService{BaseService: newBaseService(repos, options...)}
}

func (s *returnService) InitiateReturn(ctx context.Context, commissionID string, disposition domain.ReturnDisposition, reason, actorID string) (_ *domain.Commission, err error) {
	ctx, span := tracing.StartSpan(ctx, "commission.initiate_return",
		attribute.String("commission.id", commissionID), attribute.String("return.disposition", string(disposition)))
	defer func() { tracing.End(span, err) }()

	if _, err := domain.ParseReturnDisposition(string(disposition)); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)

	var (
		commission *domain.Commission
		from       domain.CommissionStatus
	)
	err = s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		if !statusIn(c.Status, returnSources) {
			return domain.TransitionError(c.Status, domain.StatusReturnPending)
		}
		if disposition == domain.DispositionReturnSupplier && (c.SupplierID == nil || *c.SupplierID == "") {
			return domain.ErrSupplierRequired
		}

		now := s.now()
		from = c.Status
		c.ReturnDisposition = disposition.Ptr()
		c.ReturnReason = reason
		c.ReturnRequestedAt = &now
		c.WithdrawnAt = nil
		c.LastScannedAt = nil
		c.IsProcessed = false

		if err := s.changeStatus(ctx, c, domain.StatusReturnPending, string(disposition), actorID); err != nil {
			return err
		}
		if err := s.appendEvent(ctx, *c, domain.ActionReturnInitiated, returnDetails(disposition, reason, now), actorID); err != nil {
			return err
		}
		commission = c
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to initiate return", slog.String("commission_id", commissionID))
		return nil, err
	}

	s.metrics.RecordTransition(string(from), string(domain.StatusReturnPending))
	s.publish(ctx, *commission, domain.ActionReturnInitiated, actorID)
	return commission, nil
}

func returnDetails(disposition domain.ReturnDisposition, reason string, at time.Time) string {
	var b strings.Builder
	b.WriteString(disposition.ActionText())
	if reason != "" {
		b.WriteString(" Grund: ")
		b.WriteString(reason)
	}
	b.WriteString(" [")
	b.WriteString(at.Format(time.RFC3339))
	b.WriteString("]")
	return b.String()
}

// MarkReturnReady generates the supplier return label and moves the
// commission to ReturnReady. A label that cannot be built blocks the transition.
func (s *returnService) MarkReturnReady(ctx context.Context, commissionID, actorID string) (_ *domain.Commission, _ *domain.ReturnLabel, err error) {
	ctx, span := tracing.StartSpan(ctx, "commission.mark_return_ready", attribute.String("commission.id", commissionID))
	defer func() { tracing.End(span, err) }()

	var (
		commission *domain.Commission
		label      *domain.ReturnLabel
	)
	err = s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		if c.Status != domain.StatusReturnPending {
			return domain.TransitionError(c.Status, domain.StatusReturnReady)
		}
		if c.ReturnDisposition == nil || *c.ReturnDisposition != domain.DispositionReturnSupplier {
			return fmt.Errorf("%w: only supplier returns wait for pickup", domain.ErrInvalidTransition)
		}

		l, err := s.buildReturnLabel(ctx, *c)
		if err != nil {
			return err
		}
		if err := s.appendEvent(ctx, *c, domain.ActionReturnLabelGenerated, l.SupplierName, actorID); err != nil {
			return err
		}
		if err := s.changeStatus(ctx, c, domain.StatusReturnReady, "", actorID); err != nil {
			return err
		}
		commission, label = c, l
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to mark return ready", slog.String("commission_id", commissionID))
		return nil, nil, err
	}

	s.metrics.RecordTransition(string(domain.StatusReturnPending), string(domain.StatusReturnReady))
	s.publish(ctx, *commission, domain.ActionStatusChanged, actorID)
	return commission, label, nil
}

// CompleteReturn closes the storno. Restocked goods are not booked back into
// the ledger.
func (s *returnService) CompleteReturn(ctx context.Context, commissionID, actorID string) (_ *domain.Commission, err error) {
	ctx, span := tracing.StartSpan(ctx, "commission.complete_return", attribute.String("commission.id", commissionID))
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
		if c.ReturnDisposition == nil {
			return domain.TransitionError(c.Status, domain.StatusReturnComplete)
		}
		expected := domain.StatusReturnPending
		if *c.ReturnDisposition == domain.DispositionReturnSupplier {
			expected = domain.StatusReturnReady
		}
		if c.Status != expected {
			return domain.TransitionError(c.Status, domain.StatusReturnComplete)
		}
		from = c.Status
		if err := s.changeStatus(ctx, c, domain.StatusReturnComplete, string(*c.ReturnDisposition), actorID); err != nil {
			return err
		}
		commission = c
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to complete return", slog.String("commission_id", commissionID))
		return nil, err
	}

	s.metrics.RecordTransition(string(from), string(domain.StatusReturnComplete))
	s.publish(ctx, *commission, domain.ActionStatusChanged, actorID)
	return commission, nil
}

// GetReturnLabel rebuilds the label of a supplier return for reprints.
func (s *returnService) GetReturnLabel(ctx context.Context, commissionID string) (*domain.ReturnLabel, error) {
	c, err := s.loadActive(ctx, commissionID, false)
	if err != nil {
		return nil, err
	}
	if c.ReturnDisposition == nil || *c.ReturnDisposition != domain.DispositionReturnSupplier ||
		(c.Status != domain.StatusReturnReady && c.Status != domain.StatusReturnComplete) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("commission %s has no return label", commissionID))
	}
	return s.buildReturnLabel(ctx, *c)
}

func (s *returnService) buildReturnLabel(ctx context.Context, c domain.Commission) (*domain.ReturnLabel, error) {
	if c.SupplierID == nil || *c.SupplierID == "" {
		return nil, domain.ErrSupplierRequired
	}
	supplier, err := s.repos.SupplierRepo.FindSupplierByID(ctx, *c.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplier for return label: %w", err)
	}
	label := domain.BuildReturnLabel(c, *supplier, s.now())
	return &label, nil
}
