package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/export"
)

type auditService struct {
	BaseService
}

// NewAuditService creates the reconciliation engine.
func NewAuditService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.AuditSvc {
	return &auditService{BaseService: newBaseService(repos, options...)}
}

func (s *auditService) Overview(ctx context.Context, warehouseID string) (*domain.AuditReport, error) {
	commissions, err := s.repos.CommissionRepo.ListCommissions(ctx, domain.CommissionFilter{
		WarehouseID: warehouseID,
		Statuses:    domain.AuditStatuses,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load audit population", slog.String("warehouse_id", warehouseID))
		return nil, err
	}
	report := domain.Classify(warehouseID, commissions)
	return &report, nil
}

// RecordScan marks the scanned commission as verified. payload is either a
// label QR payload or a bare commission id.
func (s *auditService) RecordScan(ctx context.Context, payload, actorID string) (*domain.Commission, error) {
	commissionID, ok := domain.ParseScanPayload(payload)
	if !ok {
		return nil, apperrors.NewValidationFailedError("scan payload is empty")
	}

	var commission *domain.Commission
	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		if c.Status != domain.StatusReady && c.Status != domain.StatusReturnReady {
			return fmt.Errorf("%w: status %s", domain.ErrNotScannable, c.Status)
		}
		now := s.now()
		c.LastScannedAt = &now
		if err := s.saveCommission(ctx, c, actorID); err != nil {
			return err
		}
		if err := s.appendEvent(ctx, *c, domain.ActionAuditScanned, payload, actorID); err != nil {
			return err
		}
		commission = c
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Audit scan failed", slog.String("commission_id", commissionID))
		return nil, err
	}

	s.metrics.RecordAuditScan()
	s.publish(ctx, *commission, domain.ActionAuditScanned, actorID)
	return commission, nil
}

// ResetAudit starts a new round: every verified commission becomes open
// again. Nothing moves to Missing.
func (s *auditService) ResetAudit(ctx context.Context, warehouseID, actorID string) (int, error) {
	var reset []domain.Commission
	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		ids, err := s.repos.CommissionRepo.ClearLastScanned(ctx, warehouseID)
		if err != nil {
			return fmt.Errorf("failed to clear audit marks: %w", err)
		}
		reset = make([]domain.Commission, 0, len(ids))
		for _, id := range ids {
			c, err := s.repos.CommissionRepo.FindCommissionByID(ctx, id)
			if err != nil {
				return err
			}
			if err := s.appendEvent(ctx, *c, domain.ActionAuditReset, "", actorID); err != nil {
				return err
			}
			reset = append(reset, *c)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Audit reset failed", slog.String("warehouse_id", warehouseID))
		return 0, err
	}

	s.LogInfo(ctx, "Audit reset", slog.String("warehouse_id", warehouseID), slog.Int("commissions", len(reset)))
	for _, c := range reset {
		s.publish(ctx, c, domain.ActionAuditReset, actorID)
	}
	return len(reset), nil
}

func (s *auditService) ExportReport(ctx context.Context, warehouseID string, w io.Writer) error {
	report, err := s.Overview(ctx, warehouseID)
	if err != nil {
		return err
	}
	if err := export.WriteAuditReport(w, *report); err != nil {
		s.LogError(ctx, err, "Failed to export audit report", slog.String("warehouse_id", warehouseID))
		return err
	}
	return nil
}
