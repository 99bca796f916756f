package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
)

const defaultTrashRetention = 7 * 24 * time.Hour

type trashService struct {
	BaseService
	retention time.Duration
}

// NewTrashService creates the soft-delete service. Trashed commissions can be
// restored for the retention period and are purged afterwards.
func NewTrashService(repos portsrepo.RepositoryProvider, retention time.Duration, options ...ServiceOption) portssvc.TrashSvc {
	if retention <= 0 {
		retention = defaultTrashRetention
	}
	return &trashService{
		BaseService: newBaseService(repos, options...),
		retention:   retention,
	}
}

func (s *trashService) SoftDelete(ctx context.Context, commissionID, actorID string) error {
	var commission *domain.Commission
	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		now := s.now()
		c.DeletedAt = &now
		if err := s.saveCommission(ctx, c, actorID); err != nil {
			return err
		}
		if err := s.appendEvent(ctx, *c, domain.ActionDeleted, "", actorID); err != nil {
			return err
		}
		commission = c
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to delete commission", slog.String("commission_id", commissionID))
		return err
	}
	s.LogInfo(ctx, "Commission moved to trash", slog.String("commission_id", commissionID))
	s.publish(ctx, *commission, domain.ActionDeleted, actorID)
	return nil
}

// Restore brings a trashed commission back with its previous status.
func (s *trashService) Restore(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	var commission *domain.Commission
	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.repos.CommissionRepo.FindCommissionForUpdate(ctx, commissionID)
		if err != nil {
			return err
		}
		if !c.IsDeleted() {
			return domain.ErrNotDeleted
		}
		if s.expired(*c) {
			return domain.ErrRetentionExpired
		}
		c.DeletedAt = nil
		if err := s.saveCommission(ctx, c, actorID); err != nil {
			return err
		}
		if err := s.appendEvent(ctx, *c, domain.ActionRestored, "", actorID); err != nil {
			return err
		}
		commission = c
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to restore commission", slog.String("commission_id", commissionID))
		return nil, err
	}
	s.publish(ctx, *commission, domain.ActionRestored, actorID)
	return commission, nil
}

// ListTrash returns trashed commissions that can still be restored.
func (s *trashService) ListTrash(ctx context.Context) ([]domain.Commission, error) {
	deleted, err := s.repos.CommissionRepo.ListDeletedCommissions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list trash")
		return nil, err
	}
	restorable := make([]domain.Commission, 0, len(deleted))
	for _, c := range deleted {
		if !s.expired(c) {
			restorable = append(restorable, c)
		}
	}
	return restorable, nil
}

// PurgeExpired permanently removes commissions past the retention window.
// Their events stay in the history.
func (s *trashService) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.repos.CommissionRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to purge trash", slog.Time("cutoff", cutoff))
		return 0, err
	}
	s.metrics.RecordPurged(n)
	if n > 0 {
		s.LogInfo(ctx, "Purged expired commissions", slog.Int64("count", n), slog.Time("cutoff", cutoff))
	}
	return n, nil
}

func (s *trashService) expired(c domain.Commission) bool {
	return c.DeletedAt != nil && s.now().Sub(*c.DeletedAt) > s.retention
}
