package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/utils/pagination"
)

const (
	defaultPrintHistoryLimit = 50
	maxPrintHistoryLimit     = 500
)

type printQueueService struct {
	BaseService
	historyLimit int
}

// NewPrintQueueService creates the label queue. historyLimit is the default
// size of PrintHistory.
func NewPrintQueueService(repos portsrepo.RepositoryProvider, historyLimit int, options ...ServiceOption) portssvc.PrintQueueSvc {
	if historyLimit <= 0 {
		historyLimit = defaultPrintHistoryLimit
	}
	return &printQueueService{
		BaseService:  newBaseService(repos, options...),
		historyLimit: historyLimit,
	}
}

func (s *printQueueService) QueueLabel(ctx context.Context, commissionID, actorID string) (*domain.Commission, error) {
	var commission *domain.Commission
	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		c.NeedsLabel = true
		if err := s.saveCommission(ctx, c, actorID); err != nil {
			return err
		}
		if err := s.appendEvent(ctx, *c, domain.ActionLabelQueued, "", actorID); err != nil {
			return err
		}
		commission = c
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to queue label", slog.String("commission_id", commissionID))
		return nil, err
	}
	s.publish(ctx, *commission, domain.ActionLabelQueued, actorID)
	return commission, nil
}

func (s *printQueueService) ListQueue(ctx context.Context, warehouseID string) ([]domain.Commission, error) {
	needsLabel := true
	commissions, err := s.repos.CommissionRepo.ListCommissions(ctx, domain.CommissionFilter{
		WarehouseID: warehouseID,
		NeedsLabel:  &needsLabel,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list print queue", slog.String("warehouse_id", warehouseID))
		return nil, err
	}
	return commissions, nil
}

func (s *printQueueService) GetPickLabel(ctx context.Context, commissionID string) (*domain.PickLabel, error) {
	c, err := s.loadActive(ctx, commissionID, false)
	if err != nil {
		return nil, err
	}
	label, err := s.buildPickLabel(ctx, *c)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to build pick label", slog.String("commission_id", commissionID))
		return nil, err
	}
	return label, nil
}

func (s *printQueueService) buildPickLabel(ctx context.Context, c domain.Commission) (*domain.PickLabel, error) {
	items, err := s.repos.ItemRepo.FindItemsByCommissionID(ctx, c.CommissionID)
	if err != nil {
		return nil, err
	}
	var articleIDs []string
	for _, it := range items {
		if it.Type == domain.ItemTypeStock && it.ArticleID != nil {
			articleIDs = append(articleIDs, *it.ArticleID)
		}
	}
	articles := map[string]domain.Article{}
	if len(articleIDs) > 0 {
		articles, err = s.repos.ArticleRepo.FindArticlesByIDs(ctx, uniqueStrings(articleIDs))
		if err != nil {
			return nil, fmt.Errorf("failed to load articles for label: %w", err)
		}
	}
	label := domain.BuildPickLabel(c, items, articles)
	return &label, nil
}

// MarkAsPrinted handles every commission in its own transaction. Failed ids
// keep their flag and are reported in the result and the joined error.
func (s *printQueueService) MarkAsPrinted(ctx context.Context, commissionIDs []string, actorID string) (*domain.PrintBatchResult, error) {
	ids := uniqueStrings(commissionIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationFailedError("at least one commission id is required")
	}

	result := &domain.PrintBatchResult{
		Labels:  []domain.PickLabel{},
		Printed: []string{},
		Failed:  []domain.BatchFailure{},
	}
	var errs []error
	for _, id := range ids {
		label, c, err := s.printOne(ctx, id, actorID)
		if err != nil {
			s.logUnexpected(ctx, err, "Failed to mark label as printed", slog.String("commission_id", id))
			s.metrics.RecordLabelPrinted(false)
			result.Failed = append(result.Failed, domain.BatchFailure{CommissionID: id, Error: err.Error()})
			errs = append(errs, fmt.Errorf("commission %s: %w", id, err))
			continue
		}
		s.metrics.RecordLabelPrinted(true)
		result.Labels = append(result.Labels, *label)
		result.Printed = append(result.Printed, id)
		s.publish(ctx, *c, domain.ActionLabelsPrinted, actorID)
	}

	s.LogInfo(ctx, "Print batch processed",
		slog.Int("printed", len(result.Printed)),
		slog.Int("failed", len(result.Failed)))
	return result, errors.Join(errs...)
}

func (s *printQueueService) printOne(ctx context.Context, commissionID, actorID string) (*domain.PickLabel, *domain.Commission, error) {
	var (
		label      *domain.PickLabel
		commission *domain.Commission
	)
	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		l, err := s.buildPickLabel(ctx, *c)
		if err != nil {
			return err
		}
		details := fmt.Sprintf("%d line(s)", len(l.StockLines)+len(l.ExternalLines))
		if err := s.appendEvent(ctx, *c, domain.ActionLabelsPrinted, details, actorID); err != nil {
			return err
		}
		c.NeedsLabel = false
		if err := s.saveCommission(ctx, c, actorID); err != nil {
			return err
		}
		label, commission = l, c
		return nil
	})
	return label, commission, err
}

func (s *printQueueService) PrintHistory(ctx context.Context, limit int) ([]domain.CommissionEvent, error) {
	limit = pagination.ClampLimit(limit, s.historyLimit, maxPrintHistoryLimit)
	events, err := s.repos.EventRepo.ListRecentEventsByAction(ctx, domain.ActionLabelsPrinted, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load print history")
		return nil, err
	}
	return events, nil
}

func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if str == "" {
			continue
		}
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
