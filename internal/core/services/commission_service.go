package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/SscSPs/commission_app/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultListLimit  = 100
	maxListLimit      = 500
	defaultEventLimit = 20
	maxEventLimit     = 100
)

type commissionService struct {
	BaseService
}

// NewCommissionService creates the commission CRUD service.
func NewCommissionService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.CommissionSvcFacade {
	return &commissionService{BaseService: newBaseService(repos, options...)}
}

func (s *commissionService) CreateCommission(ctx context.Context, req dto.CreateCommissionRequest, actorID string) (*domain.CommissionWithItems, error) {
	now := s.now()
	commission := domain.Commission{
		CommissionID:        uuid.NewString(),
		Name:                strings.TrimSpace(req.Name),
		OrderNumber:         strings.TrimSpace(req.OrderNumber),
		Notes:               req.Notes,
		Status:              domain.StatusDraft,
		WarehouseID:         req.WarehouseID,
		SupplierID:          emptyToNil(req.SupplierID),
		SupplierOrderNumber: emptyToNil(req.SupplierOrderNumber),
		NeedsLabel:          true,
		AuditFields:         domain.NewAuditFields(actorID, now),
	}
	if commission.Name == "" {
		return nil, apperrors.NewValidationFailedError("name is required")
	}

	items := make([]domain.CommissionItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item := newItem(commission.CommissionID, itemReq)
		if err := item.Validate(); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkSupplier(ctx, commission.SupplierID); err != nil {
			return err
		}
		if err := s.checkArticles(ctx, items...); err != nil {
			return err
		}
		if err := s.repos.CommissionRepo.SaveCommission(ctx, commission); err != nil {
			return fmt.Errorf("failed to save commission: %w", err)
		}
		for _, item := range items {
			if err := s.repos.ItemRepo.SaveItem(ctx, item); err != nil {
				return fmt.Errorf("failed to save item: %w", err)
			}
		}
		return s.appendEvent(ctx, commission, domain.ActionCreated, fmt.Sprintf("%d item(s)", len(items)), actorID)
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to create commission", slog.String("commission_id", commission.CommissionID))
		return nil, err
	}

	s.LogInfo(ctx, "Commission created", slog.String("commission_id", commission.CommissionID))
	s.publish(ctx, commission, domain.ActionCreated, actorID)
	return &domain.CommissionWithItems{Commission: commission, Items: items, Summary: domain.Summarize(items)}, nil
}

func (s *commissionService) GetCommission(ctx context.Context, commissionID string) (*domain.CommissionWithItems, error) {
	c, err := s.loadActive(ctx, commissionID, false)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to load commission", slog.String("commission_id", commissionID))
		return nil, err
	}
	items, err := s.repos.ItemRepo.FindItemsByCommissionID(ctx, commissionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load commission items", slog.String("commission_id", commissionID))
		return nil, err
	}
	return &domain.CommissionWithItems{Commission: *c, Items: items, Summary: domain.Summarize(items)}, nil
}

func (s *commissionService) ListCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, error) {
	filter.Limit = pagination.ClampLimit(filter.Limit, defaultListLimit, maxListLimit)
	commissions, err := s.repos.CommissionRepo.ListCommissions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list commissions")
		return nil, err
	}
	return commissions, nil
}

// ListEvents pages through the history of a commission. It also works for
// purged commissions, whose events are kept.
func (s *commissionService) ListEvents(ctx context.Context, commissionID string, limit int, nextToken *string) ([]domain.CommissionEvent, *string, error) {
	limit = pagination.ClampLimit(limit, defaultEventLimit, maxEventLimit)
	events, token, err := s.repos.EventRepo.ListEventsByCommissionID(ctx, commissionID, limit, nextToken)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to list commission events", slog.String("commission_id", commissionID))
		return nil, nil, err
	}
	return events, token, nil
}

func (s *commissionService) UpdateCommission(ctx context.Context, commissionID string, req dto.UpdateCommissionRequest, actorID string) (*domain.Commission, error) {
	var (
		commission *domain.Commission
		changed    []string
	)
	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) != c.Name {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.NewValidationFailedError("name cannot be empty")
			}
			c.Name = name
			changed = append(changed, "name")
		}
		if req.OrderNumber != nil && strings.TrimSpace(*req.OrderNumber) != c.OrderNumber {
			c.OrderNumber = strings.TrimSpace(*req.OrderNumber)
			changed = append(changed, "orderNumber")
		}
		if req.Notes != nil && *req.Notes != c.Notes {
			c.Notes = *req.Notes
			changed = append(changed, "notes")
		}
		if req.SupplierID != nil && !sameString(c.SupplierID, req.SupplierID) {
			c.SupplierID = emptyToNil(req.SupplierID)
			if err := s.checkSupplier(ctx, c.SupplierID); err != nil {
				return err
			}
			changed = append(changed, "supplierID")
		}
		if req.SupplierOrderNumber != nil && !sameString(c.SupplierOrderNumber, req.SupplierOrderNumber) {
			c.SupplierOrderNumber = emptyToNil(req.SupplierOrderNumber)
			changed = append(changed, "supplierOrderNumber")
		}
		commission = c
		if len(changed) == 0 {
			return nil
		}

		c.NeedsLabel = true
		if err := s.saveCommission(ctx, c, actorID); err != nil {
			return err
		}
		return s.appendEvent(ctx, *c, domain.ActionUpdated, strings.Join(changed, ", "), actorID)
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to update commission", slog.String("commission_id", commissionID))
		return nil, err
	}
	if len(changed) > 0 {
		s.publish(ctx, *commission, domain.ActionUpdated, actorID)
	}
	return commission, nil
}

func (s *commissionService) SetOfficeProcessed(ctx context.Context, commissionID string, processed bool, officeNotes string, actorID string) (*domain.Commission, error) {
	var commission *domain.Commission
	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		c.IsProcessed = processed
		c.OfficeNotes = officeNotes
		if err := s.saveCommission(ctx, c, actorID); err != nil {
			return err
		}
		details := "open"
		if processed {
			details = "processed"
		}
		if err := s.appendEvent(ctx, *c, domain.ActionOfficeProcessed, details, actorID); err != nil {
			return err
		}
		commission = c
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to update office flag", slog.String("commission_id", commissionID))
		return nil, err
	}
	s.publish(ctx, *commission, domain.ActionOfficeProcessed, actorID)
	return commission, nil
}

// --- items ---

func (s *commissionService) AddItem(ctx context.Context, commissionID string, req dto.CreateItemRequest, actorID string) (*domain.CommissionItem, error) {
	item := newItem(commissionID, req)
	if err := item.Validate(); err != nil {
		return nil, err
	}

	commission, err := s.editItems(ctx, commissionID, actorID, func(ctx context.Context, c *domain.Commission) (domain.EventAction, string, error) {
		if err := s.checkArticles(ctx, item); err != nil {
			return "", "", err
		}
		if err := s.repos.ItemRepo.SaveItem(ctx, item); err != nil {
			return "", "", fmt.Errorf("failed to save item: %w", err)
		}
		return domain.ActionItemAdded, describeItem(item), nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to add item", slog.String("commission_id", commissionID))
		return nil, err
	}
	s.publish(ctx, *commission, domain.ActionItemAdded, actorID)
	return &item, nil
}

func (s *commissionService) UpdateItem(ctx context.Context, commissionID, itemID string, req dto.UpdateItemRequest, actorID string) (*domain.CommissionItem, error) {
	var item *domain.CommissionItem
	commission, err := s.editItems(ctx, commissionID, actorID, func(ctx context.Context, c *domain.Commission) (domain.EventAction, string, error) {
		it, err := s.repos.ItemRepo.FindItemByID(ctx, commissionID, itemID)
		if err != nil {
			return "", "", err
		}
		if req.Amount != nil {
			it.Amount = *req.Amount
		}
		if req.CustomName != nil {
			it.CustomName = strings.TrimSpace(*req.CustomName)
		}
		if req.ExternalReference != nil {
			it.ExternalReference = *req.ExternalReference
		}
		if req.Notes != nil {
			it.Notes = *req.Notes
		}
		if req.AttachmentData != nil {
			it.AttachmentData = emptyToNil(req.AttachmentData)
		}
		if err := it.Validate(); err != nil {
			return "", "", err
		}
		if err := s.repos.ItemRepo.UpdateItem(ctx, *it); err != nil {
			return "", "", fmt.Errorf("failed to update item %s: %w", itemID, err)
		}
		item = it
		return domain.ActionItemUpdated, describeItem(*it), nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to update item", slog.String("commission_id", commissionID), slog.String("item_id", itemID))
		return nil, err
	}
	s.publish(ctx, *commission, domain.ActionItemUpdated, actorID)
	return item, nil
}

func (s *commissionService) RemoveItem(ctx context.Context, commissionID, itemID string, actorID string) error {
	commission, err := s.editItems(ctx, commissionID, actorID, func(ctx context.Context, c *domain.Commission) (domain.EventAction, string, error) {
		it, err := s.repos.ItemRepo.FindItemByID(ctx, commissionID, itemID)
		if err != nil {
			return "", "", err
		}
		if err := s.repos.ItemRepo.DeleteItem(ctx, commissionID, itemID); err != nil {
			return "", "", fmt.Errorf("failed to delete item %s: %w", itemID, err)
		}
		return domain.ActionItemRemoved, describeItem(*it), nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to remove item", slog.String("commission_id", commissionID), slog.String("item_id", itemID))
		return err
	}
	s.publish(ctx, *commission, domain.ActionItemRemoved, actorID)
	return nil
}

// editItems runs an item change on a commission that is still being
// prepared. The label is marked stale and the returned action is logged.
func (s *commissionService) editItems(
	ctx context.Context,
	commissionID, actorID string,
	edit func(ctx context.Context, c *domain.Commission) (domain.EventAction, string, error),
) (*domain.Commission, error) {
	var commission *domain.Commission
	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.loadActive(ctx, commissionID, true)
		if err != nil {
			return err
		}
		if c.Status != domain.StatusDraft && c.Status != domain.StatusPreparing {
			return fmt.Errorf("%w: status %s", domain.ErrItemsLocked, c.Status)
		}
		action, details, err := edit(ctx, c)
		if err != nil {
			return err
		}
		c.NeedsLabel = true
		if err := s.saveCommission(ctx, c, actorID); err != nil {
			return err
		}
		if err := s.appendEvent(ctx, *c, action, details, actorID); err != nil {
			return err
		}
		commission = c
		return nil
	})
	return commission, err
}

func (s *commissionService) checkArticles(ctx context.Context, items ...domain.CommissionItem) error {
	var ids []string
	for _, it := range items {
		if it.Type == domain.ItemTypeStock && it.ArticleID != nil {
			ids = append(ids, *it.ArticleID)
		}
	}
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return nil
	}
	found, err := s.repos.ArticleRepo.FindArticlesByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load articles: %w", err)
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return apperrors.NewValidationFailedError("unknown article " + id)
		}
	}
	return nil
}

func (s *commissionService) checkSupplier(ctx context.Context, supplierID *string) error {
	if supplierID == nil {
		return nil
	}
	if _, err := s.repos.SupplierRepo.FindSupplierByID(ctx, *supplierID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("unknown supplier " + *supplierID)
		}
		return err
	}
	return nil
}

func newItem(commissionID string, req dto.CreateItemRequest) domain.CommissionItem {
	item := domain.CommissionItem{
		ItemID:            uuid.NewString(),
		CommissionID:      commissionID,
		Type:              req.Type,
		CustomName:        strings.TrimSpace(req.CustomName),
		ExternalReference: req.ExternalReference,
		Amount:            req.Amount,
		Notes:             req.Notes,
		AttachmentData:    emptyToNil(req.AttachmentData),
	}
	if req.Type == domain.ItemTypeStock {
		item.ArticleID = emptyToNil(req.ArticleID)
	}
	return item
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func sameString(a, b *string) bool {
	a, b = emptyToNil(a), emptyToNil(b)
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
