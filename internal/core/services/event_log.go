package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/google/uuid"
)

// appendEvent writes one entry to the append-only commission history. The
// commission name is copied so the entry outlives a purge.
func (s *BaseService) appendEvent(ctx context.Context, c domain.Commission, action domain.EventAction, details, actorID string) error {
	event := domain.CommissionEvent{
		EventID:        uuid.NewString(),
		CommissionID:   c.CommissionID,
		CommissionName: c.Name,
		UserID:         actorID,
		Action:         action,
		Details:        details,
		CreatedAt:      s.now(),
	}
	if err := s.repos.EventRepo.AppendEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to append %s event for commission %s: %w", action, c.CommissionID, err)
	}
	return nil
}

// describeItem is the short item text used in event details.
func describeItem(it domain.CommissionItem) string {
	name := it.CustomName
	if name == "" && it.ArticleID != nil {
		name = *it.ArticleID
	}
	return fmt.Sprintf("%d × %s", it.Amount, name)
}
