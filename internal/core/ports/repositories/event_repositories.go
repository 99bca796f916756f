package repositories

import (
	"context"

	"github.com/SscSPs/commission_app/internal/core/domain"
)

// CommissionEventRepository is the append-only event log. There is no update
// or delete.
type CommissionEventRepository interface {
	AppendEvent(ctx context.Context, event domain.CommissionEvent) error

	// ListEventsByCommissionID pages through a commission's history, newest first.
	ListEventsByCommissionID(ctx context.Context, commissionID string, limit int, nextToken *string) ([]domain.CommissionEvent, *string, error)

	// ListRecentEventsByAction returns the newest events with the given action.
	ListRecentEventsByAction(ctx context.Context, action domain.EventAction, limit int) ([]domain.CommissionEvent, error)
}
