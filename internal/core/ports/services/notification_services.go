package services

import (
	"context"

	"github.com/SscSPs/commission_app/internal/core/domain"
)

// ChangeNotifier publishes committed changes to interested clients.
type ChangeNotifier interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}

// ChangeSubscriber hands out change feeds. An empty commissionID subscribes
// to every commission. The returned func ends the subscription.
type ChangeSubscriber interface {
	Subscribe(commissionID string) (<-chan domain.ChangeEvent, func())
}
