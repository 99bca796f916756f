package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/metrics"
	"github.com/SscSPs/commission_app/internal/middleware"
)

// Named tags a notifier for logs and failure metrics.
type Named struct {
	Name     string
	Notifier services.ChangeNotifier
}

// Multi publishes to every target. A failing target does not stop the others.
type Multi struct {
	targets []Named
	metrics *metrics.Metrics
}

func NewMulti(m *metrics.Metrics, targets ...Named) *Multi {
	return &Multi{targets: targets, metrics: m}
}

func (m *Multi) Publish(ctx context.Context, event domain.ChangeEvent) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	var errs []error
	for _, t := range m.targets {
		if err := t.Notifier.Publish(ctx, event); err != nil {
			logger.Warn("Change notification failed",
				slog.String("notifier", t.Name),
				slog.String("commission_id", event.CommissionID),
				slog.String("error", err.Error()))
			m.metrics.RecordPublishFailure(t.Name)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
