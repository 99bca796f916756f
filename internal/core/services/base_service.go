package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/metrics"
	"github.com/SscSPs/commission_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	repos    portsrepo.RepositoryProvider
	notifier portssvc.ChangeNotifier
	metrics  *metrics.Metrics
	clock    func() time.Time
}

// ServiceOption is a functional option for configuring a service
type ServiceOption func(*BaseService)

// WithNotifier publishes committed changes to n.
func WithNotifier(n portssvc.ChangeNotifier) ServiceOption {
	return func(s *BaseService) {
		s.notifier = n
	}
}

// WithMetrics records business counters on m.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.metrics = m
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func newBaseService(repos portsrepo.RepositoryProvider, options ...ServiceOption) BaseService {
	base := BaseService{repos: repos, clock: time.Now}
	for _, option := range options {
		option(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	return s.clock().UTC()
}

// logUnexpected logs err unless it is an expected business outcome.
func (s *BaseService) logUnexpected(ctx context.Context, err error, msg string, keyvals ...any) {
	for _, expected := range []error{apperrors.ErrNotFound, apperrors.ErrValidation, apperrors.ErrConflict} {
		if errors.Is(err, expected) {
			return
		}
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// loadActive returns a commission that is not in the trash. With forUpdate
// the row is locked for the running transaction.
func (s *BaseService) loadActive(ctx context.Context, commissionID string, forUpdate bool) (*domain.Commission, error) {
	find := s.repos.CommissionRepo.FindCommissionByID
	if forUpdate {
		find = s.repos.CommissionRepo.FindCommissionForUpdate
	}
	c, err := find(ctx, commissionID)
	if err != nil {
		return nil, err
	}
	if c.IsDeleted() {
		return nil, apperrors.NewNotFoundError("commission " + commissionID + " not found")
	}
	return c, nil
}

// saveCommission stamps the audit fields, checks invariants and persists c.
func (s *BaseService) saveCommission(ctx context.Context, c *domain.Commission, actorID string) error {
	c.Touch(actorID, s.now())
	if err := c.CheckInvariants(); err != nil {
		return err
	}
	if err := s.repos.CommissionRepo.UpdateCommission(ctx, *c); err != nil {
		return fmt.Errorf("failed to update commission %s: %w", c.CommissionID, err)
	}
	return nil
}

// changeStatus moves c to status to, persists it and writes the
// status_changed event. Field changes that belong to the transition must be
// made on c before the call.
func (s *BaseService) changeStatus(ctx context.Context, c *domain.Commission, to domain.CommissionStatus, note, actorID string) error {
	from := c.Status
	if !domain.CanTransition(from, to) {
		return domain.TransitionError(from, to)
	}
	c.Status = to
	if err := s.saveCommission(ctx, c, actorID); err != nil {
		return err
	}
	return s.appendEvent(ctx, *c, domain.ActionStatusChanged, domain.StatusChangeDetails(from, to, note), actorID)
}

// publish notifies subscribers after a commit. Failures are logged only.
func (s *BaseService) publish(ctx context.Context, c domain.Commission, action domain.EventAction, actorID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, domain.NewChangeEvent(c, action, actorID, s.now())); err != nil {
		s.LogError(ctx, err, "Failed to publish commission change",
			slog.String("commission_id", c.CommissionID),
			slog.String("action", string(action)))
	}
}
