package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/bsm/redislock"
)

const (
	purgeLockKey        = "lock:commission-trash-purge"
	defaultPurgeLockTTL = time.Minute
)

// Locker is the part of *redislock.Client the purger needs.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error)
}

// TrashPurger periodically removes trashed commissions past retention. With
// a Locker only one replica purges per tick.
type TrashPurger struct {
	trash    portssvc.TrashSvc
	interval time.Duration
	locker   Locker
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTrashPurger creates a purger. locker may be nil for single-instance
// deployments.
func NewTrashPurger(trash portssvc.TrashSvc, interval time.Duration, locker Locker, logger *slog.Logger) *TrashPurger {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TrashPurger{
		trash:    trash,
		interval: interval,
		locker:   locker,
		logger:   logger.With(slog.String("job", "trash_purger")),
	}
}

// Start runs one purge immediately and then one per interval until Stop or
// ctx is done.
func (p *TrashPurger) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.RunOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.RunOnce(ctx)
			}
		}
	}()
	p.logger.Info("Trash purger started", slog.Duration("interval", p.interval))
}

// Stop ends the loop and waits for a running purge to finish.
func (p *TrashPurger) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// RunOnce purges expired commissions. It returns the number purged, or 0
// when another instance holds the lock.
func (p *TrashPurger) RunOnce(ctx context.Context) int64 {
	if p.locker != nil {
		lock, err := p.locker.Obtain(ctx, purgeLockKey, defaultPurgeLockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			p.logger.Debug("Purge lock held by another instance, skipping")
			return 0
		} else if err != nil {
			p.logger.Warn("Error obtaining purge lock, skipping", slog.String("error", err.Error()))
			return 0
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				p.logger.Warn("Failed to release purge lock", slog.String("error", err.Error()))
			}
		}()
	}

	n, err := p.trash.PurgeExpired(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.logger.Error("Trash purge failed", slog.String("error", err.Error()))
		}
		return 0
	}
	return n
}
