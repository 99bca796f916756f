package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

// RedisSubscriber relays changes committed on other instances into the
// local notifier, normally the SSE Broker. Messages published by this
// instance are skipped since the broker already saw them.
type RedisSubscriber struct {
	client     *redis.Client
	channel    string
	instanceID string
	local      services.ChangeNotifier
	logger     *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRedisSubscriber(client *redis.Client, channel, instanceID string, local services.ChangeNotifier, logger *slog.Logger) *RedisSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisSubscriber{
		client:     client,
		channel:    channel,
		instanceID: instanceID,
		local:      local,
		logger:     logger.With(slog.String("component", "redis_subscriber"), slog.String("channel", channel)),
	}
}

// Start subscribes and relays in the background until ctx ends or Stop is
// called. The subscription is confirmed before Start returns.
func (s *RedisSubscriber) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	pubsub := s.client.Subscribe(ctx, s.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		s.cancel()
		_ = pubsub.Close()
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := pubsub.Close(); err != nil {
				s.logger.Warn("Error closing redis subscription", slog.String("error", err.Error()))
			}
		}()
		s.Relay(ctx, pubsub.Channel())
	}()
	s.logger.Info("Relaying changes from redis")
	return nil
}

// Stop ends the relay and waits for it to finish.
func (s *RedisSubscriber) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Relay forwards messages until ctx ends or msgs is closed.
func (s *RedisSubscriber) Relay(ctx context.Context, msgs <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			s.forward(ctx, msg)
		}
	}
}

func (s *RedisSubscriber) forward(ctx context.Context, msg *redis.Message) {
	var env redisEnvelope
	if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
		s.logger.Warn("Dropping malformed change message", slog.String("error", err.Error()))
		return
	}
	if env.Origin == s.instanceID || env.Event.CommissionID == "" {
		return
	}
	if err := s.local.Publish(ctx, env.Event); err != nil {
		s.logger.Warn("Failed to relay change", slog.String("commission_id", env.Event.CommissionID), slog.String("error", err.Error()))
	}
}
