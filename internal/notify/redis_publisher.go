package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// RedisPubSub is the subset of a go-redis client the publisher needs.
type RedisPubSub interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// redisEnvelope tags a change with the instance that committed it.
type redisEnvelope struct {
	Origin string             `json:"origin"`
	Event  domain.ChangeEvent `json:"event"`
}

// RedisPublisher broadcasts change events on a pub/sub channel. A
// RedisSubscriber on every other instance forwards them to its local broker.
type RedisPublisher struct {
	client     RedisPubSub
	channel    string
	instanceID string
}

func NewRedisPublisher(client RedisPubSub, channel, instanceID string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel, instanceID: instanceID}
}

func (p *RedisPublisher) Publish(ctx context.Context, event domain.ChangeEvent) error {
	payload, err := json.Marshal(redisEnvelope{Origin: p.instanceID, Event: event})
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change on %s: %w", p.channel, err)
	}
	return nil
}
