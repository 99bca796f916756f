// Package notify delivers committed commission changes to live clients and
// external consumers.
package notify

import (
	"context"
	"sync"

	"github.com/SscSPs/commission_app/internal/core/domain"
)

const defaultBufferSize = 16

type subscription struct {
	commissionID string
	ch           chan domain.ChangeEvent
}

// Broker fans change events out to in-process subscribers. A slow subscriber
// misses events instead of blocking the publisher.
type Broker struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]subscription
	buffer int
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[uint64]subscription), buffer: defaultBufferSize}
}

// Publish never fails; dropped deliveries are not reported.
func (b *Broker) Publish(_ context.Context, event domain.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.subs {
		if s.commissionID != "" && s.commissionID != event.CommissionID {
			continue
		}
		select {
		case s.ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a feed. An empty commissionID receives every event.
func (b *Broker) Subscribe(commissionID string) (<-chan domain.ChangeEvent, func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan domain.ChangeEvent, b.buffer)
	b.subs[id] = subscription{commissionID: commissionID, ch: ch}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// SubscriberCount reports the number of live subscriptions.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
