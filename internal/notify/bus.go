// Package notify implements the reload broadcast the ledger emits after
// balance-affecting commits. It is an explicit subscriber list rather than a
// global emitter, so delivery order and test isolation stay controllable.
package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/moneta-app/moneta/internal/domain"
)

// Subscription receives reload events on C until cancelled.
type Subscription struct {
	C      <-chan domain.ReloadEvent
	cancel func()
}

// Cancel removes the subscription from the bus and closes C.
func (s *Subscription) Cancel() {
	s.cancel()
}

// Bus fans reload events out to all current subscribers. Publishing is
// fire-and-forget: a subscriber that is not draining its channel loses
// events instead of blocking the publisher.
type Bus struct {
	mu      sync.Mutex
	nextID  int
	subs    map[int]chan domain.ReloadEvent
	logger  zerolog.Logger
	buffer  int
	dropped int
}

// NewBus creates a Bus with the given per-subscriber buffer size.
func NewBus(logger zerolog.Logger, buffer int) *Bus {
	if buffer <= 0 {
		buffer = 16
	}

	return &Bus{
		subs:   make(map[int]chan domain.ReloadEvent),
		logger: logger,
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan domain.ReloadEvent, b.buffer)
	b.subs[id] = ch

	return &Subscription{
		C: ch,
		cancel: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		},
	}
}

// Publish delivers the event to every subscriber without blocking.
func (b *Bus) Publish(event domain.ReloadEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.dropped++
			b.logger.Warn().
				Str("event_type", event.Type).
				Msg("reload subscriber not draining, event dropped")
		}
	}
}

// Dropped reports how many events were lost to full subscriber buffers.
func (b *Bus) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// NotifyReload publishes the coarse "reload all" signal.
func (b *Bus) NotifyReload(_ context.Context, accountID string) {
	b.Publish(domain.ReloadEvent{Type: domain.EventTypeReloadAll, AccountID: accountID})
}
