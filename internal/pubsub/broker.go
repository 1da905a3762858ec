// Package pubsub provides an in-process publish/subscribe broker with
// named topics and per-subscriber filter predicates.
//
// The broker is an explicitly constructed value passed to whoever needs
// it, not package-level state, so its lifecycle is visible and tests can
// run isolated instances side by side.
package pubsub

import (
	"context"
	"sync"
)

// DefaultBufferSize is the per-subscriber channel capacity used by NewBroker.
const DefaultBufferSize = 16

type subscriber[T any] struct {
	ch     chan T
	filter func(T) bool
}

// Broker routes published values to the live subscribers of a topic.
//
// Semantics:
//   - Publish is fire-and-forget: it delivers to every current subscriber
//     of the topic and returns. It never blocks and never fails, even
//     with no subscribers or with subscribers that stopped reading; a
//     subscriber whose buffer is full has that event dropped.
//   - A subscription only sees events published after it was created;
//     there is no persistence or replay.
//   - Per subscriber, events on one topic arrive in publish order. There
//     is no cross-topic ordering guarantee.
//   - A subscriber's filter predicate decides whether a topic-delivered
//     event is surfaced to that subscriber; filtered events are consumed
//     silently.
//
// Example:
//
//	broker := pubsub.NewBroker[string]()
//	defer broker.Close()
//
//	events := broker.Subscribe(ctx, "greetings", nil)
//	broker.Publish("greetings", "hello")
//	fmt.Println(<-events) // Output: hello
type Broker[T any] struct {
	mu          sync.RWMutex
	subscribers map[string]map[uint64]*subscriber[T]
	nextID      uint64
	bufferSize  int
	closed      bool
}

// NewBroker creates a broker whose subscriber channels buffer
// DefaultBufferSize events.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](DefaultBufferSize)
}

// NewBrokerWithBuffer creates a broker with the given per-subscriber
// channel capacity. Capacity below 1 is raised to 1 so a publish to an
// idle subscriber is never dropped outright.
func NewBrokerWithBuffer[T any](bufferSize int) *Broker[T] {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Broker[T]{
		subscribers: make(map[string]map[uint64]*subscriber[T]),
		bufferSize:  bufferSize,
	}
}

// Publish delivers the value to every live subscriber of the topic whose
// filter accepts it. It never blocks: a subscriber that has fallen
// bufferSize events behind loses this one.
func (b *Broker[T]) Publish(topic string, value T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, sub := range b.subscribers[topic] {
		if sub.filter != nil && !sub.filter(value) {
			continue
		}
		select {
		case sub.ch <- value:
		default:
			// Subscriber buffer full; drop rather than block the publisher.
		}
	}
}

// Subscribe registers a live subscription on the topic. The returned
// channel yields, in publish order, every subsequent event that passes
// the filter; a nil filter passes everything. The channel closes when ctx
// is cancelled or the broker is closed, releasing the subscription's
// place in the topic's live set.
func (b *Broker[T]) Subscribe(ctx context.Context, topic string, filter func(T) bool) <-chan T {
	sub := &subscriber[T]{
		ch:     make(chan T, b.bufferSize),
		filter: filter,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch
	}

	id := b.nextID
	b.nextID++
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[uint64]*subscriber[T])
	}
	b.subscribers[topic][id] = sub
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(topic, id)
	}()

	return sub.ch
}

// SubscriberCount reports the number of live subscriptions on a topic.
func (b *Broker[T]) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}

// Close shuts the broker down: all subscriber channels are closed and
// later publishes are ignored. Close is idempotent.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, subs := range b.subscribers {
		for _, sub := range subs {
			close(sub.ch)
		}
	}
	b.subscribers = make(map[string]map[uint64]*subscriber[T])
}

func (b *Broker[T]) unsubscribe(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	sub, ok := b.subscribers[topic][id]
	if !ok {
		return
	}

	delete(b.subscribers[topic], id)
	if len(b.subscribers[topic]) == 0 {
		delete(b.subscribers, topic)
	}
	close(sub.ch)
}
