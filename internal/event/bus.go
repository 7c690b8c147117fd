package event

import (
	"errors"
	"sync"
	"time"
)

// Sentinel errors for the bus.
var (
	// ErrBusClosed is returned when publishing or subscribing on a
	// closed bus.
	ErrBusClosed = errors.New("event bus is closed")

	// ErrNilHandler is returned when a nil handler is subscribed.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrEmptyTopic is returned for an empty topic string.
	ErrEmptyTopic = errors.New("topic cannot be empty")
)

// Subscription identifies one handler registration.
type Subscription struct {
	topic string
	id    uint64
}

// Bus is a synchronous topic bus. Delivery order follows subscription
// order. The bus itself is safe for concurrent use, though the engine
// publishes from a single goroutine.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]busEntry
	closed bool
}

type busEntry struct {
	id uint64
	fn Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]busEntry)}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic string, fn Handler) (Subscription, error) {
	if topic == "" {
		return Subscription{}, ErrEmptyTopic
	}
	if fn == nil {
		return Subscription{}, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return Subscription{}, ErrBusClosed
	}

	b.nextID++
	b.subs[topic] = append(b.subs[topic], busEntry{id: b.nextID, fn: fn})
	return Subscription{topic: topic, id: b.nextID}, nil
}

// Unsubscribe removes a handler registration. Unknown subscriptions are
// ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.subs[sub.topic]
	for i, e := range entries {
		if e.id == sub.id {
			b.subs[sub.topic] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to every handler subscribed to its topic,
// synchronously, in subscription order.
func (b *Bus) Publish(topic string, payload any) error {
	if topic == "" {
		return ErrEmptyTopic
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	entries := make([]busEntry, len(b.subs[topic]))
	copy(entries, b.subs[topic])
	b.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload, Time: time.Now()}
	for _, e := range entries {
		e.fn(ev)
	}
	return nil
}

// Close shuts the bus down; further publishes and subscribes fail with
// ErrBusClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[string][]busEntry)
}
