package broadcast

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Message wraps a broadcast payload with a unique identifier so consumers
// can deduplicate or trace individual deliveries.
type Message[T any] struct {
	ID   uuid.UUID
	Data T
}

// NewMessage creates a message with a generated identifier.
func NewMessage[T any](data T) Message[T] {
	return Message[T]{ID: uuid.New(), Data: data}
}

// Broadcaster sends messages to multiple subscribers.
type Broadcaster[T any] interface {
	Subscribe(ctx context.Context) Subscriber[T]
	Broadcast(ctx context.Context, msg Message[T]) error
	Close() error
}

// Subscriber receives broadcast messages.
type Subscriber[T any] interface {
	Receive(ctx context.Context) <-chan Message[T]
	Close()
}

// MemoryBroadcaster is an in-memory Broadcaster implementation with
// non-blocking delivery. If a subscriber's buffer is full, messages are
// dropped for that subscriber rather than blocking the broadcast, so slow
// consumers cannot stall the rest of the system.
type MemoryBroadcaster[T any] struct {
	mu      sync.RWMutex
	subs    map[uuid.UUID]*memorySubscriber[T]
	bufSize int
	closed  bool
}

// NewMemoryBroadcaster creates a broadcaster with the given per-subscriber
// buffer size. Buffer sizes below 1 are clamped to 1.
func NewMemoryBroadcaster[T any](bufferSize int) *MemoryBroadcaster[T] {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &MemoryBroadcaster[T]{
		subs:    make(map[uuid.UUID]*memorySubscriber[T]),
		bufSize: bufferSize,
	}
}

// Subscribe registers a new subscriber. The subscription is removed
// automatically when ctx is canceled or when the subscriber is closed.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	sub := &memorySubscriber[T]{
		id: uuid.New(),
		ch: make(chan Message[T], b.bufSize),
	}
	sub.unregister = func() { b.remove(sub.id) }

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.markClosed()
		return sub
	}
	b.subs[sub.id] = sub
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub
}

// Broadcast delivers the message to every active subscriber without blocking.
func (b *MemoryBroadcaster[T]) Broadcast(_ context.Context, msg Message[T]) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}
	for _, sub := range b.subs {
		select {
		case sub.ch <- msg:
		default: // buffer full, drop for this subscriber
		}
	}
	return nil
}

// Close shuts down the broadcaster and all active subscriptions.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for id, sub := range b.subs {
		sub.markClosed()
		delete(b.subs, id)
	}
	return nil
}

func (b *MemoryBroadcaster[T]) remove(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[id]; ok {
		sub.markClosed()
		delete(b.subs, id)
	}
}

type memorySubscriber[T any] struct {
	id         uuid.UUID
	ch         chan Message[T]
	once       sync.Once
	unregister func()
}

// Receive returns the subscriber's message channel. The channel is closed
// when the subscription ends.
func (s *memorySubscriber[T]) Receive(_ context.Context) <-chan Message[T] {
	return s.ch
}

// Close ends the subscription and releases its resources.
func (s *memorySubscriber[T]) Close() {
	if s.unregister != nil {
		s.unregister()
	}
	s.markClosed()
}

func (s *memorySubscriber[T]) markClosed() {
	s.once.Do(func() { close(s.ch) })
}
