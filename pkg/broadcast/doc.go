// Package broadcast provides a generic pub/sub messaging system with
// non-blocking in-memory delivery.
//
// The package defines two interfaces, Broadcaster and Subscriber, so callers
// can swap the in-memory implementation for an external backend without
// touching consuming code. MemoryBroadcaster delivers each message to every
// active subscriber and drops messages for subscribers whose buffers are
// full, preventing slow consumers from blocking the broadcaster.
//
// Basic usage:
//
//	b := broadcast.NewMemoryBroadcaster[string](100)
//	defer b.Close()
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	sub := b.Subscribe(ctx)
//	go func() {
//		for msg := range sub.Receive(ctx) {
//			fmt.Println(msg.Data)
//		}
//	}()
//
//	b.Broadcast(ctx, broadcast.NewMessage("hello"))
//
// Subscriptions end when the subscriber is closed, the subscribing context
// is canceled, or the broadcaster shuts down; in every case the receive
// channel is closed exactly once.
//
// All types in this package are safe for concurrent use.
package broadcast
