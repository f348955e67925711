// Package editsignal broadcasts which node is currently editable, so an
// external rename surface can react without being owned by the tree core.
package editsignal

import "sync"

// Bus is a small synchronous publish/subscribe channel. Publishing a node id
// means "this node is now editable"; publishing blank means "none".
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(nodeID string)
}

func New() *Bus {
	return &Bus{subs: map[int]func(nodeID string){}}
}

// Subscribe registers fn for every future signal. The returned function
// cancels the subscription.
func (b *Bus) Subscribe(fn func(nodeID string)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers nodeID to every subscriber, synchronously, on the
// caller's goroutine.
func (b *Bus) Publish(nodeID string) {
	b.mu.Lock()
	fns := make([]func(string), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(nodeID)
	}
}
