package store

import "sync"

// Hub is a last-value broadcast channel. Every publish delivers the full
// current snapshot to every subscriber; there is no diffing. A subscriber
// that attaches after the first publish immediately receives the last
// snapshot. A slow subscriber never blocks a publish: its pending snapshot is
// replaced by the newer one (latest wins), which is safe because every
// snapshot is the complete collection.
type Hub[T any] struct {
	mu      sync.Mutex
	subs    map[int]chan T
	nextID  int
	last    T
	hasLast bool
}

// NewHub creates an empty hub with no subscribers and no last value.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[int]chan T)}
}

// Subscribe registers a new subscriber and returns its channel plus a cancel
// function. Cancel is safe to call more than once; after cancel the channel
// is closed and no further snapshots are delivered. Never cancelling leaks
// nothing beyond the subscriber's own channel for the process lifetime.
func (h *Hub[T]) Subscribe() (<-chan T, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan T, 1)
	h.subs[id] = ch
	if h.hasLast {
		ch <- h.last
	}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			close(ch)
			h.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish records v as the last value and fans it out to every subscriber.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = v
	h.hasLast = true
	for _, ch := range h.subs {
		select {
		case ch <- v:
		default:
			// Drop the stale pending snapshot, then deliver the new one.
			// Publishers are serialized by the mutex so the second send
			// cannot block on a buffered channel of one.
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub[T]) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
