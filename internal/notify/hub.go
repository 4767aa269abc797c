// Package notify fans out content-free inventory change signals to
// in-process subscribers.
package notify

import "sync"

// Hub broadcasts a change signal to every active subscription. Publish never
// blocks and never fails: a subscriber that is not draining its channel
// misses signals and is expected to re-query current state on its own.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

// Subscription receives change signals on C until cancelled. Late
// subscribers see no history.
type Subscription struct {
	C    <-chan struct{}
	ch   chan struct{}
	hub  *Hub
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

func (h *Hub) Subscribe() *Subscription {
	ch := make(chan struct{}, 1)
	sub := &Subscription{C: ch, ch: ch, hub: h}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Publish delivers at most one signal per subscriber. Safe to call
// concurrently with Subscribe, Cancel and other Publish calls.
func (h *Hub) Publish() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

// Cancel removes the subscription from the hub. Idempotent.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		s.hub.mu.Unlock()
	})
}
