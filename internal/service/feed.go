package service

import (
	"sync"

	"grievancehub/internal/model"
)

// Feed event types.
const (
	FeedCreated   = "created"
	FeedResponded = "responded"
)

// FeedEvent is pushed to subscribed admin dashboards when a grievance is
// created or responded to.
type FeedEvent struct {
	Type      string          `json:"type"`
	Grievance model.Grievance `json:"grievance"`
}

// Hub fans feed events out to subscribers. Delivery is best effort: a
// subscriber whose buffer is full is dropped rather than blocking the
// publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[chan FeedEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan FeedEvent]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel.
func (h *Hub) Subscribe() chan FeedEvent {
	ch := make(chan FeedEvent, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call for
// a channel the hub already dropped.
func (h *Hub) Unsubscribe(ch chan FeedEvent) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Broadcast delivers the event to every subscriber that can accept it. A nil
// hub is a no-op so services can run without a feed wired in.
func (h *Hub) Broadcast(ev FeedEvent) {
	if h == nil {
		return
	}
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			delete(h.subs, ch)
			close(ch)
		}
	}
	h.mu.Unlock()
}
