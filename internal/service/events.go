package service

import (
	"sync"
	"time"

	"currency-exchange-gateway/internal/core/domain"
)

const subscriberBuffer = 16

// EventHub fans observable state changes out to subscribers. Delivery is
// best-effort: a subscriber whose buffer is full misses the event rather
// than blocking the publisher.
type EventHub struct {
	mu   sync.Mutex
	subs map[int]chan domain.Event
	next int
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[int]chan domain.Event)}
}

// Subscribe returns a receive channel and a cancel func. Cancel closes the
// channel and stops delivery.
func (h *EventHub) Subscribe() (<-chan domain.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan domain.Event, subscriberBuffer)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every current subscriber.
func (h *EventHub) Publish(event domain.Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close drops all subscribers.
func (h *EventHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
