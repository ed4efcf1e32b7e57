package events

import (
	"sync"

	"library-catalog/internal/domains/catalog/model"
	"library-catalog/pkg/logger"
)

// Notifier publishes bookAdded events to interested subscribers.
// Delivery is best-effort and at-most-once: no retry, no persistence,
// no replay. A subscriber that connects after an event was published
// never receives it.
type Notifier interface {
	Publish(event model.BookAddedEvent)
}

// Hub is the in-process Notifier: it fans events out to every
// currently registered subscriber channel.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan model.BookAddedEvent
	nextID int
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan model.BookAddedEvent),
	}
}

// Subscribe registers a subscriber and returns its event channel plus
// a cancel func. The channel is closed on cancel.
func (h *Hub) Subscribe(buffer int) (<-chan model.BookAddedEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan model.BookAddedEvent, buffer)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber whose buffer has
// room. A subscriber that cannot keep up misses the event; the
// publisher never blocks on fan-out.
func (h *Hub) Publish(event model.BookAddedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
			logger.Warn("dropping event for slow subscriber", map[string]interface{}{
				"title": event.Book.Title,
			})
		}
	}
}

// SubscriberCount reports the number of live subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
