// internal/publisher/hub.go
package publisher

import (
	"sync"
)

// Hub fans events out to subscribers.
// A slow subscriber loses events rather than stalling the loop.
// The last event of every name is replayed to new subscribers.
type Hub struct {
	mu      sync.Mutex
	next    int
	subs    map[int]chan Event
	last    map[string]Event
	order   []string
	dropped uint64
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan Event),
		last: make(map[string]Event),
	}
}

// Subscribe registers a receiver with the given buffer.
// cancel closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// room for the replay plus one live event
	if buffer < len(h.order)+1 {
		buffer = len(h.order) + 1
	}

	id := h.next
	h.next++

	ch := make(chan Event, buffer)
	for _, name := range h.order {
		select {
		case ch <- h.last[name]:
		default:
		}
	}
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

func (h *Hub) Publish(ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, seen := h.last[ev.Name]; !seen {
		h.order = append(h.order, ev.Name)
	}
	h.last[ev.Name] = ev

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.dropped++
		}
	}
	return nil
}

// Last returns the most recent event published under name.
func (h *Hub) Last(name string) (Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ev, ok := h.last[name]
	return ev, ok
}

// Dropped counts events not delivered to a full subscriber.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}
