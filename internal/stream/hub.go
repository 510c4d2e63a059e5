package stream

import (
	"log/slog"
	"sync"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
)

// Hub fans attendance updates out to per-student subscribers. Publishing
// never blocks the marking path: a subscriber that cannot keep up has the
// update dropped and is expected to self-correct on its next full history
// fetch, which is the same eventual-consistency contract the incremental
// session relies on.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[chan v1.StreamUpdate]struct{}
	buffer int
}

// NewHub creates a hub whose subscriber channels buffer up to buffer
// updates each.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[string]map[chan v1.StreamUpdate]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a listener for one student's updates. The returned
// cancel func unregisters the listener and closes the channel; it is safe
// to call more than once.
func (h *Hub) Subscribe(studentID string) (<-chan v1.StreamUpdate, func()) {
	ch := make(chan v1.StreamUpdate, h.buffer)

	h.mu.Lock()
	listeners, ok := h.subs[studentID]
	if !ok {
		listeners = make(map[chan v1.StreamUpdate]struct{})
		h.subs[studentID] = listeners
	}
	listeners[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if listeners, ok := h.subs[studentID]; ok {
				delete(listeners, ch)
				if len(listeners) == 0 {
					delete(h.subs, studentID)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Publish delivers an update to every subscriber of the update's student.
// Full subscriber buffers are skipped, not waited on.
func (h *Hub) Publish(update v1.StreamUpdate) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[update.StudentID] {
		select {
		case ch <- update:
		default:
			slog.Warn("Dropping stream update for slow subscriber",
				"student_id", update.StudentID,
				"date", update.Date)
		}
	}
}

// SubscriberCount reports the number of active subscribers for a student.
func (h *Hub) SubscriberCount(studentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[studentID])
}
