package feed

import (
	"context"
	"slices"
	"sync"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
)

// DefaultBuffer is the number of undelivered events a subscriber may accumulate before it is dropped.
const DefaultBuffer = 256

type subscriber struct {
	ch          chan domain.ChangeEvent
	collections []domain.Collection
}

func (s *subscriber) wants(c domain.Collection) bool {
	return len(s.collections) == 0 || slices.Contains(s.collections, c)
}

// Hub fans committed change events out to subscribers. It is safe for concurrent use.
// A subscriber whose buffer is full is closed rather than skipped, so an open channel never
// has gaps; the observer re-subscribes and reloads its view.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
	buffer int
}

// NewHub creates a hub whose subscribers buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{subs: make(map[int]*subscriber), buffer: buffer}
}

// Ensure Hub implements portsrepo.ChangeFeed
var _ portsrepo.ChangeFeed = (*Hub)(nil)

// Subscribe implements portsrepo.ChangeFeed.
func (h *Hub) Subscribe(ctx context.Context, collections ...domain.Collection) (<-chan domain.ChangeEvent, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	sub := &subscriber{ch: make(chan domain.ChangeEvent, h.buffer), collections: collections}
	h.subs[id] = sub
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() { h.remove(id) })
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return sub.ch, cancel
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(sub.ch)
	}
}

// Publish delivers events, in order, to every interested subscriber.
func (h *Hub) Publish(events ...domain.ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, sub := range h.subs {
		for _, ev := range events {
			if !sub.wants(ev.Collection) {
				continue
			}
			select {
			case sub.ch <- ev:
			default:
				delete(h.subs, id)
				close(sub.ch)
			}
			if _, still := h.subs[id]; !still {
				break
			}
		}
	}
}

// Subscribers returns the number of open subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
