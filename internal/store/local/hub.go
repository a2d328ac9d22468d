// ABOUTME: In-process change-event fanout for the local store.
// ABOUTME: Per-user insert and delete channels with unsubscribe cleanup.

package local

import (
	"sync"

	"github.com/google/uuid"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/store"
)

type hub struct {
	mu      sync.Mutex
	closed  bool
	inserts map[string]map[int]chan models.Scrap
	deletes map[string]map[int]chan uuid.UUID
	nextID  int
}

func newHub() *hub {
	return &hub{
		inserts: make(map[string]map[int]chan models.Scrap),
		deletes: make(map[string]map[int]chan uuid.UUID),
	}
}

func (h *hub) subscribeInserts(userID string) *store.InsertSubscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan models.Scrap, subBuffer)
	if h.closed {
		close(ch)
		return store.NewInsertSubscription(ch, func() {})
	}

	id := h.nextID
	h.nextID++
	if h.inserts[userID] == nil {
		h.inserts[userID] = make(map[int]chan models.Scrap)
	}
	h.inserts[userID][id] = ch

	return store.NewInsertSubscription(ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.inserts[userID]; ok {
			if c, ok := subs[id]; ok {
				delete(subs, id)
				close(c)
			}
		}
	})
}

func (h *hub) subscribeDeletes(userID string) *store.DeleteSubscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan uuid.UUID, subBuffer)
	if h.closed {
		close(ch)
		return store.NewDeleteSubscription(ch, func() {})
	}

	id := h.nextID
	h.nextID++
	if h.deletes[userID] == nil {
		h.deletes[userID] = make(map[int]chan uuid.UUID)
	}
	h.deletes[userID][id] = ch

	return store.NewDeleteSubscription(ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.deletes[userID]; ok {
			if c, ok := subs[id]; ok {
				delete(subs, id)
				close(c)
			}
		}
	})
}

// publishInsert delivers to the owner's subscribers. Sends never block; a
// subscriber that has fallen subBuffer events behind misses the event.
func (h *hub) publishInsert(scrap models.Scrap) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.inserts[scrap.UserID] {
		select {
		case ch <- scrap:
		default:
		}
	}
}

func (h *hub) publishDelete(userID string, id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.deletes[userID] {
		select {
		case ch <- id:
		default:
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.inserts {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
	}
	for _, subs := range h.deletes {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
	}
}
