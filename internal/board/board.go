// ABOUTME: Board is the synchronizer owning the local copy of a user's scraps.
// ABOUTME: Initial fetch plus live insert/delete events, confirm-then-apply mutations.

package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/store"
)

var ErrNotInitialized = errors.New("board not initialized")

// Board keeps an in-memory scrap list reconciled with the remote store.
// The list is always ordered by creation time descending, all mutations
// go through the defined entry points, and events observed before the
// initial fetch resolves are buffered and replayed afterwards.
type Board struct {
	store store.Store

	mu             sync.Mutex
	userID         string
	scraps         []models.Scrap
	loading        bool
	loadErr        error
	pendingInserts []models.Scrap
	pendingDeletes []uuid.UUID

	inserts  *store.InsertSubscription
	deletes  *store.DeleteSubscription
	dispatch chan struct{} // closed when the dispatcher goroutine exits

	changes chan struct{}
}

// New creates a board on top of a store. Call Initialize before use.
func New(st store.Store) *Board {
	return &Board{
		store:   st,
		changes: make(chan struct{}, 1),
	}
}

// Initialize loads the user's scraps and opens live subscriptions.
// Re-initializing (same or different identifier) tears down the previous
// subscriptions first, so no event from an old channel is ever applied.
// A fetch failure leaves the list empty, records the error, and keeps the
// subscriptions open so later events still apply.
func (b *Board) Initialize(ctx context.Context, userID string) error {
	b.Teardown()

	b.mu.Lock()
	b.userID = userID
	b.scraps = nil
	b.loading = true
	b.loadErr = nil
	b.pendingInserts = nil
	b.pendingDeletes = nil
	b.mu.Unlock()

	// Subscribe before fetching so nothing slips between the snapshot
	// and the first delivered event.
	inserts, err := b.store.SubscribeInserts(ctx, userID)
	if err != nil {
		b.finishLoad(nil, fmt.Errorf("subscribe inserts: %w", err))
		return fmt.Errorf("subscribe inserts: %w", err)
	}
	deletes, err := b.store.SubscribeDeletes(ctx, userID)
	if err != nil {
		inserts.Close()
		b.finishLoad(nil, fmt.Errorf("subscribe deletes: %w", err))
		return fmt.Errorf("subscribe deletes: %w", err)
	}

	done := make(chan struct{})
	b.mu.Lock()
	b.inserts = inserts
	b.deletes = deletes
	b.dispatch = done
	b.mu.Unlock()

	go b.run(inserts, deletes, done)

	scraps, err := b.store.List(ctx, userID)
	if err != nil {
		b.finishLoad(nil, err)
		return fmt.Errorf("fetch scraps: %w", err)
	}

	b.finishLoad(scraps, nil)
	return nil
}

// run applies subscription events until both channels close.
func (b *Board) run(inserts *store.InsertSubscription, deletes *store.DeleteSubscription, done chan struct{}) {
	defer close(done)

	insertC := inserts.C
	deleteC := deletes.C
	for insertC != nil || deleteC != nil {
		select {
		case scrap, ok := <-insertC:
			if !ok {
				insertC = nil
				continue
			}
			b.applyInsert(scrap)
		case id, ok := <-deleteC:
			if !ok {
				deleteC = nil
				continue
			}
			b.applyDelete(id)
		}
	}
}

// finishLoad installs the fetched snapshot and replays buffered events.
func (b *Board) finishLoad(scraps []models.Scrap, err error) {
	b.mu.Lock()
	b.scraps = scraps
	b.loadErr = err
	b.loading = false

	pendingIns := b.pendingInserts
	pendingDel := b.pendingDeletes
	b.pendingInserts = nil
	b.pendingDeletes = nil

	for _, scrap := range pendingIns {
		b.insertLocked(scrap)
	}
	for _, id := range pendingDel {
		b.deleteLocked(id)
	}
	b.mu.Unlock()

	b.notify()
}

// applyInsert adds a remote insert to the list, deduplicated by id so a
// record the client optimistically added after its own Add is not doubled.
func (b *Board) applyInsert(scrap models.Scrap) {
	b.mu.Lock()
	if b.loading {
		b.pendingInserts = append(b.pendingInserts, scrap)
		b.mu.Unlock()
		return
	}
	changed := b.insertLocked(scrap)
	b.mu.Unlock()

	if changed {
		b.notify()
	}
}

// applyDelete removes a record by id; a no-op when already absent.
func (b *Board) applyDelete(id uuid.UUID) {
	b.mu.Lock()
	if b.loading {
		b.pendingDeletes = append(b.pendingDeletes, id)
		b.mu.Unlock()
		return
	}
	changed := b.deleteLocked(id)
	b.mu.Unlock()

	if changed {
		b.notify()
	}
}

func (b *Board) insertLocked(scrap models.Scrap) bool {
	for i := range b.scraps {
		if b.scraps[i].ID == scrap.ID {
			return false
		}
	}

	// Inserts are normally the newest record, so this is a prepend; the
	// scan keeps ordering right if an older record ever arrives late.
	at := len(b.scraps)
	for i := range b.scraps {
		if scrap.CreatedAt.After(b.scraps[i].CreatedAt) {
			at = i
			break
		}
	}
	b.scraps = append(b.scraps, models.Scrap{})
	copy(b.scraps[at+1:], b.scraps[at:])
	b.scraps[at] = scrap
	return true
}

func (b *Board) deleteLocked(id uuid.UUID) bool {
	for i := range b.scraps {
		if b.scraps[i].ID == id {
			b.scraps = append(b.scraps[:i], b.scraps[i+1:]...)
			return true
		}
	}
	return false
}

// Add sends the draft to the store and, only after the store confirms,
// prepends the created record locally. On failure local state is
// untouched and the error is returned to the caller.
func (b *Board) Add(ctx context.Context, draft models.Draft) (models.Scrap, error) {
	b.mu.Lock()
	userID := b.userID
	b.mu.Unlock()
	if userID == "" {
		return models.Scrap{}, ErrNotInitialized
	}

	scrap, err := b.store.Insert(ctx, userID, draft)
	if err != nil {
		return models.Scrap{}, fmt.Errorf("add scrap: %w", err)
	}

	b.applyInsert(scrap)
	return scrap, nil
}

// Delete removes the scrap remotely (scoped by id and user) and applies
// the removal locally only after the store confirms.
func (b *Board) Delete(ctx context.Context, id uuid.UUID) error {
	b.mu.Lock()
	userID := b.userID
	b.mu.Unlock()
	if userID == "" {
		return ErrNotInitialized
	}

	if err := b.store.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete scrap: %w", err)
	}

	b.applyDelete(id)
	return nil
}

// Teardown closes both subscriptions and waits for in-flight events to
// drain. Safe to call repeatedly; Initialize calls it on re-entry.
func (b *Board) Teardown() {
	b.mu.Lock()
	inserts := b.inserts
	deletes := b.deletes
	done := b.dispatch
	b.inserts = nil
	b.deletes = nil
	b.dispatch = nil
	b.mu.Unlock()

	if inserts != nil {
		inserts.Close()
	}
	if deletes != nil {
		deletes.Close()
	}
	if done != nil {
		<-done
	}
}

// Scraps returns a copy of the current list, newest first.
func (b *Board) Scraps() []models.Scrap {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Scrap, len(b.scraps))
	copy(out, b.scraps)
	return out
}

// Loading reports whether the initial fetch is still in flight.
func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Err returns the initial-fetch error, if any. An empty board with a nil
// Err genuinely has no scraps yet.
func (b *Board) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadErr
}

// Changes is a coalesced signal that the list changed; used by live views
// to re-render. At most one notification is buffered.
func (b *Board) Changes() <-chan struct{} {
	return b.changes
}

func (b *Board) notify() {
	select {
	case b.changes <- struct{}{}:
	default:
	}
}
