// ABOUTME: Store contract for the hosted scrap collection.
// ABOUTME: Query, insert, delete, plus per-user insert/delete change subscriptions.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/harper/scraps/internal/models"
)

var (
	ErrNotFound        = errors.New("scrap not found")
	ErrAmbiguousPrefix = errors.New("prefix matches multiple scraps")
	ErrPrefixTooShort  = errors.New("prefix must be at least 6 characters")
)

// Store is the remote persistence contract. Implementations must return
// List results ordered by creation time descending, scope Delete by both
// id and user, and have Insert assign the record id and timestamp.
type Store interface {
	// List returns all scraps owned by userID, newest first.
	List(ctx context.Context, userID string) ([]models.Scrap, error)

	// Insert persists a draft for userID and returns the created record.
	Insert(ctx context.Context, userID string, draft models.Draft) (models.Scrap, error)

	// Delete removes the scrap with the given id, but only when it is
	// owned by userID.
	Delete(ctx context.Context, id uuid.UUID, userID string) error

	// GetByPrefix finds the scrap owned by userID whose id starts with
	// prefix (at least 6 characters, ErrAmbiguousPrefix on collisions).
	GetByPrefix(ctx context.Context, userID, prefix string) (models.Scrap, error)

	// SubscribeInserts delivers newly inserted scraps owned by userID.
	SubscribeInserts(ctx context.Context, userID string) (*InsertSubscription, error)

	// SubscribeDeletes delivers ids of deleted scraps owned by userID.
	SubscribeDeletes(ctx context.Context, userID string) (*DeleteSubscription, error)

	// Close releases the store's resources.
	Close() error
}

// InsertSubscription is a live channel of insert events. Close must be
// called when the subscriber goes away; the channel is closed afterwards.
type InsertSubscription struct {
	C <-chan models.Scrap

	once  sync.Once
	close func()
}

// NewInsertSubscription wraps a channel and a release function.
func NewInsertSubscription(c <-chan models.Scrap, release func()) *InsertSubscription {
	return &InsertSubscription{C: c, close: release}
}

// Close releases the subscription. Safe to call more than once.
func (s *InsertSubscription) Close() {
	s.once.Do(func() {
		if s.close != nil {
			s.close()
		}
	})
}

// DeleteSubscription is a live channel of delete events carrying scrap ids.
type DeleteSubscription struct {
	C <-chan uuid.UUID

	once  sync.Once
	close func()
}

// NewDeleteSubscription wraps a channel and a release function.
func NewDeleteSubscription(c <-chan uuid.UUID, release func()) *DeleteSubscription {
	return &DeleteSubscription{C: c, close: release}
}

// Close releases the subscription. Safe to call more than once.
func (s *DeleteSubscription) Close() {
	s.once.Do(func() {
		if s.close != nil {
			s.close()
		}
	})
}
