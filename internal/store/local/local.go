// ABOUTME: Local scrap store backed by badger with type-prefixed keys.
// ABOUTME: Implements the store contract including in-process change subscriptions.

package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/store"
)

const (
	// ScrapPrefix is the key prefix for scraps.
	ScrapPrefix = "scrap:"

	subBuffer = 64
)

// Store is a badger-backed scrap store. Change events for inserts and
// deletes are fanned out to in-process subscribers, which makes the store
// behave like the hosted one from the synchronizer's point of view.
type Store struct {
	db  *badger.DB
	hub *hub
}

// Open opens (creating if needed) the badger database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(filepath.Join(dir, "scraps.badger")).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &Store{db: db, hub: newHub()}, nil
}

// Close closes the database and all open subscriptions.
func (s *Store) Close() error {
	s.hub.closeAll()
	return s.db.Close()
}

func scrapKey(id uuid.UUID) []byte {
	return []byte(ScrapPrefix + id.String())
}

// List returns all scraps owned by userID, newest first.
func (s *Store) List(ctx context.Context, userID string) ([]models.Scrap, error) {
	var scraps []models.Scrap

	prefix := []byte(ScrapPrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			err := it.Item().Value(func(val []byte) error {
				var scrap models.Scrap
				if err := json.Unmarshal(val, &scrap); err != nil {
					return nil // Skip invalid records
				}
				if scrap.UserID == userID {
					scraps = append(scraps, scrap)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(scraps, func(i, j int) bool {
		return scraps[i].CreatedAt.After(scraps[j].CreatedAt)
	})
	return scraps, nil
}

// Insert persists a draft and returns the created record with assigned
// id and timestamp, then notifies insert subscribers.
func (s *Store) Insert(ctx context.Context, userID string, draft models.Draft) (models.Scrap, error) {
	if err := draft.Validate(); err != nil {
		return models.Scrap{}, err
	}

	scrap := draft.Materialize(userID)
	scrap.ID = uuid.New()
	scrap.CreatedAt = time.Now().UTC()

	encoded, err := json.Marshal(scrap)
	if err != nil {
		return models.Scrap{}, fmt.Errorf("marshal scrap: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(scrapKey(scrap.ID), encoded)
	})
	if err != nil {
		return models.Scrap{}, fmt.Errorf("store scrap: %w", err)
	}

	s.hub.publishInsert(scrap)
	return scrap, nil
}

// Delete removes a scrap scoped by id and owner, then notifies delete
// subscribers. Deleting another user's scrap reports ErrNotFound.
func (s *Store) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(scrapKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		var scrap models.Scrap
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &scrap)
		}); err != nil {
			return fmt.Errorf("unmarshal scrap: %w", err)
		}
		if scrap.UserID != userID {
			return store.ErrNotFound
		}

		return txn.Delete(scrapKey(id))
	})
	if err != nil {
		return err
	}

	s.hub.publishDelete(userID, id)
	return nil
}

// GetByPrefix finds a scrap owned by userID whose id starts with prefix
// (minimum 6 chars).
func (s *Store) GetByPrefix(ctx context.Context, userID, prefix string) (models.Scrap, error) {
	if len(prefix) < 6 {
		return models.Scrap{}, store.ErrPrefixTooShort
	}
	prefix = strings.ToLower(prefix)

	var matches []models.Scrap
	keyPrefix := []byte(ScrapPrefix + prefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var scrap models.Scrap
				if err := json.Unmarshal(val, &scrap); err != nil {
					return nil
				}
				if scrap.UserID == userID {
					matches = append(matches, scrap)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Scrap{}, err
	}

	if len(matches) == 0 {
		return models.Scrap{}, store.ErrNotFound
	}
	if len(matches) > 1 {
		return models.Scrap{}, fmt.Errorf("%w: %d matches", store.ErrAmbiguousPrefix, len(matches))
	}
	return matches[0], nil
}

// SubscribeInserts delivers newly inserted scraps owned by userID.
func (s *Store) SubscribeInserts(ctx context.Context, userID string) (*store.InsertSubscription, error) {
	return s.hub.subscribeInserts(userID), nil
}

// SubscribeDeletes delivers ids of deleted scraps owned by userID.
func (s *Store) SubscribeDeletes(ctx context.Context, userID string) (*store.DeleteSubscription, error) {
	return s.hub.subscribeDeletes(userID), nil
}
