// ABOUTME: Live change subscriptions over PostgreSQL LISTEN/NOTIFY.
// ABOUTME: One dedicated connection per subscription, filtered by user id.

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/store"
)

const (
	insertChannel = "scraps_insert"
	deleteChannel = "scraps_delete"

	subBuffer = 64
)

// notifyHeader is the part of every notify payload needed for routing.
// Oversized insert payloads carry only id and user_id; the record is then
// fetched explicitly.
type notifyHeader struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Type   string `json:"type"`
}

func (s *Store) listen(ctx context.Context, channel string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("listen on %s: %w", channel, err)
	}
	return conn, nil
}

// SubscribeInserts delivers newly inserted scraps owned by userID.
func (s *Store) SubscribeInserts(ctx context.Context, userID string) (*store.InsertSubscription, error) {
	runCtx, cancel := context.WithCancel(ctx)

	conn, err := s.listen(runCtx, insertChannel)
	if err != nil {
		cancel()
		return nil, err
	}

	events := make(chan models.Scrap, subBuffer)
	go func() {
		defer close(events)
		defer func() { _ = conn.Close(context.Background()) }()

		for {
			n, err := conn.WaitForNotification(runCtx)
			if err != nil {
				// Canceled subscription or lost connection; either way
				// the channel closes and the subscriber sees the end.
				return
			}

			var header notifyHeader
			if err := json.Unmarshal([]byte(n.Payload), &header); err != nil {
				continue
			}
			if header.UserID != userID {
				continue
			}

			var scrap models.Scrap
			if header.Type == "" {
				id, err := uuid.Parse(header.ID)
				if err != nil {
					continue
				}
				scrap, err = s.get(runCtx, id, userID)
				if err != nil {
					continue
				}
			} else if err := json.Unmarshal([]byte(n.Payload), &scrap); err != nil {
				continue
			}

			select {
			case events <- scrap:
			case <-runCtx.Done():
				return
			}
		}
	}()

	return store.NewInsertSubscription(events, cancel), nil
}

// SubscribeDeletes delivers ids of deleted scraps owned by userID.
func (s *Store) SubscribeDeletes(ctx context.Context, userID string) (*store.DeleteSubscription, error) {
	runCtx, cancel := context.WithCancel(ctx)

	conn, err := s.listen(runCtx, deleteChannel)
	if err != nil {
		cancel()
		return nil, err
	}

	events := make(chan uuid.UUID, subBuffer)
	go func() {
		defer close(events)
		defer func() { _ = conn.Close(context.Background()) }()

		for {
			n, err := conn.WaitForNotification(runCtx)
			if err != nil {
				return
			}

			var header notifyHeader
			if err := json.Unmarshal([]byte(n.Payload), &header); err != nil {
				continue
			}
			if header.UserID != userID {
				continue
			}
			id, err := uuid.Parse(header.ID)
			if err != nil {
				continue
			}

			select {
			case events <- id:
			case <-runCtx.Done():
				return
			}
		}
	}()

	return store.NewDeleteSubscription(events, cancel), nil
}
