// ABOUTME: Hosted scrap store backed by PostgreSQL via pgx.
// ABOUTME: Bootstraps schema and notify triggers; change feed uses LISTEN/NOTIFY.

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS scraps (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id TEXT NOT NULL,
    type TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    content TEXT,
    image_url TEXT,
    image_title TEXT,
    url TEXT,
    title TEXT,
    preview_image TEXT,
    embed_html TEXT,
    meta_title TEXT,
    meta_rating TEXT,
    meta_tags TEXT[],
    language TEXT,
    code TEXT
);

CREATE INDEX IF NOT EXISTS scraps_user_created_idx
    ON scraps (user_id, created_at DESC);

CREATE OR REPLACE FUNCTION scraps_notify_insert() RETURNS trigger AS $$
DECLARE
    payload TEXT;
BEGIN
    payload := row_to_json(NEW)::text;
    -- pg_notify payloads are capped at 8000 bytes; oversized records are
    -- announced by id only and re-fetched by the subscriber.
    IF octet_length(payload) > 7500 THEN
        payload := json_build_object('id', NEW.id, 'user_id', NEW.user_id)::text;
    END IF;
    PERFORM pg_notify('scraps_insert', payload);
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;

CREATE OR REPLACE FUNCTION scraps_notify_delete() RETURNS trigger AS $$
BEGIN
    PERFORM pg_notify('scraps_delete',
        json_build_object('id', OLD.id, 'user_id', OLD.user_id)::text);
    RETURN OLD;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS scraps_insert_trigger ON scraps;
CREATE TRIGGER scraps_insert_trigger
    AFTER INSERT ON scraps
    FOR EACH ROW EXECUTE FUNCTION scraps_notify_insert();

DROP TRIGGER IF EXISTS scraps_delete_trigger ON scraps;
CREATE TRIGGER scraps_delete_trigger
    AFTER DELETE ON scraps
    FOR EACH ROW EXECUTE FUNCTION scraps_notify_delete();
`

// Store is a PostgreSQL-backed scrap store.
type Store struct {
	pool *pgxpool.Pool
	dsn  string
}

// Open connects to the database, pings it for fail-fast validation, and
// bootstraps the scraps schema and notify triggers.
func Open(ctx context.Context, dsn string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{pool: pool, dsn: dsn}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
