package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hackgods/counseling-scheduler/internal/session"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS client_sessions (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at TIMESTAMPTZ NULL
);
CREATE INDEX IF NOT EXISTS client_sessions_expires_at_idx ON client_sessions (expires_at);
`

// PostgresStore is a session.Store on a client_sessions table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("migrate client_sessions: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	const q = `
		SELECT value FROM client_sessions
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())
	`
	var v string
	err := s.pool.QueryRow(ctx, q, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select session key: %w", err)
	}
	return v, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	const q = `
		INSERT INTO client_sessions (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`
	if _, err := s.pool.Exec(ctx, q, key, value, expiry(ttl)); err != nil {
		return fmt.Errorf("upsert session key: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM client_sessions WHERE key = ANY($1)`, keys); err != nil {
		return fmt.Errorf("delete session keys: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// DeleteExpired removes rows whose expiry has passed and reports how many went.
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM client_sessions WHERE expires_at IS NOT NULL AND expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func expiry(ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	t := time.Now().Add(ttl).UTC()
	return &t
}
