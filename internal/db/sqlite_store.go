package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hackgods/counseling-scheduler/internal/session"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS client_sessions (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at INTEGER NULL
);
CREATE INDEX IF NOT EXISTS client_sessions_expires_at_idx ON client_sessions (expires_at);
`

// OpenSQLite opens (creating if needed) the session file at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return conn, nil
}

// SQLiteStore is a session.Store on a local file; expiry is stored as unix seconds.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM client_sessions WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`
	var v string
	err := s.db.QueryRowContext(ctx, q, key, s.now().Unix()).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select session key: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	var exp sql.NullInt64
	if ttl > 0 {
		exp = sql.NullInt64{Int64: s.now().Add(ttl).Unix(), Valid: true}
	}
	const q = `
		INSERT INTO client_sessions (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`
	if _, err := s.db.ExecContext(ctx, q, key, value, exp); err != nil {
		return fmt.Errorf("upsert session key: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM client_sessions WHERE key = ?`, k); err != nil {
			return fmt.Errorf("delete session key: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM client_sessions WHERE expires_at IS NOT NULL AND expires_at <= ?`, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
