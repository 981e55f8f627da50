// Package sqlitekv provides a durable single-file medium driver backed by
// modernc.org/sqlite. One kv table holds the raw collection strings.
// Change notifications are delivered in-process only: sqlite offers no
// cross-process signal, so handles in other processes observe writes on
// their next read rather than via Watch.
package sqlitekv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/peermall/peerstore/internal/medium"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// DB owns the sqlite connection shared by all handles opened from it.
type DB struct {
	db     *sql.DB
	notify *medium.Notifier
}

// New opens (or creates) the database at path and ensures the kv table
// exists. WAL mode keeps concurrent readers cheap.
func New(path string) (*DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db, notify: medium.NewNotifier()}, nil
}

// Open returns a new handle ("tab") onto the database.
func (d *DB) Open() medium.Medium {
	return &handle{db: d, origin: uuid.New().String()}
}

// Ping verifies connectivity.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) Close() error { return d.db.Close() }

type handle struct {
	db     *DB
	origin string
}

func (h *handle) Origin() string { return h.origin }

func (h *handle) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := h.db.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (h *handle) Set(ctx context.Context, key, value string) error {
	_, err := h.db.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return err
	}
	h.db.notify.Publish(medium.Change{Key: key, Origin: h.origin})
	return nil
}

func (h *handle) Delete(ctx context.Context, key string) error {
	res, err := h.db.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		h.db.notify.Publish(medium.Change{Key: key, Origin: h.origin})
	}
	return nil
}

func (h *handle) Watch(ctx context.Context, keys ...string) (<-chan medium.Change, error) {
	return h.db.notify.Watch(ctx, h.origin, keys...), nil
}
