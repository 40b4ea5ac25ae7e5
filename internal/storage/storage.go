package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Namespaced keys for every persisted collection. KeyCart and
// KeyPreferences are reserved: cart state is session-only and preferences
// live inside the stored profile, but ClearAll still sweeps both keys.
const (
	KeyCart        = "lofi-reads-cart"
	KeyWishlist    = "lofi-reads-wishlist"
	KeyUsers       = "lofi-reads-users"
	KeySessions    = "lofi-reads-sessions"
	KeyOrders      = "lofi-reads-orders"
	KeyReviews     = "lofi-reads-reviews"
	KeyPreferences = "lofi-reads-preferences"
)

var appKeys = []string{
	KeyCart, KeyWishlist, KeyUsers, KeySessions, KeyOrders, KeyReviews, KeyPreferences,
}

// Store is a namespaced JSON key-value adapter over sqlite. Faults never
// propagate: a failed read leaves the caller's default in place and a failed
// write reports false. Callers own read-modify-write serialization.
type Store struct {
	db    *sqlx.DB
	delay time.Duration
}

// Open connects, ensures the kv schema, and configures the optional
// simulated persistence latency applied to every call.
func Open(dsn string, delay time.Duration) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db, delay: delay}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS kv(
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

// DB exposes the underlying handle for wiring seed data at startup.
func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) wait() {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
}

// Get unmarshals the value stored under key into out. It returns false and
// leaves out untouched when the key is absent or the stored JSON is
// malformed, so out keeps whatever default the caller seeded it with.
func (s *Store) Get(key string, out any) bool {
	s.wait()
	var raw string
	if err := s.db.Get(&raw, `SELECT value FROM kv WHERE key = ?`, key); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[storage] get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("[storage] get %s: malformed value: %v", key, err)
		return false
	}
	return true
}

// Set serializes v under key, replacing any previous value.
func (s *Store) Set(key string, v any) bool {
	s.wait()
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("[storage] set %s: %v", key, err)
		return false
	}
	_, err = s.db.Exec(`
	  INSERT INTO kv(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(raw))
	if err != nil {
		log.Printf("[storage] set %s: %v", key, err)
		return false
	}
	return true
}

// Remove deletes the value stored under key, if any.
func (s *Store) Remove(key string) bool {
	s.wait()
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		log.Printf("[storage] remove %s: %v", key, err)
		return false
	}
	return true
}

// ClearAll removes every app-owned key.
func (s *Store) ClearAll() {
	for _, k := range appKeys {
		s.Remove(k)
	}
}
