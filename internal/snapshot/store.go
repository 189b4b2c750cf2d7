// Package snapshot is a small sqlite-backed day cache for fetched API
// payloads, so repeated report runs within the TTL do not hammer the
// league API, and a stale copy can serve as fallback when the API is down.
package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// ErrMiss is returned when the key is absent or expired.
var ErrMiss = errors.New("snapshot miss")

// Store persists payloads keyed by request identity.
type Store struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens (creating if needed) the snapshot database at path.
func Open(path string, ttl time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	_, err = db.Exec(`
    CREATE TABLE IF NOT EXISTS snapshots (
      key        TEXT PRIMARY KEY,
      fetched_at INTEGER NOT NULL,
      payload    BLOB NOT NULL
    );
    `)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}

	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached payload for key if it is younger than the TTL.
func (s *Store) Get(key string) ([]byte, error) {
	payload, fetchedAt, err := s.fetch(key)
	if err != nil {
		return nil, err
	}
	if s.now().Sub(fetchedAt) > s.ttl {
		return nil, ErrMiss
	}
	return payload, nil
}

// GetStale returns the cached payload regardless of age. Used as a
// fallback when the upstream source is unavailable.
func (s *Store) GetStale(key string) ([]byte, error) {
	payload, _, err := s.fetch(key)
	return payload, err
}

func (s *Store) fetch(key string) ([]byte, time.Time, error) {
	var payload []byte
	var fetchedAt int64

	row := s.db.QueryRow(`SELECT payload, fetched_at FROM snapshots WHERE key = ?`, key)
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, ErrMiss
		}
		return nil, time.Time{}, fmt.Errorf("read snapshot: %w", err)
	}
	return payload, time.Unix(fetchedAt, 0), nil
}

// Put stores or replaces the payload for key.
func (s *Store) Put(key string, payload []byte) error {
	_, err := s.db.Exec(`
    INSERT INTO snapshots (key, fetched_at, payload) VALUES (?, ?, ?)
    ON CONFLICT(key) DO UPDATE SET fetched_at = excluded.fetched_at, payload = excluded.payload
    `, key, s.now().Unix(), payload)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Purge removes every stored snapshot.
func (s *Store) Purge() error {
	if _, err := s.db.Exec(`DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("purge snapshots: %w", err)
	}
	return nil
}

// Count returns the number of stored snapshots.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}
