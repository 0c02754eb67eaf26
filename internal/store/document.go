package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/duoplan/duoplan/internal/metrics"
)

// Document keys. Day documents use DayKey(date); everything else is a
// singleton key.
const (
	KeyUsers     = "users"
	KeySettings  = "settings"
	KeyTodos     = "todos"
	KeyTemplates = "templates"
	KeyAuth      = "auth"

	dayKeyPrefix = "days/"
)

// DayKey returns the document key for a YYYY-MM-DD date.
func DayKey(date string) string {
	return dayKeyPrefix + date
}

// DocumentStore is a keyed store of JSON documents in a single SQLite
// table. A missing key is never an error: Get persists the caller-supplied
// default and returns it. Read-modify-write sequences on the same key are
// serialized by a per-key mutex, so concurrent mutations cannot drop each
// other's writes. There is no atomicity across keys.
type DocumentStore struct {
	db      *sql.DB
	metrics metrics.Recorder

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDocumentStore(db *sql.DB, rec metrics.Recorder) *DocumentStore {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &DocumentStore{
		db:      db,
		metrics: rec,
		locks:   make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex guarding one key, creating it on first use.
// Keys are never removed; the set of keys is small and bounded by days.
func (s *DocumentStore) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Get unmarshals the document at key into dst. If the key does not exist,
// def is persisted first and unmarshaled into dst (first-read
// materialization). Corrupt stored JSON is surfaced as an error, not
// recovered.
func (s *DocumentStore) Get(key string, def any, dst any) error {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()
	return s.getLocked(key, def, dst)
}

func (s *DocumentStore) getLocked(key string, def any, dst any) error {
	s.metrics.DocumentRead(key)

	var body string
	err := s.db.QueryRow(`SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		data, err := json.Marshal(def)
		if err != nil {
			return fmt.Errorf("marshal default for %q: %w", key, err)
		}
		if err := s.putLocked(key, string(data)); err != nil {
			return err
		}
		body = string(data)
	} else if err != nil {
		return fmt.Errorf("get document %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return fmt.Errorf("decode document %q: %w", key, err)
	}
	return nil
}

// Put fully overwrites the document at key. No partial merge happens at
// this layer.
func (s *DocumentStore) Put(key string, doc any) error {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", key, err)
	}
	return s.putLocked(key, string(data))
}

func (s *DocumentStore) putLocked(key, body string) error {
	s.metrics.DocumentWrite(key)
	_, err := s.db.Exec(
		`INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		key, body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put document %q: %w", key, err)
	}
	return nil
}

// Exists reports whether a document is stored at key without materializing
// a default.
func (s *DocumentStore) Exists(key string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM documents WHERE key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check document %q: %w", key, err)
	}
	return true, nil
}

// ListKeys returns all stored keys with the given prefix, sorted.
func (s *DocumentStore) ListKeys(prefix string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT key FROM documents WHERE key LIKE ? || '%' ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys %q: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Update runs a serialized read-modify-write on one key: the current
// document (or def when absent) is unmarshaled into dst, fn mutates dst in
// place, and the result is written back. The key's mutex is held for the
// whole sequence.
func (s *DocumentStore) Update(key string, def any, dst any, fn func() error) error {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()

	if err := s.getLocked(key, def, dst); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	data, err := json.Marshal(dst)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", key, err)
	}
	return s.putLocked(key, string(data))
}
