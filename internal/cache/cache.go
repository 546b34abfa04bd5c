// Package cache stores model responses in a local SQLite database so
// repeated identical prompts skip the subprocess entirely. Entries are
// keyed by a hash of model and prompt and expire after a TTL.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"gembridge/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
    key TEXT PRIMARY KEY,
    model TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_responses_created_at ON responses(created_at);
`

// Store is a TTL response cache backed by SQLite.
type Store struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens (creating if needed) the cache at path. An empty path
// uses the default location under the user cache directory.
func Open(path string, ttl time.Duration) (*Store, error) {
	if path == "" {
		dir, err := config.GetCacheDir()
		if err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
		path = filepath.Join(dir, "responses.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}
	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Key hashes a model and prompt into a cache key.
func Key(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "|" + prompt))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached content for model+prompt if present and not
// expired.
func (s *Store) Get(model, prompt string) (string, bool) {
	var content string
	var createdAt int64
	err := s.db.QueryRow(
		"SELECT content, created_at FROM responses WHERE key = ?",
		Key(model, prompt),
	).Scan(&content, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		return "", false
	}
	if s.ttl > 0 && s.now().Unix()-createdAt > int64(s.ttl.Seconds()) {
		return "", false
	}
	return content, true
}

// Put stores content for model+prompt, replacing any previous entry.
func (s *Store) Put(model, prompt, content string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO responses (key, model, content, created_at) VALUES (?, ?, ?, ?)",
		Key(model, prompt), model, content, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Prune deletes every expired entry.
func (s *Store) Prune() error {
	if s.ttl <= 0 {
		return nil
	}
	cutoff := s.now().Add(-s.ttl).Unix()
	if _, err := s.db.Exec("DELETE FROM responses WHERE created_at <= ?", cutoff); err != nil {
		return fmt.Errorf("cache prune: %w", err)
	}
	return nil
}
