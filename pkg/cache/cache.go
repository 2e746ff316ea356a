// Package cache persists fetched corpora between runs so repeated
// generations for the same username do not hammer the remote API. Corpora
// are keyed by username in a single SQLite table, with the entry texts
// stored as a JSON array.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// ErrMiss is returned by Lookup when no corpus is cached for a username.
var ErrMiss = errors.New("cache: no cached corpus for user")

// SetupSchema initializes the cache table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS corpus_cache (
    username TEXT PRIMARY KEY,
    corpus TEXT NOT NULL,
    fetched_at INTEGER NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("could not create cache schema: %w", err)
	}
	return nil
}

// Store is a SQLite-backed corpus cache. It holds prepared statements for
// its queries; call Close when the Store is no longer needed.
type Store struct {
	db         *sql.DB
	stmtLookup *sql.Stmt
	stmtPut    *sql.Stmt
	stmtDelete *sql.Stmt
	stmtUsers  *sql.Stmt
	logger     *slog.Logger
}

// NewStore creates a Store on top of an initialized database. It
// pre-compiles all necessary SQL statements, returning an error if any
// preparation fails.
func NewStore(db *sql.DB) (*Store, error) {
	stmtLookup, err := db.Prepare(`SELECT corpus FROM corpus_cache WHERE username = ?;`)
	if err != nil {
		return nil, err
	}

	stmtPut, err := db.Prepare(`INSERT INTO corpus_cache (username, corpus, fetched_at) VALUES (?, ?, ?) ON CONFLICT(username) DO UPDATE SET corpus = excluded.corpus, fetched_at = excluded.fetched_at;`)
	if err != nil {
		return nil, err
	}

	stmtDelete, err := db.Prepare(`DELETE FROM corpus_cache WHERE username = ?;`)
	if err != nil {
		return nil, err
	}

	stmtUsers, err := db.Prepare(`SELECT username FROM corpus_cache ORDER BY username;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		stmtLookup: stmtLookup,
		stmtPut:    stmtPut,
		stmtDelete: stmtDelete,
		stmtUsers:  stmtUsers,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtLookup.Close()
	_ = s.stmtPut.Close()
	_ = s.stmtDelete.Close()
	_ = s.stmtUsers.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are
// discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Lookup returns the cached corpus for a username, or ErrMiss if none is
// stored.
func (s *Store) Lookup(ctx context.Context, username string) ([]string, error) {
	var raw string
	err := s.stmtLookup.QueryRowContext(ctx, username).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", username, ErrMiss)
	}
	if err != nil {
		return nil, fmt.Errorf("cache lookup for %q failed: %w", username, err)
	}

	var corpus []string
	if err := json.Unmarshal([]byte(raw), &corpus); err != nil {
		return nil, fmt.Errorf("cached corpus for %q is corrupt: %w", username, err)
	}

	s.logger.Debug("cache hit",
		slog.String("username", username),
		slog.Int("entries", len(corpus)),
	)
	return corpus, nil
}

// Put stores a corpus for a username, replacing any previous entry.
func (s *Store) Put(ctx context.Context, username string, corpus []string) error {
	raw, err := json.Marshal(corpus)
	if err != nil {
		return fmt.Errorf("could not encode corpus for %q: %w", username, err)
	}

	if _, err := s.stmtPut.ExecContext(ctx, username, string(raw), time.Now().Unix()); err != nil {
		return fmt.Errorf("could not store corpus for %q: %w", username, err)
	}

	s.logger.Debug("corpus cached",
		slog.String("username", username),
		slog.Int("entries", len(corpus)),
	)
	return nil
}

// Delete removes the cached corpus for a username, if any.
func (s *Store) Delete(ctx context.Context, username string) error {
	if _, err := s.stmtDelete.ExecContext(ctx, username); err != nil {
		return fmt.Errorf("could not delete corpus for %q: %w", username, err)
	}
	return nil
}

// Usernames returns every username with a cached corpus, sorted.
func (s *Store) Usernames(ctx context.Context) ([]string, error) {
	rows, err := s.stmtUsers.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		usernames = append(usernames, username)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return usernames, nil
}
