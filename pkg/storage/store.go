package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tidwall/gjson"
	_ "modernc.org/sqlite"
)

// snapshotKey is the single record the tracker persists under.
const snapshotKey = "state"

// Store is the sqlite-backed snapshot store. It is a durability sink, not
// a read path: after startup hydration every read is served from memory.
type Store struct {
	sql *sql.DB

	// password is non-empty while encryption is enabled; applied as an
	// opaque transform at this boundary only.
	password string
}

// Open opens (and if needed creates) the snapshot database.
func Open(path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS snapshots (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
    `); err != nil {
		return nil, err
	}
	return &Store{sql: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}

// SetPassword turns the encryption transform on (non-empty) or off (empty)
// for subsequent saves.
func (s *Store) SetPassword(password string) {
	s.password = password
}

// EncryptionEnabled reports whether saves are currently encrypted.
func (s *Store) EncryptionEnabled() bool {
	return s.password != ""
}

// SaveState encodes and persists the full state snapshot. Every write
// persists the whole record; there is no partial update.
func (s *Store) SaveState(ctx context.Context, state *State) error {
	raw, err := Encode(state)
	if err != nil {
		return err
	}
	if s.password != "" {
		if raw, err = Seal(raw, s.password); err != nil {
			return err
		}
	}
	_, err = s.sql.ExecContext(ctx,
		`INSERT INTO snapshots(key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		snapshotKey, string(raw), time.Now().UTC())
	return err
}

// ErrNoSnapshot is returned by LoadState when nothing was ever saved.
var ErrNoSnapshot = errors.New("storage: no snapshot")

// LoadState reads and decodes the snapshot, running the repair pass. The
// password is only consulted when the stored record carries the encryption
// envelope.
func (s *Store) LoadState(ctx context.Context, password string) (*State, error) {
	var raw string
	err := s.sql.QueryRowContext(ctx,
		"SELECT value FROM snapshots WHERE key = ?", snapshotKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}

	data := []byte(raw)
	if gjson.GetBytes(data, "encryptionEnabled").Bool() {
		if password == "" {
			return nil, ErrEncrypted
		}
		if data, err = Unseal(data, password); err != nil {
			return nil, err
		}
	}
	return Decode(data)
}

// Clear drops the snapshot.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.sql.ExecContext(ctx, "DELETE FROM snapshots WHERE key = ?", snapshotKey)
	return err
}
