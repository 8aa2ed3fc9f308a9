package scores

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the whole log gob-encoded under a single key of a
// key-value table, the way a browser keeps it in local storage.
type SQLiteStore struct {
	mu   sync.Mutex
	name string
	db   *sql.DB
}

var (
	ErrBadName  = fmt.Errorf("bad name for store")
	ErrNotFound = fmt.Errorf("value not found")
)

const logKey = "results"

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isLetters(s string) bool {
	for _, c := range s {
		if !isLetter(c) {
			return false
		}
	}
	return s != ""
}

func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite db %s: %w", path, err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	return db, nil
}

// Creates a new [SQLiteStore] instance. name is used as the table name and
// may only contain upper- or lowercase Latin letters.
func NewSQLiteStore(ctx context.Context, db *sql.DB, name string) (*SQLiteStore, error) {
	if !isLetters(name) {
		return nil, ErrBadName
	}

	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+name+` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{name: name, db: db}
	return s, nil
}

// Retrieve a value from the store. Value must be a pointer. If key is not
// present, [ErrNotFound] is returned.
func (s *SQLiteStore) get(ctx context.Context, key string, value any) error {
	var v []uint8
	if err := s.db.QueryRowContext(ctx,
		`SELECT value FROM `+s.name+` WHERE key = ?;`,
		key).Scan(&v); errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	dec := gob.NewDecoder(bytes.NewReader(v))
	return dec.Decode(value)
}

// Inserts a new key-value pair or updates an existing one.
func (s *SQLiteStore) set(ctx context.Context, key string, value any) error {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	err := enc.Encode(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO `+s.name+` (key, value)
VALUES(?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		key, buf.Bytes())
	return err
}

func (s *SQLiteStore) load(ctx context.Context) (Log, error) {
	var log Log
	err := s.get(ctx, logKey, &log)
	if errors.Is(err, ErrNotFound) {
		return Log{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read score log: %w", err)
	}
	return log, nil
}

func (s *SQLiteStore) Append(ctx context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.load(ctx)
	if err != nil {
		return err
	}
	if log.Contains(r.SessionID) {
		return ErrDuplicate
	}
	return s.set(ctx, logKey, log.Push(r))
}

func (s *SQLiteStore) Recent(ctx context.Context) (Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}
