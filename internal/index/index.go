// Package index keeps a SQLite copy of the merged master list for lookups.
// The index is expendable: it is rebuilt whenever the master file's content
// hash differs from the one recorded at the last build.
package index

import (
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/leeovery/contactlist/internal/contact"
	"github.com/leeovery/contactlist/internal/table"
)

const schema = `
CREATE TABLE IF NOT EXISTS emails (
  position INTEGER PRIMARY KEY,
  email TEXT NOT NULL,
  key TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT
);

CREATE INDEX IF NOT EXISTS idx_emails_key ON emails(key);
`

const (
	hashKey   = "master_hash"
	masterKey = "master_path"
)

// Logger is an optional interface for verbose/debug logging.
type Logger interface {
	Log(msg string)
}

// Entry is one email of the master list. Position is 1-based.
type Entry struct {
	Position int    `db:"position"`
	Email    string `db:"email"`
	Key      string `db:"key"`
}

// Index wraps the SQLite database.
type Index struct {
	db     *sqlx.DB
	dbPath string
}

// Open opens or creates the index at dbPath and initializes the schema.
func Open(dbPath string) (*Index, error) {
	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open index db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize index schema: %w", err)
	}
	return &Index{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (ix *Index) Close() error {
	if ix.db != nil {
		return ix.db.Close()
	}
	return nil
}

// Rebuild replaces the indexed emails with emails and records the hash of
// raw, the master file content they came from. It runs in one transaction.
func (ix *Index) Rebuild(emails []string, raw []byte) error {
	tx, err := ix.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM emails"); err != nil {
		return fmt.Errorf("failed to clear emails: %w", err)
	}

	stmt, err := tx.Preparex("INSERT INTO emails (position, email, key) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare email insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range emails {
		if _, err := stmt.Exec(i+1, e, contact.NormalizeEmail(e)); err != nil {
			return fmt.Errorf("failed to insert email %q: %w", e, err)
		}
	}

	if _, err := tx.Exec("INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)", hashKey, computeHash(raw)); err != nil {
		return fmt.Errorf("failed to store %s: %w", hashKey, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rebuild transaction: %w", err)
	}
	return nil
}

// IsFresh reports whether the index was built from content equal to raw.
func (ix *Index) IsFresh(raw []byte) (bool, error) {
	var stored string
	err := ix.db.Get(&stored, "SELECT value FROM metadata WHERE key = ?", hashKey)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query %s: %w", hashKey, err)
	}
	return stored == computeHash(raw), nil
}

// Lookup returns every entry whose key matches the normalized query, in
// list order. Case variants of one address are all returned.
func (ix *Index) Lookup(query string) ([]Entry, error) {
	var entries []Entry
	err := ix.db.Select(&entries,
		"SELECT position, email, key FROM emails WHERE key = ? ORDER BY position",
		contact.NormalizeEmail(query))
	if err != nil {
		return nil, fmt.Errorf("failed to look up %q: %w", query, err)
	}
	return entries, nil
}

// SetMaster records path as the master list the index was built from.
func (ix *Index) SetMaster(path string) error {
	if _, err := ix.db.Exec("INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)", masterKey, path); err != nil {
		return fmt.Errorf("failed to store %s: %w", masterKey, err)
	}
	return nil
}

// Master returns the recorded master list path, or "" when none is stored.
func (ix *Index) Master() (string, error) {
	var path string
	err := ix.db.Get(&path, "SELECT value FROM metadata WHERE key = ?", masterKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query %s: %w", masterKey, err)
	}
	return path, nil
}

// RecordedMaster returns the master list path stored in the index at dbPath.
// A missing or unusable index reads as "".
func RecordedMaster(dbPath string) string {
	ix, err := tryOpen(dbPath)
	if err != nil {
		return ""
	}
	defer ix.Close()
	path, err := ix.Master()
	if err != nil {
		return ""
	}
	return path
}

// Count returns the number of indexed emails.
func (ix *Index) Count() (int, error) {
	var n int
	if err := ix.db.Get(&n, "SELECT COUNT(*) FROM emails"); err != nil {
		return 0, fmt.Errorf("failed to count emails: %w", err)
	}
	return n, nil
}

// EnsureFresh opens the index at dbPath and rebuilds it from emails when raw
// differs from the content it was last built from. An unusable database file
// is deleted and recreated.
func EnsureFresh(dbPath string, emails []string, raw []byte, logger Logger) (*Index, error) {
	logf := func(format string, args ...interface{}) {
		if logger != nil {
			logger.Log(fmt.Sprintf(format, args...))
		}
	}

	ix, err := tryOpen(dbPath)
	if err != nil {
		logf("index: db unusable, recreating: %v", err)
		return recreate(dbPath, emails, raw)
	}

	fresh, err := ix.IsFresh(raw)
	if err != nil {
		ix.Close()
		logf("index: freshness check failed, recreating: %v", err)
		return recreate(dbPath, emails, raw)
	}
	if fresh {
		logf("index: up to date")
		return ix, nil
	}

	logf("index: stale, rebuilding %d emails", len(emails))
	if err := ix.Rebuild(emails, raw); err != nil {
		ix.Close()
		return nil, fmt.Errorf("failed to rebuild index: %w", err)
	}
	return ix, nil
}

// tryOpen opens an existing index and checks its tables are queryable.
func tryOpen(dbPath string) (*Index, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("index db does not exist: %w", err)
	}
	ix, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	for _, tbl := range []string{"emails", "metadata"} {
		if _, err := ix.db.Exec("SELECT 1 FROM " + tbl + " LIMIT 0"); err != nil {
			ix.Close()
			return nil, fmt.Errorf("%s table unusable: %w", tbl, err)
		}
	}
	return ix, nil
}

func recreate(dbPath string, emails []string, raw []byte) (*Index, error) {
	os.Remove(dbPath)

	ix, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create new index: %w", err)
	}
	if err := ix.Rebuild(emails, raw); err != nil {
		ix.Close()
		return nil, fmt.Errorf("failed to rebuild new index: %w", err)
	}
	return ix, nil
}

// LoadMaster reads the master list at path, returning its emails in order
// and the raw file content for hashing.
func LoadMaster(path, column string) ([]string, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read master list: %w", err)
	}
	t, err := table.Read(path)
	if err != nil {
		return nil, nil, err
	}
	idx := t.Column(column)
	if idx < 0 {
		return nil, nil, fmt.Errorf("%s: missing column %q", path, column)
	}
	emails := make([]string, 0, t.Len())
	for _, rec := range t.Records {
		v, _ := table.Value(rec, idx)
		emails = append(emails, v)
	}
	return emails, raw, nil
}

func computeHash(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)
}
