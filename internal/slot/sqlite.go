package slot

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// SQLite driver names. mattn/go-sqlite3 needs cgo; modernc.org/sqlite does not.
const (
	DriverCGo  = "sqlite3"
	DriverPure = "sqlite"
)

// SQLite stores slots as rows of a key/value table.
type SQLite struct {
	db       *sql.DB
	key      string
	maxBytes int
}

// OpenSQLite opens the database at path with the named driver.
func OpenSQLite(driver, path, key string, maxBytes int) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}

	var dsn string
	switch driver {
	case DriverCGo, "":
		driver = DriverCGo
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL"
	case DriverPure:
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	default:
		return nil, fmt.Errorf("unknown sqlite driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLite{db: db, key: key, maxBytes: maxBytes}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS slots (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`)
	return err
}

// Name returns the slot key.
func (s *SQLite) Name() string { return s.key }

// Read returns the stored value, or nil if the row does not exist.
func (s *SQLite) Read() ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, s.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query slot: %w", err)
	}
	return data, nil
}

// Write upserts the value.
func (s *SQLite) Write(data []byte) error {
	if err := checkQuota(s.maxBytes, data); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.key, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
