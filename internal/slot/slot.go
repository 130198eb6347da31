// Package slot provides durable single-key byte slots. A slot stores one
// opaque blob under a name and is always overwritten as a whole.
package slot

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrQuotaExceeded is returned when a write is larger than the slot quota.
var ErrQuotaExceeded = errors.New("slot quota exceeded")

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Slot is a named, durable byte slot.
type Slot interface {
	// Name returns the slot key.
	Name() string
	// Read returns the stored blob, or nil, nil if nothing was written yet.
	Read() ([]byte, error)
	// Write replaces the stored blob.
	Write(data []byte) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend      string
	Dir          string // directory holding the backend's files
	Key          string // slot name, e.g. "notes"
	MaxBytes     int    // 0 = unlimited
	SQLiteDriver string // "sqlite3" (cgo) or "sqlite" (pure Go)
}

// Open builds the slot described by cfg.
func Open(cfg Config) (Slot, error) {
	if cfg.Key == "" {
		cfg.Key = "notes"
	}
	switch cfg.Backend {
	case BackendFile, "":
		return NewFile(filepath.Join(cfg.Dir, cfg.Key+".json"), cfg.Key, cfg.MaxBytes)
	case BackendBolt:
		return OpenBolt(filepath.Join(cfg.Dir, "notedeck.bolt"), cfg.Key, cfg.MaxBytes)
	case BackendSQLite:
		return OpenSQLite(cfg.SQLiteDriver, filepath.Join(cfg.Dir, "notedeck.db"), cfg.Key, cfg.MaxBytes)
	case BackendMemory:
		return NewMemory(cfg.Key, cfg.MaxBytes), nil
	default:
		return nil, fmt.Errorf("unknown slot backend %q", cfg.Backend)
	}
}

// checkQuota rejects data larger than maxBytes (when set).
func checkQuota(maxBytes int, data []byte) error {
	if maxBytes > 0 && len(data) > maxBytes {
		return fmt.Errorf("%w: %d bytes > %d", ErrQuotaExceeded, len(data), maxBytes)
	}
	return nil
}
