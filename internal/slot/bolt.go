package slot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var slotsBucket = []byte("slots")

// Bolt stores the blob under its key in a bbolt bucket.
type Bolt struct {
	db       *bolt.DB
	key      string
	maxBytes int
}

// OpenBolt opens (or creates) the bbolt database at path.
func OpenBolt(path, key string, maxBytes int) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Bolt{db: db, key: key, maxBytes: maxBytes}, nil
}

// Name returns the slot key.
func (b *Bolt) Name() string { return b.key }

// Read returns a copy of the stored value, or nil if absent.
func (b *Bolt) Read() ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(slotsBucket).Get([]byte(b.key))
		if v != nil {
			// bbolt values are only valid inside the transaction.
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

// Write replaces the stored value.
func (b *Bolt) Write(data []byte) error {
	if err := checkQuota(b.maxBytes, data); err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotsBucket).Put([]byte(b.key), data)
	})
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.db.Close()
}
