package slot

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// tempFilePrefix marks in-flight atomic writes.
const tempFilePrefix = ".notedeck-tmp-"

// File stores the blob in a single file, replaced atomically on each write.
type File struct {
	path     string
	key      string
	maxBytes int

	// lastHash is the xxhash of the last blob this process wrote or observed,
	// used by Watch to ignore our own writes.
	lastHash atomic.Uint64
}

// NewFile creates a file slot at path, creating the parent directory.
func NewFile(path, key string, maxBytes int) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	return &File{path: path, key: key, maxBytes: maxBytes}, nil
}

// Name returns the slot key.
func (f *File) Name() string { return f.key }

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Read returns the file contents, or nil if it does not exist.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f.lastHash.Store(xxhash.Sum64(data))
	return data, nil
}

// Write replaces the file via temp file + rename.
func (f *File) Write(data []byte) error {
	if err := checkQuota(f.maxBytes, data); err != nil {
		return err
	}
	if err := writeFileAtomic(f.path, data, 0644); err != nil {
		return err
	}
	f.lastHash.Store(xxhash.Sum64(data))
	return nil
}

// Close is a no-op for file slots.
func (f *File) Close() error { return nil }

// changed re-reads the file and reports whether it differs from what this
// process last wrote or saw. A deleted file reads as empty.
func (f *File) changed() bool {
	data, err := os.ReadFile(f.path)
	if err != nil && !os.IsNotExist(err) {
		return false
	}
	h := xxhash.Sum64(data)
	if h == f.lastHash.Load() {
		return false
	}
	f.lastHash.Store(h)
	return true
}

func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}
