package slot

import "sync"

// Memory is an in-process slot. It is used for --ephemeral runs and tests.
type Memory struct {
	mu       sync.Mutex
	key      string
	data     []byte
	maxBytes int
	writes   int
	failErr  error
	readErr  error
}

// NewMemory returns an empty memory slot.
func NewMemory(key string, maxBytes int) *Memory {
	return &Memory{key: key, maxBytes: maxBytes}
}

// Name returns the slot key.
func (m *Memory) Name() string { return m.key }

// Read returns a copy of the stored blob.
func (m *Memory) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

// Write stores a copy of data.
func (m *Memory) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if err := checkQuota(m.maxBytes, data); err != nil {
		return err
	}
	m.data = append([]byte{}, data...)
	m.writes++
	return nil
}

// Set stores raw bytes without quota checks, simulating an external writer.
func (m *Memory) Set(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// FailWrites makes every subsequent Write return err (nil restores writes).
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// FailReads makes every subsequent Read return err (nil restores reads).
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// Writes returns the number of successful writes.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
