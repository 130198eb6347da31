package note

import (
	"fmt"
	"log/slog"
	"time"
)

// Slot is the durable byte slot the store flushes its list into.
// Read returns nil, nil when the slot has never been written.
type Slot interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// Store owns the ordered note list and mirrors it into a Slot.
// It is not safe for concurrent use; the UI drives it from one goroutine.
type Store struct {
	slot   Slot
	notes  []Note
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty store over slot. Call Load to read persisted notes.
func NewStore(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the slot contents.
// Missing or malformed data yields an empty list; only read failures are returned.
func (s *Store) Load() error {
	data, err := s.slot.Read()
	if err != nil {
		// The list in memory stays authoritative until a read succeeds.
		return fmt.Errorf("read slot: %w", err)
	}
	var notes []Note
	if len(data) > 0 {
		if notes, err = Unmarshal(data); err != nil {
			s.logger.Debug("note: discarding unparseable slot", "error", err)
			notes = nil
		}
	}
	s.notes = notes
	return nil
}

// SaveAll overwrites the slot with the full list.
func (s *Store) SaveAll() error {
	data, err := Marshal(s.notes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.slot.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Notes returns a copy of the current list.
func (s *Store) Notes() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int { return len(s.notes) }

// IndexOf returns the current position of the note with id, or -1.
func (s *Store) IndexOf(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the note with id.
func (s *Store) Get(id string) (Note, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i], true
}

// Create inserts n at the front of the list and persists.
// The returned note carries its id and timestamp even when persisting fails.
func (s *Store) Create(n Note) (Note, error) {
	if n.ID == "" {
		n.ID = NewID()
	}
	n.Color = n.Color.OrDefault()
	n.LastUpdated = s.now()
	s.notes = append([]Note{n}, s.notes...)
	return n, s.SaveAll()
}

// Update replaces the note at index in place, keeping its id and position.
func (s *Store) Update(index int, n Note) error {
	if index < 0 || index >= len(s.notes) {
		return fmt.Errorf("update %d: %w", index, ErrNoteNotFound)
	}
	n.ID = s.notes[index].ID
	n.Color = n.Color.OrDefault()
	n.LastUpdated = s.now()
	s.notes[index] = n
	return s.SaveAll()
}

// Delete removes the note at index, shifting later notes up.
func (s *Store) Delete(index int) (Note, error) {
	if index < 0 || index >= len(s.notes) {
		return Note{}, fmt.Errorf("delete %d: %w", index, ErrNoteNotFound)
	}
	removed := s.notes[index]
	s.notes = append(s.notes[:index:index], s.notes[index+1:]...)
	return removed, s.SaveAll()
}

// Reorder replaces the list with list, which must be a permutation of it.
func (s *Store) Reorder(list []Note) error {
	if !isPermutation(s.notes, list) {
		return ErrNotPermutation
	}
	s.notes = make([]Note, len(list))
	copy(s.notes, list)
	return s.SaveAll()
}

func isPermutation(a, b []Note) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, n := range a {
		counts[n.ID]++
	}
	for _, n := range b {
		counts[n.ID]--
		if counts[n.ID] < 0 {
			return false
		}
	}
	return true
}
