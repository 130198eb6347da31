// Package note holds the note model, the slot-backed note store and the
// pure list helpers (filtering, drag reconciliation) built on top of it.
package note

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoteNotFound is returned when an index or id no longer refers to a note.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNotPermutation is returned by Reorder when the new list is not a
	// permutation of the current one.
	ErrNotPermutation = errors.New("reorder list is not a permutation of the store")
	// ErrPersist wraps slot write failures. The in-memory list is still updated.
	ErrPersist = errors.New("persist notes")
	// ErrTitleRequired and ErrContentRequired reject blank drafts.
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
)

// updatedLayout mirrors the dashboard's en-PT date format: dd/mm/yy, HH:MM.
const updatedLayout = "02/01/06, 15:04"

// Note represents a single note card.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Color       Color     `json:"color"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// record is the on-slot shape. Older blobs used "date" and had no id.
type record struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Color       string `json:"color"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	Date        string `json:"date,omitempty"`
}

// NewID returns a fresh stable note identifier.
func NewID() string {
	return uuid.NewString()
}

// Matches reports whether the lowercased query is a substring of the title or content.
func (n Note) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(n.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(n.Content), lowerQuery)
}

// FormatUpdated renders a timestamp the way note cards display it.
func FormatUpdated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(updatedLayout)
}

// ValidateDraft trims the form fields and rejects blank ones.
func ValidateDraft(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return "", "", ErrTitleRequired
	}
	if content == "" {
		return "", "", ErrContentRequired
	}
	return title, content, nil
}

// Marshal encodes a full note list for the slot.
func Marshal(notes []Note) ([]byte, error) {
	recs := make([]record, len(notes))
	for i, n := range notes {
		recs[i] = record{
			ID:          n.ID,
			Title:       n.Title,
			Content:     n.Content,
			Color:       string(n.Color.OrDefault()),
			LastUpdated: n.LastUpdated.UTC().Format(time.RFC3339Nano),
		}
	}
	return json.Marshal(recs)
}

// Unmarshal decodes a slot blob. Any structural problem fails the whole blob;
// callers treat that as an empty list.
func Unmarshal(data []byte) ([]Note, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	notes := make([]Note, 0, len(recs))
	seen := make(map[string]bool, len(recs))
	for _, r := range recs {
		n := Note{
			ID:      r.ID,
			Title:   r.Title,
			Content: r.Content,
			Color:   Color(r.Color).OrDefault(),
		}
		stamp := r.LastUpdated
		if stamp == "" {
			stamp = r.Date
		}
		if stamp != "" {
			t, err := time.Parse(time.RFC3339Nano, stamp)
			if err != nil {
				return nil, err
			}
			n.LastUpdated = t
		}
		// Legacy records carry no id; duplicated ids would break trigger resolution.
		if n.ID == "" || seen[n.ID] {
			n.ID = NewID()
		}
		seen[n.ID] = true
		notes = append(notes, n)
	}
	return notes, nil
}
