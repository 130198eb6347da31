package note

import "strings"

// Match is a filtered note together with its index in the unfiltered list.
type Match struct {
	Index int
	Note  Note
}

// Filter returns the notes whose title or content contains query,
// case-insensitively, in original order. An empty query returns list as is.
func Filter(list []Note, query string) []Note {
	if query == "" {
		return list
	}
	q := strings.ToLower(query)
	var out []Note
	for _, n := range list {
		if n.Matches(q) {
			out = append(out, n)
		}
	}
	return out
}

// FilterIndexed is Filter that keeps each match's true index so actions bound
// to a filtered view still address the right note.
func FilterIndexed(list []Note, query string) []Match {
	q := strings.ToLower(query)
	out := make([]Match, 0, len(list))
	for i, n := range list {
		if q == "" || n.Matches(q) {
			out = append(out, Match{Index: i, Note: n})
		}
	}
	return out
}
