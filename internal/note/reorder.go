package note

import (
	"fmt"
	"slices"
)

// Move applies a drag that took the element at from to position to within
// the displayed order and returns the new displayed order.
func Move(order []int, from, to int) ([]int, error) {
	if from < 0 || from >= len(order) || to < 0 || to >= len(order) {
		return nil, fmt.Errorf("move %d->%d of %d: %w", from, to, len(order), ErrNoteNotFound)
	}
	out := slices.Clone(order)
	v := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, v)
	return out, nil
}

// Reconcile rebuilds the note list after a drag. order lists the pre-drag
// indices of the displayed notes in their new visual order. The displayed
// notes are written back into the slots they occupied before the drag, so
// notes hidden by a filter keep their positions.
func Reconcile(list []Note, order []int) ([]Note, error) {
	slots := slices.Clone(order)
	slices.Sort(slots)
	for i, idx := range slots {
		if idx < 0 || idx >= len(list) {
			return nil, fmt.Errorf("reconcile index %d: %w", idx, ErrNoteNotFound)
		}
		if i > 0 && slots[i-1] == idx {
			return nil, fmt.Errorf("reconcile index %d twice: %w", idx, ErrNotPermutation)
		}
	}
	out := slices.Clone(list)
	for i, slot := range slots {
		out[slot] = list[order[i]]
	}
	return out, nil
}
