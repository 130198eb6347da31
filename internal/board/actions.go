package board

import (
	"fmt"

	"github.com/marcus/notedeck/internal/note"
)

// OpenCompose enters Composing for a new note.
func (c *Controller) OpenCompose() error {
	if c.mode != ModeIdle {
		return ErrModalActive
	}
	c.mode = ModeComposing
	c.draft = Draft{Color: note.DefaultColor}
	c.Render()
	return nil
}

// OpenEdit enters Composing for the note with id, pre-filling the draft.
// A stale id leaves the board idle.
func (c *Controller) OpenEdit(id string) error {
	if c.mode != ModeIdle {
		return ErrModalActive
	}
	n, ok := c.store.Get(id)
	if !ok {
		return fmt.Errorf("edit %s: %w", id, note.ErrNoteNotFound)
	}
	c.mode = ModeComposing
	c.draft = Draft{
		Title:   n.Title,
		Content: n.Content,
		Color:   n.Color.OrDefault(),
		EditID:  n.ID,
	}
	c.Render()
	return nil
}

// SelectColor sets the pending color of the draft.
func (c *Controller) SelectColor(col note.Color) error {
	if c.mode != ModeComposing {
		return ErrNoModal
	}
	if note.SwatchIndex(col) < 0 {
		return fmt.Errorf("select color %q: not in palette", col)
	}
	c.draft.Color = note.Palette[note.SwatchIndex(col)].Color
	c.Render()
	return nil
}

// UpdateDraft records in-progress form text without submitting it.
func (c *Controller) UpdateDraft(title, content string) {
	if c.mode != ModeComposing {
		return
	}
	c.draft.Title = title
	c.draft.Content = content
}

// Submit validates the form and creates or updates the note. Validation
// errors keep the dialog open; everything else closes it.
func (c *Controller) Submit(title, content string) error {
	if c.mode != ModeComposing {
		return ErrNoModal
	}
	cleanTitle, cleanContent, err := note.ValidateDraft(title, content)
	if err != nil {
		c.draft.Title, c.draft.Content = title, content
		c.Render()
		return err
	}

	n := note.Note{Title: cleanTitle, Content: cleanContent, Color: c.draft.Color}
	editID := c.draft.EditID
	c.resetCompose()

	if editID == "" {
		_, err = c.store.Create(n)
		return c.finish("create", err)
	}

	idx, err := c.resolve(editID)
	if err != nil {
		c.Render()
		return fmt.Errorf("update: %w", err)
	}
	return c.finish("update", c.store.Update(idx, n))
}

// CancelCompose leaves Composing without mutating anything.
func (c *Controller) CancelCompose() {
	if c.mode != ModeComposing {
		return
	}
	c.resetCompose()
	c.Render()
}

// resetCompose clears the form, color selection and edit target.
func (c *Controller) resetCompose() {
	c.mode = ModeIdle
	c.draft = Draft{Color: note.DefaultColor}
}

// RequestDelete enters ConfirmingDelete for the note with id.
func (c *Controller) RequestDelete(id string) error {
	if c.mode != ModeIdle {
		return ErrModalActive
	}
	if _, err := c.resolve(id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	c.mode = ModeConfirmingDelete
	c.deleteID = id
	c.Render()
	return nil
}

// ConfirmDelete deletes the pending note and returns to Idle. If the note
// vanished in the meantime nothing is deleted.
func (c *Controller) ConfirmDelete() error {
	if c.mode != ModeConfirmingDelete {
		return ErrNoModal
	}
	id := c.deleteID
	c.mode = ModeIdle
	c.deleteID = ""

	idx, err := c.resolve(id)
	if err != nil {
		c.Render()
		return fmt.Errorf("delete: %w", err)
	}
	_, err = c.store.Delete(idx)
	return c.finish("delete", err)
}

// CancelDelete discards the pending delete target.
func (c *Controller) CancelDelete() {
	if c.mode != ModeConfirmingDelete {
		return
	}
	c.mode = ModeIdle
	c.deleteID = ""
	c.Render()
}

// Drag applies a drag that moved the card at position from to position to
// in the current view. Hidden (filtered out) notes keep their positions.
func (c *Controller) Drag(from, to int) error {
	if c.mode != ModeIdle {
		return ErrModalActive
	}
	if from == to {
		return nil
	}
	order, err := note.Move(c.order, from, to)
	if err != nil {
		return fmt.Errorf("drag: %w", err)
	}
	list, err := note.Reconcile(c.store.Notes(), order)
	if err != nil {
		return fmt.Errorf("drag: %w", err)
	}
	return c.finish("reorder", c.store.Reorder(list))
}
