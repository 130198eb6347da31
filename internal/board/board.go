// Package board is the notes board controller: it owns the note store, the
// active search query and the dialog state, and pushes a fresh View to its
// renderer after every change.
package board

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/marcus/notedeck/internal/note"
)

// ErrModalActive is returned when a dialog is requested while another is open.
var ErrModalActive = errors.New("a dialog is already open")

// ErrNoModal is returned when a dialog action arrives with no dialog open.
var ErrNoModal = errors.New("no dialog is open")

// Mode is the dialog state of the board.
type Mode int

const (
	ModeIdle Mode = iota
	ModeComposing
	ModeConfirmingDelete
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeComposing:
		return "composing"
	case ModeConfirmingDelete:
		return "confirming-delete"
	default:
		return "idle"
	}
}

// Card is one rendered note. Index is the note's position in the unfiltered
// store at render time; actions address cards by ID.
type Card struct {
	ID      string
	Index   int
	Title   string
	Content string
	Color   note.Color
	Updated string
}

// Draft is the compose form state.
type Draft struct {
	Title   string
	Content string
	Color   note.Color
	EditID  string // empty when composing a new note
}

// Editing reports whether the draft targets an existing note.
func (d Draft) Editing() bool { return d.EditID != "" }

// View is everything a renderer needs to draw the board.
type View struct {
	Cards        []Card
	Empty        bool
	Total        int
	Query        string
	Mode         Mode
	Draft        Draft
	Pending      *Card // note awaiting delete confirmation
	ScrollLocked bool
}

// Renderer draws a View. Render is called after every state change.
type Renderer interface {
	Render(v View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(View)

// Render calls f(v).
func (f RendererFunc) Render(v View) { f(v) }

// Controller drives the board. It is not safe for concurrent use; callers
// run every action to completion on the UI goroutine.
type Controller struct {
	store    *note.Store
	renderer Renderer
	logger   *slog.Logger
	warn     func(error)

	mode     Mode
	draft    Draft
	deleteID string
	query    string

	view View
	// order holds the true indices of the displayed cards, captured at render
	// time so a drag can be mapped back onto the store.
	order []int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWarn registers a hook for non-fatal persistence failures.
func WithWarn(fn func(error)) Option {
	return func(c *Controller) { c.warn = fn }
}

// New creates a controller over store. renderer may be nil.
func New(store *note.Store, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		renderer: renderer,
		logger:   slog.Default(),
		draft:    Draft{Color: note.DefaultColor},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetRenderer replaces the renderer and redraws.
func (c *Controller) SetRenderer(r Renderer) {
	c.renderer = r
	c.Render()
}

// Start loads the store and renders the first view.
func (c *Controller) Start() error {
	err := c.store.Load()
	c.Render()
	if err != nil {
		c.logger.Warn("board: load failed, starting empty", "error", err)
	}
	return err
}

// Reload re-reads the slot, dropping pending targets that no longer exist.
func (c *Controller) Reload() error {
	err := c.store.Load()
	if c.draft.Editing() && c.store.IndexOf(c.draft.EditID) < 0 {
		c.resetCompose()
	}
	if c.mode == ModeConfirmingDelete && c.store.IndexOf(c.deleteID) < 0 {
		c.mode = ModeIdle
		c.deleteID = ""
	}
	c.Render()
	return err
}

// Store returns the underlying store.
func (c *Controller) Store() *note.Store { return c.store }

// Mode returns the current dialog state.
func (c *Controller) Mode() Mode { return c.mode }

// Query returns the active search query.
func (c *Controller) Query() string { return c.query }

// View returns the last rendered view.
func (c *Controller) View() View { return c.view }

// Render rebuilds the view from the authoritative store and hands it to the
// renderer. The previous view is discarded entirely.
func (c *Controller) Render() {
	notes := c.store.Notes()
	matches := note.FilterIndexed(notes, c.query)

	cards := make([]Card, len(matches))
	order := make([]int, len(matches))
	for i, m := range matches {
		cards[i] = Card{
			ID:      m.Note.ID,
			Index:   m.Index,
			Title:   m.Note.Title,
			Content: m.Note.Content,
			Color:   m.Note.Color.OrDefault(),
			Updated: note.FormatUpdated(m.Note.LastUpdated),
		}
		order[i] = m.Index
	}

	v := View{
		Cards:        cards,
		Empty:        len(cards) == 0,
		Total:        len(notes),
		Query:        c.query,
		Mode:         c.mode,
		Draft:        c.draft,
		ScrollLocked: c.mode != ModeIdle,
	}
	if c.mode == ModeConfirmingDelete {
		if i := c.store.IndexOf(c.deleteID); i >= 0 {
			n := notes[i]
			v.Pending = &Card{ID: n.ID, Index: i, Title: n.Title, Content: n.Content, Color: n.Color}
		}
	}

	c.view = v
	c.order = order
	if c.renderer != nil {
		c.renderer.Render(v)
	}
}

// SetQuery changes the search query and re-renders from the store.
func (c *Controller) SetQuery(q string) {
	c.query = q
	c.Render()
}

// finish re-renders after a mutation and reports persistence failures.
func (c *Controller) finish(op string, err error) error {
	c.Render()
	if err == nil {
		return nil
	}
	if errors.Is(err, note.ErrPersist) {
		c.logger.Warn("board: persist failed", "op", op, "error", err)
		if c.warn != nil {
			c.warn(err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// resolve maps a note id to its current true index.
func (c *Controller) resolve(id string) (int, error) {
	i := c.store.IndexOf(id)
	if i < 0 {
		return -1, fmt.Errorf("note %s: %w", id, note.ErrNoteNotFound)
	}
	return i, nil
}
