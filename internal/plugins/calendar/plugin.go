// Package calendar is a month-view calendar plugin.
package calendar

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/notedeck/internal/keymap"
	"github.com/marcus/notedeck/internal/plugin"
	"github.com/marcus/notedeck/internal/state"
	"github.com/marcus/notedeck/internal/styles"
)

const (
	pluginID   = "calendar"
	pluginName = "calendar"
	pluginIcon = "C"

	cellWidth = 4
)

var weekdays = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// Plugin implements the calendar plugin.
type Plugin struct {
	ctx     *plugin.Context
	keys    *keymap.Registry
	logger  *slog.Logger
	focused bool
	now     func() time.Time

	year  int
	month time.Month
}

// New creates a new calendar plugin.
func New() *Plugin {
	return &Plugin{now: time.Now}
}

// ID returns the plugin identifier.
func (p *Plugin) ID() string { return pluginID }

// Name returns the plugin display name.
func (p *Plugin) Name() string { return pluginName }

// Icon returns the plugin icon character.
func (p *Plugin) Icon() string { return pluginIcon }

// Init restores the last viewed month, defaulting to the current one.
func (p *Plugin) Init(ctx *plugin.Context) error {
	p.ctx = ctx
	p.logger = slog.Default()
	if ctx != nil && ctx.Logger != nil {
		p.logger = ctx.Logger
	}
	if ctx != nil && ctx.Keymap != nil {
		p.keys = ctx.Keymap
	} else {
		p.keys = keymap.NewRegistry()
		keymap.RegisterDefaults(p.keys)
	}

	if y, m, ok := state.GetCalendarMonth(); ok {
		p.year, p.month = y, time.Month(m)
	} else {
		p.today()
	}
	return nil
}

// Start has no background work.
func (p *Plugin) Start() tea.Cmd { return nil }

// Stop is a no-op.
func (p *Plugin) Stop() {}

// Month returns the displayed month.
func (p *Plugin) Month() (int, time.Month) { return p.year, p.month }

func (p *Plugin) today() {
	p.year, p.month, _ = p.now().Date()
}

// Update handles messages.
func (p *Plugin) Update(msg tea.Msg) (plugin.Plugin, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch p.keys.LookupLocal(k.String(), keymap.ContextCalendar) {
	case "prev-month":
		p.year, p.month = shiftMonth(p.year, p.month, -1)
	case "next-month":
		p.year, p.month = shiftMonth(p.year, p.month, 1)
	case "prev-year":
		p.year--
	case "next-year":
		p.year++
	case "today":
		p.today()
	default:
		return p, nil
	}
	if err := state.SetCalendarMonth(p.year, int(p.month)); err != nil {
		p.logger.Debug("calendar: save state failed", "error", err)
	}
	return p, nil
}

// View renders the month grid centered in the content area.
func (p *Plugin) View(width, height int) string {
	gridWidth := cellWidth * 7

	var b strings.Builder
	title := fmt.Sprintf("%s %d", p.month, p.year)
	b.WriteString(lipgloss.PlaceHorizontal(gridWidth, lipgloss.Center, styles.CalendarHeader.Render(title)))
	b.WriteString("\n\n")

	for _, w := range weekdays {
		b.WriteString(styles.CalendarWeekday.Render(pad(w)))
	}

	for i, d := range Grid(p.year, p.month, p.now()) {
		if i%7 == 0 {
			b.WriteString("\n")
		}
		style := styles.CalendarDay
		switch {
		case d.Today:
			style = styles.CalendarToday
		case !d.InMonth:
			style = styles.CalendarInactive
		}
		b.WriteString(style.Render(pad(fmt.Sprintf("%d", d.Date.Day()))))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("h/l month · H/L year · t today"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// pad right-aligns s in a calendar cell.
func pad(s string) string {
	return fmt.Sprintf("%*s  ", cellWidth-2, s)
}

// IsFocused returns whether the plugin is focused.
func (p *Plugin) IsFocused() bool { return p.focused }

// SetFocused sets the focus state.
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// Commands returns the available commands.
func (p *Plugin) Commands() []plugin.Command {
	ctx := keymap.ContextCalendar
	return []plugin.Command{
		{ID: "prev-month", Name: "Prev", Description: "Previous month", Category: plugin.CategoryNavigation, Context: ctx, Priority: 1},
		{ID: "next-month", Name: "Next", Description: "Next month", Category: plugin.CategoryNavigation, Context: ctx, Priority: 2},
		{ID: "today", Name: "Today", Description: "Jump to the current month", Category: plugin.CategoryNavigation, Context: ctx, Priority: 3},
	}
}

// FocusContext returns the current focus context.
func (p *Plugin) FocusContext() string { return keymap.ContextCalendar }
