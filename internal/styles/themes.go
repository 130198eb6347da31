package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects access to themeRegistry and currentTheme
var themeMu sync.RWMutex

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds all theme colors
type ColorPalette struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Accent    string `json:"accent" yaml:"accent"`

	Success string `json:"success" yaml:"success"`
	Warning string `json:"warning" yaml:"warning"`
	Error   string `json:"error" yaml:"error"`
	Info    string `json:"info" yaml:"info"`

	TextPrimary   string `json:"textPrimary" yaml:"textPrimary"`
	TextSecondary string `json:"textSecondary" yaml:"textSecondary"`
	TextMuted     string `json:"textMuted" yaml:"textMuted"`
	TextSubtle    string `json:"textSubtle" yaml:"textSubtle"`

	BgPrimary   string `json:"bgPrimary" yaml:"bgPrimary"`
	BgSecondary string `json:"bgSecondary" yaml:"bgSecondary"`
	BgTertiary  string `json:"bgTertiary" yaml:"bgTertiary"`

	BorderNormal string `json:"borderNormal" yaml:"borderNormal"`
	BorderActive string `json:"borderActive" yaml:"borderActive"`

	TextHighlight    string `json:"textHighlight" yaml:"textHighlight"`
	ButtonHover      string `json:"buttonHover" yaml:"buttonHover"`
	TabTextInactive  string `json:"tabTextInactive" yaml:"tabTextInactive"`
	ToastSuccessText string `json:"toastSuccessText" yaml:"toastSuccessText"`
	ToastErrorText   string `json:"toastErrorText" yaml:"toastErrorText"`

	// MarkdownTheme is the glamour style used by the note preview.
	MarkdownTheme string `json:"markdownTheme" yaml:"markdownTheme"`
}

// Theme represents a complete theme configuration
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

// Built-in themes
var (
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary:   "#7C3AED",
			Secondary: "#3B82F6",
			Accent:    "#F59E0B",

			Success: "#10B981",
			Warning: "#F59E0B",
			Error:   "#EF4444",
			Info:    "#3B82F6",

			TextPrimary:   "#F9FAFB",
			TextSecondary: "#9CA3AF",
			TextMuted:     "#6B7280",
			TextSubtle:    "#4B5563",

			BgPrimary:   "#111827",
			BgSecondary: "#1F2937",
			BgTertiary:  "#374151",

			BorderNormal: "#374151",
			BorderActive: "#7C3AED",

			TextHighlight:    "#E5E7EB",
			ButtonHover:      "#9D174D",
			TabTextInactive:  "#1a1a1a",
			ToastSuccessText: "#000000",
			ToastErrorText:   "#FFFFFF",

			MarkdownTheme: "dark",
		},
	}

	DraculaTheme = Theme{
		Name:        "dracula",
		DisplayName: "Dracula",
		Colors: ColorPalette{
			Primary:   "#BD93F9",
			Secondary: "#8BE9FD",
			Accent:    "#FFB86C",

			Success: "#50FA7B",
			Warning: "#FFB86C",
			Error:   "#FF5555",
			Info:    "#8BE9FD",

			TextPrimary:   "#F8F8F2",
			TextSecondary: "#BFBFBF",
			TextMuted:     "#6272A4",
			TextSubtle:    "#44475A",

			BgPrimary:   "#282A36",
			BgSecondary: "#343746",
			BgTertiary:  "#44475A",

			BorderNormal: "#44475A",
			BorderActive: "#BD93F9",

			TextHighlight:    "#F8F8F2",
			ButtonHover:      "#FF79C6",
			TabTextInactive:  "#282A36",
			ToastSuccessText: "#282A36",
			ToastErrorText:   "#F8F8F2",

			MarkdownTheme: "dracula",
		},
	}

	// PaperTheme is a light theme that sits well next to the pastel notes.
	PaperTheme = Theme{
		Name:        "paper",
		DisplayName: "Paper",
		Colors: ColorPalette{
			Primary:   "#2563EB",
			Secondary: "#0891B2",
			Accent:    "#D97706",

			Success: "#059669",
			Warning: "#D97706",
			Error:   "#DC2626",
			Info:    "#0891B2",

			TextPrimary:   "#111827",
			TextSecondary: "#374151",
			TextMuted:     "#6B7280",
			TextSubtle:    "#9CA3AF",

			BgPrimary:   "#FAFAF9",
			BgSecondary: "#F3F4F6",
			BgTertiary:  "#E5E7EB",

			BorderNormal: "#D1D5DB",
			BorderActive: "#2563EB",

			TextHighlight:    "#1F2937",
			ButtonHover:      "#1D4ED8",
			TabTextInactive:  "#6B7280",
			ToastSuccessText: "#FFFFFF",
			ToastErrorText:   "#FFFFFF",

			MarkdownTheme: "light",
		},
	}
)

// themeRegistry holds all available themes
var themeRegistry = map[string]Theme{
	"default": DefaultTheme,
	"dracula": DraculaTheme,
	"paper":   PaperTheme,
}

// currentTheme tracks the active theme name
var currentTheme = "default"

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// GetCurrentThemeName returns the name of the currently active theme
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTheme applies a theme by name, updating all style variables
func ApplyTheme(name string) {
	ApplyThemeWithOverrides(name, nil)
}

// ApplyThemeWithOverrides applies a theme with color overrides from config.
// Unknown keys and invalid colors are ignored.
func ApplyThemeWithOverrides(name string, overrides map[string]string) {
	if !IsValidTheme(name) {
		name = DefaultTheme.Name
	}
	theme := GetTheme(name)
	for k, v := range overrides {
		applySingleOverride(&theme.Colors, k, v)
	}

	ApplyThemeColors(theme)
	themeMu.Lock()
	currentTheme = name
	themeMu.Unlock()
}

// overridable maps config override keys to palette entries.
func (p *ColorPalette) overridable() map[string]*string {
	return map[string]*string{
		"primary":       &p.Primary,
		"secondary":     &p.Secondary,
		"accent":        &p.Accent,
		"success":       &p.Success,
		"warning":       &p.Warning,
		"error":         &p.Error,
		"info":          &p.Info,
		"textPrimary":   &p.TextPrimary,
		"textSecondary": &p.TextSecondary,
		"textMuted":     &p.TextMuted,
		"textSubtle":    &p.TextSubtle,
		"bgPrimary":     &p.BgPrimary,
		"bgSecondary":   &p.BgSecondary,
		"bgTertiary":    &p.BgTertiary,
		"borderNormal":  &p.BorderNormal,
		"borderActive":  &p.BorderActive,
	}
}

// applySingleOverride sets one palette entry. Colors must be hex; the
// markdown theme is a glamour style name and taken as is.
func applySingleOverride(palette *ColorPalette, key, value string) {
	if key == "markdownTheme" {
		palette.MarkdownTheme = value
		return
	}
	if dst, ok := palette.overridable()[key]; ok && IsValidHexColor(value) {
		*dst = value
	}
}

// ApplyThemeColors updates all style package variables from a theme.
//
// It is not safe for concurrent reads and must run before the TUI starts.
func ApplyThemeColors(theme Theme) {
	c := theme.Colors

	Primary = lipgloss.Color(c.Primary)
	Secondary = lipgloss.Color(c.Secondary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)
	Info = lipgloss.Color(c.Info)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextSubtle = lipgloss.Color(c.TextSubtle)

	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	TextHighlight = lipgloss.Color(c.TextHighlight)
	ButtonHoverColor = lipgloss.Color(c.ButtonHover)
	TabTextInactiveColor = lipgloss.Color(c.TabTextInactive)
	ToastSuccessTextColor = lipgloss.Color(c.ToastSuccessText)
	ToastErrorTextColor = lipgloss.Color(c.ToastErrorText)

	CurrentMarkdownTheme = c.MarkdownTheme

	rebuildStyles()
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	Subtitle = lipgloss.NewStyle().Foreground(TextHighlight)
	Body = lipgloss.NewStyle().Foreground(TextPrimary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Subtle = lipgloss.NewStyle().Foreground(TextSubtle)
	KeyHint = lipgloss.NewStyle().Foreground(TextMuted).Background(BgTertiary).Padding(0, 1)

	ToastSuccess = lipgloss.NewStyle().Foreground(ToastSuccessTextColor).Background(Success).Padding(0, 1).Bold(true)
	ToastError = lipgloss.NewStyle().Foreground(ToastErrorTextColor).Background(Error).Padding(0, 1).Bold(true)

	ListItemNormal = lipgloss.NewStyle().Foreground(TextPrimary)
	ListItemSelected = lipgloss.NewStyle().Foreground(TextPrimary).Background(BgTertiary)
	ListItemFocused = lipgloss.NewStyle().Foreground(TextPrimary).Background(Primary)
	ListCursor = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	Footer = lipgloss.NewStyle().Foreground(TextMuted).Background(BgSecondary)
	Header = lipgloss.NewStyle().Background(BgSecondary)

	ModalTitle = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true).MarginBottom(1)

	Button = lipgloss.NewStyle().Foreground(TextSecondary).Background(BgTertiary).Padding(0, 2)
	ButtonFocused = lipgloss.NewStyle().Foreground(TextPrimary).Background(Primary).Padding(0, 2).Bold(true)
	ButtonHover = lipgloss.NewStyle().Foreground(TextPrimary).Background(ButtonHoverColor).Padding(0, 2)

	rebuildBoardStyles()
}

// GetMarkdownTheme returns the current markdown rendering theme name
func GetMarkdownTheme() string {
	return CurrentMarkdownTheme
}
