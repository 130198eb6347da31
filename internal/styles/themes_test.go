package styles

import "testing"

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		// Valid 6-char hex colors
		{"valid uppercase", "#FF5500", true},
		{"valid lowercase", "#aabbcc", true},
		{"valid mixed case", "#AbCdEf", true},
		{"valid all zeros", "#000000", true},
		{"valid all Fs", "#FFFFFF", true},

		// Valid 8-char hex colors with alpha
		{"valid with alpha 80", "#00000080", true},
		{"valid with alpha FF", "#FF5500FF", true},
		{"valid with alpha 00", "#aabbcc00", true},

		// Invalid formats - wrong length
		{"invalid 3-char", "#FFF", false},
		{"invalid 4-char", "#FFFF", false},
		{"invalid 5-char", "#FF550", false},
		{"invalid 7-char", "#FF55001", false},
		{"invalid 9-char", "#FF5500801", false},

		// Invalid formats - no hash
		{"no hash 6-char", "FF5500", false},
		{"no hash 8-char", "FF550080", false},

		// Invalid formats - invalid characters
		{"invalid char G", "#GGGGGG", false},
		{"invalid char Z", "#ZZZZZZ", false},
		{"invalid char space", "#FF 550", false},
		{"invalid char dash", "#FF-550", false},

		// Edge cases
		{"empty string", "", false},
		{"just hash", "#", false},
		{"very long", "#FF5500FF5500FF5500", false},
		{"hash only no digits", "#XXXXXX", false},

		// Boundary cases
		{"exactly 6 hex digits", "#123456", true},
		{"exactly 8 hex digits", "#12345678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidHexColor(tt.input)
			if got != tt.valid {
				t.Errorf("IsValidHexColor(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestApplyThemeWithOverrides(t *testing.T) {
	t.Cleanup(func() { ApplyTheme("default") })

	ApplyThemeWithOverrides("dracula", map[string]string{
		"primary":       "#123456",
		"error":         "not-a-color",
		"markdownTheme": "notty",
	})

	if GetCurrentThemeName() != "dracula" {
		t.Errorf("current theme = %q, want dracula", GetCurrentThemeName())
	}
	if string(Primary) != "#123456" {
		t.Errorf("Primary = %q, want override", Primary)
	}
	if string(Error) != DraculaTheme.Colors.Error {
		t.Errorf("invalid override should be ignored, Error = %q", Error)
	}
	if GetMarkdownTheme() != "notty" {
		t.Errorf("markdown theme = %q", GetMarkdownTheme())
	}
}

func TestApplyTheme_UnknownFallsBack(t *testing.T) {
	t.Cleanup(func() { ApplyTheme("default") })

	ApplyTheme("no-such-theme")
	if GetCurrentThemeName() != "default" {
		t.Errorf("current theme = %q, want default", GetCurrentThemeName())
	}
	if string(Primary) != DefaultTheme.Colors.Primary {
		t.Errorf("Primary = %q", Primary)
	}
}

func TestListThemes(t *testing.T) {
	got := ListThemes()
	want := []string{"default", "dracula", "paper"}
	if len(got) != len(want) {
		t.Fatalf("ListThemes() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListThemes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNoteCard(t *testing.T) {
	normal := NoteCard("#fff3b0", 20, false, false)
	grabbed := NoteCard("#fff3b0", 20, false, true)
	if normal.GetBorderStyle() == grabbed.GetBorderStyle() {
		t.Error("grabbed card should use a distinct border")
	}
	if normal.GetWidth() != 20 {
		t.Errorf("width = %d", normal.GetWidth())
	}
}
