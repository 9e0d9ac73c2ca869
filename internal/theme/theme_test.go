package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHexToColor(t *testing.T) {
	tests := []struct {
		in   string
		want tcell.Color
	}{
		{"#ff0000", tcell.NewRGBColor(255, 0, 0)},
		{"#0f0", tcell.NewRGBColor(0, 255, 0)},
		{"7aa2f7", tcell.NewRGBColor(0x7a, 0xa2, 0xf7)},
		{"#12", tcell.ColorDefault},
		{"#zzzzzz", tcell.ColorDefault},
	}
	for _, tt := range tests {
		if got := HexToColor(tt.in); got != tt.want {
			t.Errorf("HexToColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorString(t *testing.T) {
	if got := ParseColorString(" rgb(1, 2, 3) "); got != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("rgb() form parsed as %v", got)
	}
	if got := ParseColorString("rgb(1,2,300)"); got != tcell.ColorDefault {
		t.Errorf("out of range rgb should give default, got %v", got)
	}
	if got := ParseColorString("blue"); got != tcell.ColorDefault {
		t.Errorf("names are not supported, got %v", got)
	}
}

func TestBlend(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(255, 255, 255)

	if got := Blend(black, white, 0); got != black {
		t.Errorf("Blend at 0 should give the first color, got %v", got)
	}
	if got := Blend(black, white, 1); got != white {
		t.Errorf("Blend at 1 should give the second color, got %v", got)
	}
	r, g, b := Blend(black, white, 0.5).RGB()
	if r <= 0 || r >= 255 || absDiff(r, g) > 1 || absDiff(g, b) > 1 {
		t.Errorf("Blend at 0.5 should be a gray, got %d,%d,%d", r, g, b)
	}
	if got := Blend(tcell.ColorDefault, white, 0.5); got != white {
		t.Errorf("Blend with default should give the other color, got %v", got)
	}
	if got := Blend(black, tcell.ColorDefault, 0.5); got != black {
		t.Errorf("Blend with default should give the other color, got %v", got)
	}
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	content := `name = "mine"

[colors]
list_text = "#ffffff"
status_error = "rgb(200, 0, 0)"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile failed: %v", err)
	}
	if th.Name != "mine" {
		t.Errorf("Expected name 'mine', got %q", th.Name)
	}
	if th.Colors.ListText != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("list_text not applied: %v", th.Colors.ListText)
	}
	if th.Colors.StatusError != tcell.NewRGBColor(200, 0, 0) {
		t.Errorf("status_error not applied: %v", th.Colors.StatusError)
	}
	if th.Colors.HeaderTitle != TokyoNight().Colors.HeaderTitle {
		t.Errorf("missing colors should fall back to Tokyo Night")
	}
}

func TestLoadThemeOrDefault(t *testing.T) {
	if LoadThemeOrDefault("default").Name != "default" {
		t.Errorf("Expected the default theme")
	}
	if LoadThemeOrDefault("no-such-theme-anywhere").Name != "tokyo-night" {
		t.Errorf("Unknown themes should fall back to Tokyo Night")
	}
}

func absDiff(a, b int32) int32 {
	if a > b {
		return a - b
	}
	return b - a
}
