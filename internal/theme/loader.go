package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string `toml:"name"`
	Colors struct {
		ListText       string `toml:"list_text"`
		ListBackground string `toml:"list_background"`
		ListSelected   string `toml:"list_selected"`
		ListDivider    string `toml:"list_divider"`
		ListScrollBar  string `toml:"list_scrollbar"`
		HeaderTitle    string `toml:"header_title"`
		FooterText     string `toml:"footer_text"`
		EmptyText      string `toml:"empty_text"`
		FilterLabel    string `toml:"filter_label"`
		FilterText     string `toml:"filter_text"`
		StatusMode     string `toml:"status_mode"`
		StatusMessage  string `toml:"status_message"`
		StatusError    string `toml:"status_error"`
		StatusTime     string `toml:"status_time"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "tui-listproxy", "themes"),
		filepath.Join(home, ".local", "share", "tui-listproxy", "themes"),
	}
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo Night for missing colors
func configToTheme(config ThemeConfig) *Theme {
	theme := TokyoNight()
	c := &theme.Colors
	overrides := []struct {
		value  string
		target *tcell.Color
	}{
		{config.Colors.ListText, &c.ListText},
		{config.Colors.ListBackground, &c.ListBackground},
		{config.Colors.ListSelected, &c.ListSelected},
		{config.Colors.ListDivider, &c.ListDivider},
		{config.Colors.ListScrollBar, &c.ListScrollBar},
		{config.Colors.HeaderTitle, &c.HeaderTitle},
		{config.Colors.FooterText, &c.FooterText},
		{config.Colors.EmptyText, &c.EmptyText},
		{config.Colors.FilterLabel, &c.FilterLabel},
		{config.Colors.FilterText, &c.FilterText},
		{config.Colors.StatusMode, &c.StatusMode},
		{config.Colors.StatusMessage, &c.StatusMessage},
		{config.Colors.StatusError, &c.StatusError},
		{config.Colors.StatusTime, &c.StatusTime},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = ParseColorString(o.value)
		}
	}

	if config.Name != "" {
		theme.Name = config.Name
	}

	return theme
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "tokyo-night":
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
