package viz

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors the chrome around the canvas and provides a fallback
// palette for groups without a configured color.
type Theme struct {
	Name     string
	Header   lipgloss.Color
	Border   lipgloss.Color
	Label    lipgloss.Color
	Value    lipgloss.Color
	Graph    lipgloss.Color
	Help     lipgloss.Color
	Fallback []lipgloss.Color
}

var themes = map[string]Theme{
	"dark": {
		Name:   "dark",
		Header: lipgloss.Color("86"),
		Border: lipgloss.Color("240"),
		Label:  lipgloss.Color("245"),
		Value:  lipgloss.Color("252"),
		Graph:  lipgloss.Color("49"),
		Help:   lipgloss.Color("240"),
		Fallback: []lipgloss.Color{
			lipgloss.Color("203"), lipgloss.Color("41"), lipgloss.Color("75"),
			lipgloss.Color("221"), lipgloss.Color("135"), lipgloss.Color("213"),
		},
	},
	"neon": {
		Name:   "neon",
		Header: lipgloss.Color("201"),
		Border: lipgloss.Color("57"),
		Label:  lipgloss.Color("99"),
		Value:  lipgloss.Color("231"),
		Graph:  lipgloss.Color("51"),
		Help:   lipgloss.Color("57"),
		Fallback: []lipgloss.Color{
			lipgloss.Color("201"), lipgloss.Color("51"), lipgloss.Color("226"),
			lipgloss.Color("118"), lipgloss.Color("208"), lipgloss.Color("93"),
		},
	},
	"mono": {
		Name:   "mono",
		Header: lipgloss.Color("255"),
		Border: lipgloss.Color("240"),
		Label:  lipgloss.Color("245"),
		Value:  lipgloss.Color("255"),
		Graph:  lipgloss.Color("250"),
		Help:   lipgloss.Color("240"),
		Fallback: []lipgloss.Color{
			lipgloss.Color("255"), lipgloss.Color("250"), lipgloss.Color("245"),
			lipgloss.Color("240"), lipgloss.Color("235"), lipgloss.Color("230"),
		},
	},
}

// CurrentTheme is the active theme; the live view cycles it at runtime.
var CurrentTheme = themes["dark"]

func SetTheme(name string) bool {
	t, ok := themes[name]
	if ok {
		CurrentTheme = t
	}
	return ok
}

func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupPalette builds one style per group, preferring each group's own
// configured hex color and falling back to the theme palette.
func GroupPalette(colors []string, theme Theme) []lipgloss.Style {
	styles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		if c != "" {
			styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
			continue
		}
		fb := theme.Fallback[i%len(theme.Fallback)]
		styles[i] = lipgloss.NewStyle().Foreground(fb)
	}
	return styles
}
