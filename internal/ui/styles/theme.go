// Package styles defines chime's switchable color themes and pre-built
// lipgloss styles.
package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette.
type Theme struct {
	Name string

	// Accent colors
	Primary   lipgloss.Color // focused items, active states, progress fill
	Secondary lipgloss.Color // indicators, highlights

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Cursor/selection background
	BgCursor lipgloss.Color

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Error lipgloss.Color

	// Visualizer gradient endpoints (quiet to loud)
	VizLow  lipgloss.Color
	VizHigh lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style // currently playing track
	Cursor  lipgloss.Style // cursor row highlight
	Accent  lipgloss.Style
	Error   lipgloss.Style
}

var themes = []*Theme{
	{
		Name:        "default",
		Primary:     lipgloss.Color("#a78bfa"),
		Secondary:   lipgloss.Color("#f1a208"),
		FgBase:      lipgloss.Color("#c0c0c0"),
		FgMuted:     lipgloss.Color("#808080"),
		FgSubtle:    lipgloss.Color("#585858"),
		BgCursor:    lipgloss.Color("#303030"),
		Border:      lipgloss.Color("#585858"),
		BorderFocus: lipgloss.Color("#a78bfa"),
		Error:       lipgloss.Color("#ff5555"),
		VizLow:      lipgloss.Color("#5b21b6"),
		VizHigh:     lipgloss.Color("#c4b5fd"),
	},
	{
		Name:        "dracula",
		Primary:     lipgloss.Color("#bd93f9"),
		Secondary:   lipgloss.Color("#ff79c6"),
		FgBase:      lipgloss.Color("#f8f8f2"),
		FgMuted:     lipgloss.Color("#9ea8c7"),
		FgSubtle:    lipgloss.Color("#6272a4"),
		BgCursor:    lipgloss.Color("#44475a"),
		Border:      lipgloss.Color("#6272a4"),
		BorderFocus: lipgloss.Color("#bd93f9"),
		Error:       lipgloss.Color("#ff5555"),
		VizLow:      lipgloss.Color("#6272a4"),
		VizHigh:     lipgloss.Color("#ff79c6"),
	},
	{
		Name:        "nord",
		Primary:     lipgloss.Color("#88c0d0"),
		Secondary:   lipgloss.Color("#ebcb8b"),
		FgBase:      lipgloss.Color("#d8dee9"),
		FgMuted:     lipgloss.Color("#7b88a1"),
		FgSubtle:    lipgloss.Color("#4c566a"),
		BgCursor:    lipgloss.Color("#3b4252"),
		Border:      lipgloss.Color("#4c566a"),
		BorderFocus: lipgloss.Color("#88c0d0"),
		Error:       lipgloss.Color("#bf616a"),
		VizLow:      lipgloss.Color("#5e81ac"),
		VizHigh:     lipgloss.Color("#8fbcbb"),
	},
	{
		Name:        "gruvbox",
		Primary:     lipgloss.Color("#fabd2f"),
		Secondary:   lipgloss.Color("#fe8019"),
		FgBase:      lipgloss.Color("#ebdbb2"),
		FgMuted:     lipgloss.Color("#a89984"),
		FgSubtle:    lipgloss.Color("#665c54"),
		BgCursor:    lipgloss.Color("#3c3836"),
		Border:      lipgloss.Color("#665c54"),
		BorderFocus: lipgloss.Color("#fabd2f"),
		Error:       lipgloss.Color("#fb4934"),
		VizLow:      lipgloss.Color("#b57614"),
		VizHigh:     lipgloss.Color("#fabd2f"),
	},
	{
		Name:        "neon",
		Primary:     lipgloss.Color("#00ffd5"),
		Secondary:   lipgloss.Color("#ff2e97"),
		FgBase:      lipgloss.Color("#e6e6e6"),
		FgMuted:     lipgloss.Color("#8a8a9e"),
		FgSubtle:    lipgloss.Color("#4a4a5e"),
		BgCursor:    lipgloss.Color("#1f1f33"),
		Border:      lipgloss.Color("#4a4a5e"),
		BorderFocus: lipgloss.Color("#00ffd5"),
		Error:       lipgloss.Color("#ff2e56"),
		VizLow:      lipgloss.Color("#2e4bff"),
		VizHigh:     lipgloss.Color("#ff2e97"),
	},
}

var (
	mu      sync.RWMutex
	current = themes[0]
)

func init() {
	for _, t := range themes {
		t.styles = t.buildStyles()
	}
}

// T returns the active theme.
func T() *Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set switches the active theme by name. Unknown names select the default
// theme.
func Set(name string) {
	mu.Lock()
	defer mu.Unlock()
	current = byName(name)
}

// ByName returns the theme with the given name, or the default theme.
func ByName(name string) *Theme {
	return byName(name)
}

func byName(name string) *Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// Names returns the theme names in cycle order.
func Names() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Accent: lipgloss.NewStyle().Foreground(t.Secondary),
		Error:  lipgloss.NewStyle().Foreground(t.Error),
	}
}
