// Package styles holds the board theme and the per-card colour palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the board.
type Theme struct {
	Primary   lipgloss.Color // header accent, focused card border
	Secondary lipgloss.Color // header gradient end

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgBase lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color // playing
	Error   lipgloss.Color
	Warning lipgloss.Color // visual-only effects

	styles *Styles
}

// Styles contains pre-built lipgloss styles.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#25d366"),
	Secondary: lipgloss.Color("#34b7f1"),

	FgBase:   lipgloss.Color("#e9edef"),
	FgMuted:  lipgloss.Color("#8696a0"),
	FgSubtle: lipgloss.Color("#54656f"),

	BgBase: lipgloss.Color("#111b21"),

	Border:      lipgloss.Color("#54656f"),
	BorderFocus: lipgloss.Color("#25d366"),

	Success: lipgloss.Color("#25d366"),
	Error:   lipgloss.Color("#ff6b6b"),
	Warning: lipgloss.Color("#feca57"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
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
			Foreground(t.Success).
			Bold(true),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
