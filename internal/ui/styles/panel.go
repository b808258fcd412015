package styles

import "github.com/charmbracelet/lipgloss"

// CardStyle returns the border style of a clip card drawn in accent.
// The focused card gets a thick border.
func CardStyle(accent lipgloss.Color, focused bool) lipgloss.Style {
	border := lipgloss.RoundedBorder()
	if focused {
		border = lipgloss.ThickBorder()
	}
	return lipgloss.NewStyle().
		BorderStyle(border).
		BorderForeground(accent).
		Padding(0, 1)
}

// DimCardStyle is CardStyle for an unavailable clip.
func DimCardStyle(focused bool) lipgloss.Style {
	return CardStyle(T().FgSubtle, focused)
}
