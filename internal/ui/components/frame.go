package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/nudge/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they line up.
func ContentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Frame centers content within the given dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Card wraps content in a rounded-border card at the given content width.
// A nil border color uses the theme default.
func Card(content string, cw int, border color.Color) string {
	if border == nil {
		border = theme.Border
	}
	return theme.Card.
		BorderForeground(border).
		Width(cw).
		Render(content)
}
