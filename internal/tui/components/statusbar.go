package components

import (
	"fmt"

	"github.com/financeflow/finflow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. connState describes the
// realtime connection ("live", "offline", "cached"); dataAge is how old the
// displayed data is.
func RenderStatusBar(width int, connState, dataAge string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [r]efresh  [q]uit"
	right := ""
	if connState != "" {
		right = connState
	}
	if dataAge != "" {
		if right != "" {
			right += "  "
		}
		right += fmt.Sprintf("Data: %s", dataAge)
	}
	if right != "" {
		right += " "
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
