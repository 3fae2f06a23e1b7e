package tui

import (
	"fmt"
	"strings"

	"github.com/financeflow/finflow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderGroupsTab() string {
	t := theme.Active

	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	metaStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder

	if a.loading && len(a.groups) == 0 {
		b.WriteString("\n  " + a.spinner.View() + " Loading groups...\n")
		return b.String()
	}
	if len(a.groups) == 0 {
		b.WriteString("\n" + metaStyle.Render("  No groups yet.") + "\n")
		return b.String()
	}

	b.WriteString("\n")
	active := a.sess.Group().ID
	for i, g := range a.groups {
		cursor := "  "
		line := fmt.Sprintf("%-24s", g.Name)
		if i == a.selected {
			cursor = selStyle.Render("> ")
			line = selStyle.Render(line)
		} else {
			line = nameStyle.Render(line)
		}

		meta := fmt.Sprintf("%d members", len(g.Members))
		if g.ID == active {
			meta += "  (active)"
		}
		b.WriteString("  " + cursor + line + metaStyle.Render(meta) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  [enter] open group  [j/k] move") + "\n")
	return b.String()
}
