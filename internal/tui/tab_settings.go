package tui

import (
	"strings"

	"github.com/financeflow/finflow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSettingsTab() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	render := func(label, value string) string {
		return "  " + labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}

	caps := func(available bool) string {
		if available {
			return "available"
		}
		return "unavailable"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Settings") + "\n\n")
	b.WriteString(render("Logged in as    ", a.sess.User().Name+" ("+a.sess.User().DisplayPhone()+")"))
	b.WriteString(render("Server          ", a.cfg.Server.BaseURL))
	b.WriteString(render("Socket          ", a.cfg.SocketURL()))
	b.WriteString(render("Currency        ", a.cfg.General.Currency))
	b.WriteString(render("Theme           ", theme.Active.Name))
	b.WriteString("\n")
	b.WriteString(render("Contacts        ", caps(a.caps.Contacts.Available())))
	b.WriteString(render("Notifications   ", caps(a.caps.Notifier.Available())))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  Edit these with `finflow config` or `finflow setup`.") + "\n")
	return b.String()
}
