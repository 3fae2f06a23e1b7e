package tui

import (
	"fmt"
	"strings"

	"github.com/financeflow/finflow/internal/cli"
	"github.com/financeflow/finflow/internal/derive"
	"github.com/financeflow/finflow/internal/tui/components"
	"github.com/financeflow/finflow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBalancesTab() string {
	t := theme.Active

	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	metaStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	group := a.sess.Group()
	if group.ID == "" {
		return "\n" + metaStyle.Render("  Pick a group first ([g]roups tab).") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + selStyle.Render(group.Name))
	if a.loading {
		b.WriteString("  " + a.spinner.View())
	}
	b.WriteString("\n\n")

	if summary := a.sess.Summary(); summary != nil {
		currency := a.cfg.General.Currency
		cards := []struct{ Label, Value, Delta string }{
			{"Total spent", cli.FormatAmount(summary.TotalSpent, currency), ""},
			{"Owed to you", cli.FormatAmount(summary.TotalOwed, currency), ""},
			{"You owe", cli.FormatAmount(summary.TotalOwing, currency), ""},
		}
		b.WriteString(components.MetricCardRow(cards, min(a.width-4, 72)))
		b.WriteString("\n\n")
	}

	if len(a.rows) == 0 {
		b.WriteString(metaStyle.Render("  No other members in this group.") + "\n")
		return b.String()
	}

	currency := a.cfg.General.Currency
	for i, row := range a.rows {
		cursor := "  "
		name := fmt.Sprintf("%-20s", cli.Truncate(a.displayName(row), 20))
		if i == a.selected {
			cursor = selStyle.Render("> ")
			name = selStyle.Render(name)
		} else {
			name = nameStyle.Render(name)
		}

		amount := fmt.Sprintf("%12s", cli.FormatSignedAmount(row.Display.Neg(), currency))
		b.WriteString("  " + cursor + name + amount + "   " + cli.RenderBadge(row.State) + "\n")
		b.WriteString("      " + metaStyle.Render(row.Member.DisplayPhone()) + "\n")
	}

	for _, d := range a.drifts {
		b.WriteString("\n" + warnStyle.Render(fmt.Sprintf(
			"  ! %s: settlement records (%s) disagree with balances (%s)",
			d.Member.Name,
			cli.FormatAmount(d.Net, currency),
			cli.FormatAmount(d.Display, currency),
		)))
	}

	hints := "  [c]onfirm received  [p]ay settle up  [j/k] move"
	b.WriteString("\n" + dimStyle.Render(hints) + "\n")
	return b.String()
}

// displayName prefers the device contact name over the server profile name.
func (a App) displayName(row derive.Row) string {
	if a.caps.Contacts.Available() {
		if name, ok := a.caps.Contacts.Lookup(row.Member.PhoneNumber); ok {
			return name
		}
	}
	if row.Member.Name == "" {
		return row.Member.ID
	}
	return row.Member.Name
}

func (a App) renderConfirmModal() string {
	t := theme.Active
	n := a.confirming
	currency := a.cfg.General.Currency

	body := fmt.Sprintf("%s marked %s as paid to you.\n\nConfirm you received it?\n\n[y] received  [n] reject  [esc] cancel",
		n.Counterparty.Name,
		cli.FormatAmount(n.Total, currency),
	)
	if len(n.Settlements) > 0 && n.Settlements[0].Title != "" {
		body = n.Settlements[0].Title + "\n" + body
	}

	card := components.ContentCard("Confirm settlement", body, min(a.width-8, 56))
	return "\n\n" + lipgloss.NewStyle().Foreground(t.TextPrimary).Render(card)
}
