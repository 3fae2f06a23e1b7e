package tui

import (
	"fmt"
	"strings"

	"github.com/financeflow/finflow/internal/cli"
	"github.com/financeflow/finflow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderTransactionsTab() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	metaStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	amountStyle := lipgloss.NewStyle().Foreground(t.Green)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	group := a.sess.Group()
	if group.ID == "" {
		return "\n" + metaStyle.Render("  Pick a group first ([g]roups tab).") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(group.Name+" — history"))
	if a.loading {
		b.WriteString("  " + a.spinner.View())
	}
	b.WriteString("\n\n")

	if a.txPage == nil || len(a.txPage.Transactions) == 0 {
		b.WriteString(metaStyle.Render("  No transactions yet.") + "\n")
		return b.String()
	}

	currency := a.cfg.General.Currency
	for _, tx := range a.txPage.Transactions {
		title := cli.Truncate(tx.Title, 28)
		b.WriteString(fmt.Sprintf("  %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-28s", title)),
			amountStyle.Render(fmt.Sprintf("%12s", cli.FormatAmount(tx.Amount, currency))),
		))
		meta := fmt.Sprintf("%s · paid by %s · split %d ways",
			cli.FormatDate(tx.CreatedAt), tx.PaidBy.Name, len(tx.SplitBetween))
		if tx.Category != "" {
			meta += " · " + tx.Category
		}
		b.WriteString("  " + metaStyle.Render(meta) + "\n")
	}

	b.WriteString("\n" + metaStyle.Render(fmt.Sprintf("  Page %d/%d (%d total)",
		a.txPage.Page, a.txPage.TotalPages, a.txPage.Total)))
	b.WriteString("\n" + dimStyle.Render("  [n] next page  [N] previous page") + "\n")
	return b.String()
}
