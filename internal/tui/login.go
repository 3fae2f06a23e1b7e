package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/financeflow/finflow/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func newLoginForm(vals *loginValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Phone number").
				Value(&vals.Phone).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("phone number is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&vals.Password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				}),
		),
	)
}

func (a App) loginSubmitCmd() tea.Cmd {
	client := a.client
	st := a.store
	phone := strings.TrimSpace(a.loginVals.Phone)
	password := a.loginVals.Password
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		token, user, err := client.Login(ctx, phone, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if st != nil {
			if err := st.SaveCredentials(token, user); err != nil {
				return loginDoneMsg{err: err}
			}
		}
		return loginDoneMsg{user: user}
	}
}

func (a App) renderLogin() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("  Welcome to FinanceFlow"))
	b.WriteString("\n\n")
	if a.errText != "" {
		b.WriteString(errStyle.Render("  " + a.errText))
		b.WriteString("\n\n")
	}
	b.WriteString(a.loginForm.View())
	return b.String()
}

func (a App) renderGuide() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("  Quick guide"))
	b.WriteString("\n\n")
	b.WriteString(valueStyle.Render("  [g] groups   pick a group"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("  [b] balances see who owes whom, confirm or settle"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("  [t] history  browse group expenses"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("  [r] refresh  updates also arrive live over the socket"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("  Press any key to continue"))
	return b.String()
}
