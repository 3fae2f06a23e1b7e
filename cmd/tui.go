package cmd

import (
	"fmt"
	"time"

	"github.com/financeflow/finflow/internal/api"
	"github.com/financeflow/finflow/internal/session"
	"github.com/financeflow/finflow/internal/tui"
	"github.com/financeflow/finflow/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	// Stored credentials are optional here: without them the dashboard
	// starts on its login screen.
	client := api.NewClient(cfg.Server.BaseURL, "")
	var sess *session.Session
	if token, user, ok, err := st.Credentials(); err == nil && ok {
		if info, ierr := api.InspectToken(token); ierr != nil || !info.Expired(time.Now()) {
			client.SetToken(token)
			sess = session.New(client, st, user)
		} else {
			_ = st.ClearCredentials()
		}
	}

	app := tui.New(cfg, client, st, sess, detectCapabilities(cfg))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
