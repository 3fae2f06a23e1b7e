package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/financeflow/finflow/internal/api"
	"github.com/financeflow/finflow/internal/config"
	"github.com/financeflow/finflow/internal/store"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to finflow!")
	fmt.Println()

	// 1. Server
	fmt.Println("  1. Backend server URL")
	fmt.Printf("     Current: %s\n", cfg.Server.BaseURL)
	fmt.Print("     > ")
	server, _ := reader.ReadString('\n')
	server = strings.TrimSpace(server)
	if server != "" {
		cfg.Server.BaseURL = server
	}
	fmt.Println()

	// 2. Default group, offered from the server when already logged in
	fmt.Println("  2. Default group")
	if groups := knownGroups(cfg); len(groups) > 0 {
		for i, g := range groups {
			fmt.Printf("     (%d) %s\n", i+1, g)
		}
		fmt.Print("     > ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)
		for i, g := range groups {
			if choice == fmt.Sprintf("%d", i+1) {
				cfg.General.DefaultGroup = g
			}
		}
	} else {
		fmt.Println("     (log in first to pick from your groups, or type a name)")
		fmt.Print("     > ")
		name, _ := reader.ReadString('\n')
		if name = strings.TrimSpace(name); name != "" {
			cfg.General.DefaultGroup = name
		}
	}
	fmt.Println()

	// 3. Currency
	fmt.Println("  3. Currency code")
	fmt.Printf("     Current: %s\n", cfg.General.Currency)
	fmt.Print("     > ")
	currency, _ := reader.ReadString('\n')
	if currency = strings.ToUpper(strings.TrimSpace(currency)); currency != "" {
		cfg.General.Currency = currency
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `finflow setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

// knownGroups lists group names from the server when stored credentials
// exist, or nothing when offline or logged out.
func knownGroups(cfg config.Config) []string {
	st, err := store.Open(config.StorePath())
	if err != nil {
		return nil
	}
	defer st.Close()

	token, _, ok, err := st.Credentials()
	if err != nil || !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	groups, err := api.NewClient(cfg.Server.BaseURL, token).FetchGroups(ctx)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}
