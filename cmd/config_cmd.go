// Package cmd implements the finflow CLI commands.
package cmd

import (
	"fmt"

	"github.com/financeflow/finflow/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Base URL:   %s\n", cfg.Server.BaseURL)
	fmt.Printf("    Socket URL: %s\n", cfg.SocketURL())
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DefaultGroup != "" {
		fmt.Printf("    Default group: %s\n", cfg.General.DefaultGroup)
	} else {
		fmt.Println("    Default group: not set")
	}
	fmt.Printf("    Currency:      %s\n", cfg.General.Currency)
	if cfg.General.ContactsFile != "" {
		fmt.Printf("    Contacts file: %s\n", cfg.General.ContactsFile)
	} else {
		fmt.Println("    Contacts file: not set")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `finflow setup` to reconfigure.")
	return nil
}
