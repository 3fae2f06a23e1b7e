package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/financeflow/finflow/internal/api"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store credentials on this device",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear stored credentials",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Printf("  Logging in to %s\n", cfg.Server.BaseURL)
	fmt.Println()

	fmt.Print("  Phone number > ")
	phone, _ := reader.ReadString('\n')
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("phone number is required")
	}

	fmt.Print("  Password     > ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)
	if password == "" {
		return fmt.Errorf("password is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(cfg.Server.BaseURL, "")
	token, user, err := client.Login(ctx, phone, password)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveCredentials(token, user); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Logged in as %s\n", user.Name)
	if info, err := api.InspectToken(token); err == nil && !info.ExpiresAt.IsZero() {
		fmt.Printf("  Session valid until %s\n", info.ExpiresAt.Format("Jan 2, 2006 15:04"))
	}
	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ClearCredentials(); err != nil {
		return err
	}
	fmt.Println("  Logged out.")
	return nil
}
