package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/financeflow/finflow/internal/cli"

	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List your groups and their members",
	RunE:  runGroups,
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	_, client, st, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	groups, err := client.FetchGroups(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("GROUPS"))
	fmt.Println()

	if len(groups) == 0 {
		fmt.Println("  No groups yet.")
		return nil
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		names := make([]string, 0, len(g.Members))
		for _, m := range g.Members {
			names = append(names, m.Name)
		}
		rows = append(rows, []string{
			g.ID,
			g.Name,
			cli.Truncate(strings.Join(names, ", "), 48),
			cli.FormatDate(g.CreatedAt),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Name", "Members", "Created"},
		Rows:    rows,
	}))
	return nil
}
