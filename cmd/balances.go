package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/financeflow/finflow/internal/cli"

	"github.com/spf13/cobra"
)

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Show who owes whom in a group",
	RunE:  runBalances,
}

func init() {
	rootCmd.AddCommand(balancesCmd)
}

func runBalances(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	sess, client, st, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	group, err := resolveGroup(ctx, client, cfg)
	if err != nil {
		return err
	}
	sess.SetGroup(group)

	if err := sess.Refresh(ctx); err != nil {
		// Cached snapshot may still be renderable
		if _, fromCache, _ := sess.Status(); !fromCache {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Fetch failed, showing cached data: %v\n", err)
		}
	}

	cur := cfg.General.Currency
	caps := detectCapabilities(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle(group.Name))
	fmt.Println()

	rows := sess.Rows()
	if len(rows) == 0 {
		fmt.Println("  No other members in this group.")
		return nil
	}

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		name := r.Member.Name
		if n, ok := caps.Contacts.Lookup(r.Member.PhoneNumber); ok {
			name = n
		}
		tableRows = append(tableRows, []string{
			name,
			r.Member.DisplayPhone(),
			cli.RenderSignedAmount(r.Display, cur),
			cli.RenderBadge(r.State),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Member", "Phone", "Balance", "Status"},
		Rows:    tableRows,
	}))

	for _, n := range sess.Notices() {
		fmt.Printf("\n  %s paid you %s — confirm with `finflow confirm %s`\n",
			n.Counterparty.Name, cli.FormatAmount(n.Total, cur), n.Counterparty.Name)
	}

	for _, d := range sess.Drifts() {
		fmt.Printf("\n  Note: settlement history for %s disagrees with the balance sheet (%s vs %s)\n",
			d.Member.Name, cli.FormatSignedAmount(d.Net, cur), cli.FormatSignedAmount(d.Display, cur))
	}

	if sum := sess.Summary(); sum != nil {
		fmt.Println()
		fmt.Printf("  Group spent %s total. You are owed %s and owe %s.\n",
			cli.FormatAmount(sum.TotalSpent, cur),
			cli.FormatAmount(sum.TotalOwed, cur),
			cli.FormatAmount(sum.TotalOwing, cur))
	}

	if fetchedAt, fromCache, _ := sess.Status(); fromCache {
		fmt.Printf("\n  (cached %s)\n", cli.FormatRelativeTime(fetchedAt, time.Now()))
	}
	return nil
}
