package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/financeflow/finflow/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagTxPage  int
	flagTxLimit int
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "Show the group's expense history",
	RunE:    runTransactions,
}

func init() {
	transactionsCmd.Flags().IntVar(&flagTxPage, "page", 1, "Page number")
	transactionsCmd.Flags().IntVar(&flagTxLimit, "limit", 20, "Transactions per page")
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	_, client, st, err := requireSession(cfg)
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

	page, err := client.FetchTransactions(ctx, group.ID, flagTxPage, flagTxLimit)
	if err != nil {
		return err
	}

	cur := cfg.General.Currency
	now := time.Now()

	fmt.Println()
	fmt.Println(cli.RenderTitle(group.Name + " — TRANSACTIONS"))
	fmt.Println()

	if len(page.Transactions) == 0 {
		fmt.Println("  No transactions yet.")
		return nil
	}

	rows := make([][]string, 0, len(page.Transactions))
	for _, tx := range page.Transactions {
		rows = append(rows, []string{
			cli.Truncate(tx.Title, 32),
			tx.Category,
			cli.FormatAmount(tx.Amount, cur),
			tx.PaidBy.Name,
			fmt.Sprintf("%d", len(tx.SplitBetween)),
			cli.FormatRelativeTime(tx.CreatedAt, now),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Title", "Category", "Amount", "Paid by", "Split", "When"},
		Rows:    rows,
	}))

	if page.TotalPages > 1 {
		fmt.Printf("\n  Page %d of %d (%d total). Use --page to browse.\n",
			page.Page, page.TotalPages, page.Total)
	}
	return nil
}
