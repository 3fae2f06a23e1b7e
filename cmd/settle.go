package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/financeflow/finflow/internal/cli"
	"github.com/financeflow/finflow/internal/derive"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var settleCmd = &cobra.Command{
	Use:   "settle <member> [amount]",
	Short: "Record that you paid a member back",
	Long: "Marks your debt to a member as paid, pending their confirmation.\n" +
		"Without an amount, settles the full outstanding balance.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettle,
}

func init() {
	rootCmd.AddCommand(settleCmd)
}

func runSettle(_ *cobra.Command, args []string) error {
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
	member, err := findMember(group, args[0])
	if err != nil {
		return err
	}

	sess.SetGroup(group)
	if err := sess.Refresh(ctx); err != nil {
		return err
	}

	row, ok := rowFor(sess.Rows(), member.ID)
	if !ok {
		return fmt.Errorf("no balance entry for %s", member.Name)
	}

	var amount decimal.Decimal
	if len(args) == 2 {
		amount, err = decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
	} else {
		if row.Display.Sign() >= 0 {
			return fmt.Errorf("you do not owe %s anything", member.Name)
		}
		amount = row.Display.Neg()
	}

	if err := sess.MarkPaid(ctx, member.ID, amount); err != nil {
		return err
	}

	fmt.Printf("  Marked %s paid to %s. Waiting for them to confirm.\n",
		cli.FormatAmount(amount, cfg.General.Currency), member.Name)
	return nil
}

func rowFor(rows []derive.Row, memberID string) (derive.Row, bool) {
	for _, r := range rows {
		if r.Member.ID == memberID {
			return r, true
		}
	}
	return derive.Row{}, false
}
