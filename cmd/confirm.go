package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/financeflow/finflow/internal/cli"
	"github.com/financeflow/finflow/internal/derive"

	"github.com/spf13/cobra"
)

var flagReject bool

var confirmCmd = &cobra.Command{
	Use:   "confirm <member>",
	Short: "Confirm (or reject) a payment a member says they made to you",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfirm,
}

func init() {
	confirmCmd.Flags().BoolVar(&flagReject, "reject", false, "Reject the payment instead of confirming it")
	rootCmd.AddCommand(confirmCmd)
}

func runConfirm(_ *cobra.Command, args []string) error {
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

	notice, ok := noticeFor(sess.Notices(), member.ID)
	if !ok {
		return fmt.Errorf("%s has no unconfirmed payment to you", member.Name)
	}

	if err := sess.Confirm(ctx, member.ID, !flagReject); err != nil {
		return err
	}

	amount := cli.FormatAmount(notice.Total, cfg.General.Currency)
	if flagReject {
		fmt.Printf("  Rejected %s from %s. They will need to settle again.\n", amount, member.Name)
	} else {
		fmt.Printf("  Confirmed %s received from %s.\n", amount, member.Name)
	}
	return nil
}

func noticeFor(notices []derive.Notice, memberID string) (derive.Notice, bool) {
	for _, n := range notices {
		if n.Counterparty.ID == memberID {
			return n, true
		}
	}
	return derive.Notice{}, false
}
