package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/financeflow/finflow/internal/capability"
	"github.com/financeflow/finflow/internal/realtime"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow live activity in a group",
	Long:  "Connects to the realtime stream and prints group events as they arrive. Ctrl-C to stop.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	_, client, st, err := requireSession(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	token, _, _, err := st.Credentials()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, err := resolveGroup(ctx, client, cfg)
	if err != nil {
		return err
	}

	stream, err := realtime.Dial(ctx, cfg.SocketURL(), token)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", cfg.SocketURL(), err)
	}
	defer stream.Close()

	if err := stream.JoinGroup(group.ID); err != nil {
		return err
	}
	defer stream.LeaveGroup(group.ID)

	caps := detectCapabilities(cfg)

	fmt.Printf("  Watching %s (Ctrl-C to stop)\n\n", group.Name)
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n  Stopped.")
			return nil
		case ev, ok := <-stream.Events():
			if !ok {
				if err := stream.Err(); err != nil {
					return fmt.Errorf("stream closed: %w", err)
				}
				fmt.Println("\n  Stream closed by server.")
				return nil
			}
			if ev.GroupID != "" && ev.GroupID != group.ID {
				continue
			}
			printEvent(ev, caps.Notifier)
		}
	}
}

func printEvent(ev realtime.Event, notifier capability.Notifier) {
	ts := time.Now().Format("15:04:05")
	switch ev.Type {
	case realtime.EventTransactionUpdate:
		fmt.Printf("  %s  expense added or updated\n", ts)
	case realtime.EventTransactionDeleted:
		fmt.Printf("  %s  expense deleted\n", ts)
	case realtime.EventSettlementUpdate:
		fmt.Printf("  %s  settlement activity\n", ts)
		notifier.Notify("FinanceFlow", "Settlement activity in your group")
	case realtime.EventBalanceUpdate:
		fmt.Printf("  %s  balances changed\n", ts)
	default:
		fmt.Printf("  %s  %s\n", ts, ev.Type)
	}
}
