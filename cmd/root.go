package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/financeflow/finflow/internal/api"
	"github.com/financeflow/finflow/internal/capability"
	"github.com/financeflow/finflow/internal/cli"
	"github.com/financeflow/finflow/internal/config"
	"github.com/financeflow/finflow/internal/model"
	"github.com/financeflow/finflow/internal/session"
	"github.com/financeflow/finflow/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagGroup  string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "finflow",
	Short: "FinanceFlow terminal client",
	Long:  "Track group expenses, balances, and settlements from the terminal.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagGroup, "group", "g", "", "Group id or name (overrides config default)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig loads config with the --server flag applied on top.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config problem, using defaults: %v\n", err)
	}
	if flagServer != "" {
		cfg.Server.BaseURL = flagServer
	}
	return cfg
}

func openStore() (*store.Store, error) {
	return store.Open(config.StorePath())
}

// requireSession builds the logged-in app context from stored credentials.
// An expired token is cleared up front so the user gets a clean login
// prompt instead of a 401 mid-command.
func requireSession(cfg config.Config) (*session.Session, *api.Client, *store.Store, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, nil, err
	}

	token, user, ok, err := st.Credentials()
	if err != nil {
		_ = st.Close()
		return nil, nil, nil, err
	}
	if !ok {
		_ = st.Close()
		return nil, nil, nil, errors.New("not logged in — run `finflow login` first")
	}

	if info, err := api.InspectToken(token); err == nil && info.Expired(time.Now()) {
		_ = st.ClearCredentials()
		_ = st.Close()
		return nil, nil, nil, errors.New("session expired — run `finflow login` again")
	}

	client := api.NewClient(cfg.Server.BaseURL, token)
	return session.New(client, st, user), client, st, nil
}

// resolveGroup picks the group from --group, the configured default, or the
// sole group the user belongs to.
func resolveGroup(ctx context.Context, client *api.Client, cfg config.Config) (model.Group, error) {
	groups, err := client.FetchGroups(ctx)
	if err != nil {
		return model.Group{}, err
	}
	if len(groups) == 0 {
		return model.Group{}, errors.New("you are not in any group yet")
	}

	want := flagGroup
	if want == "" {
		want = cfg.General.DefaultGroup
	}
	if want == "" {
		if len(groups) == 1 {
			return groups[0], nil
		}
		return model.Group{}, errors.New("multiple groups — pass --group or set a default with `finflow config`")
	}

	for _, g := range groups {
		if g.ID == want || g.Name == want {
			return g, nil
		}
	}
	return model.Group{}, fmt.Errorf("no group matching %q", want)
}

// findMember matches a group member by id, name, or phone number.
// Name matching is case-insensitive.
func findMember(group model.Group, query string) (model.Member, error) {
	for _, m := range group.Members {
		if m.ID == query || m.PhoneNumber == query || strings.EqualFold(m.Name, query) {
			return m, nil
		}
	}
	return model.Member{}, fmt.Errorf("no member matching %q in %s", query, group.Name)
}

func detectCapabilities(cfg config.Config) capability.Set {
	var out io.Writer
	if !flagQuiet {
		out = os.Stderr
	}
	return capability.Detect(cfg.General.ContactsFile, out)
}

func runOverview(_ *cobra.Command, _ []string) error {
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
	fmt.Println(cli.RenderTitle("FINANCEFLOW"))
	fmt.Println()

	if len(groups) == 0 {
		fmt.Println("  No groups yet.")
		return nil
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Name,
			fmt.Sprintf("%d", len(g.Members)),
			cli.FormatDate(g.CreatedAt),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Group", "Members", "Created"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println("  `finflow balances -g <group>` shows who owes whom.")
	return nil
}
