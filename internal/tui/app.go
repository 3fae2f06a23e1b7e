// Package tui provides the interactive Bubble Tea dashboard for finflow.
package tui

import (
	"context"
	"time"

	"github.com/financeflow/finflow/internal/api"
	"github.com/financeflow/finflow/internal/capability"
	"github.com/financeflow/finflow/internal/config"
	"github.com/financeflow/finflow/internal/derive"
	"github.com/financeflow/finflow/internal/model"
	"github.com/financeflow/finflow/internal/realtime"
	"github.com/financeflow/finflow/internal/session"
	"github.com/financeflow/finflow/internal/store"
	"github.com/financeflow/finflow/internal/tui/components"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	tabGroups = iota
	tabBalances
	tabTransactions
	tabSettings
)

const txPageSize = 15

// groupsLoadedMsg is sent when the group list fetch completes.
type groupsLoadedMsg struct {
	groups []model.Group
	err    error
}

// refreshDoneMsg is sent when a session refresh completes.
type refreshDoneMsg struct {
	err error
}

// txLoadedMsg is sent when a transaction page fetch completes.
type txLoadedMsg struct {
	page *model.TransactionPage
	err  error
}

// streamMsg is sent when the realtime connection attempt resolves.
type streamMsg struct {
	stream *realtime.Stream
	err    error
}

// eventMsg carries one realtime event; ok is false when the stream ended.
type eventMsg struct {
	ev realtime.Event
	ok bool
}

// loginDoneMsg is sent when the login request resolves.
type loginDoneMsg struct {
	user model.Member
	err  error
}

// confirmDoneMsg is sent when a settlement confirmation resolves.
type confirmDoneMsg struct {
	err error
}

// App is the root Bubble Tea model.
type App struct {
	cfg    config.Config
	client *api.Client
	store  *store.Store
	sess   *session.Session
	stream *realtime.Stream
	caps   capability.Set

	groups []model.Group

	// Derived view state, recomputed after every refresh
	rows    []derive.Row
	notices []derive.Notice
	drifts  []derive.Drift
	txPage  *model.TransactionPage

	// UI state
	width     int
	height    int
	activeTab int
	selected  int
	showGuide bool
	errText   string

	// Confirm modal: the notice being acted on, nil when closed
	confirming *derive.Notice

	spinner spinner.Model
	loading bool

	// Login form shown when no stored session exists
	needLogin bool
	loginForm *huh.Form
	loginVals loginValues
}

type loginValues struct {
	Phone    string
	Password string
}

// New builds the app. sess may be nil, in which case the login form is shown
// first.
func New(cfg config.Config, client *api.Client, st *store.Store, sess *session.Session, caps capability.Set) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	a := App{
		cfg:       cfg,
		client:    client,
		store:     st,
		sess:      sess,
		caps:      caps,
		spinner:   sp,
		needLogin: sess == nil,
	}
	if a.needLogin {
		a.loginForm = newLoginForm(&a.loginVals)
	}
	if st != nil {
		done, _ := st.Flag(store.FlagGuideCompleted)
		a.showGuide = !done
	}
	return a
}

// Init starts the spinner and, when logged in, the initial loads.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if a.needLogin {
		cmds = append(cmds, a.loginForm.Init())
		return tea.Batch(cmds...)
	}
	cmds = append(cmds, a.loadGroupsCmd(), a.connectStreamCmd())
	return tea.Batch(cmds...)
}

func (a App) loadGroupsCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		groups, err := client.FetchGroups(ctx)
		return groupsLoadedMsg{groups: groups, err: err}
	}
}

func (a App) refreshCmd() tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return refreshDoneMsg{err: sess.Refresh(ctx)}
	}
}

func (a App) loadTxCmd(page int) tea.Cmd {
	client := a.client
	groupID := a.sess.Group().ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		p, err := client.FetchTransactions(ctx, groupID, page, txPageSize)
		return txLoadedMsg{page: p, err: err}
	}
}

func (a App) connectStreamCmd() tea.Cmd {
	cfg := a.cfg
	st := a.store
	return func() tea.Msg {
		token := ""
		if st != nil {
			token, _, _, _ = st.Credentials()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		stream, err := realtime.Dial(ctx, cfg.SocketURL(), token)
		return streamMsg{stream: stream, err: err}
	}
}

func waitEventCmd(stream *realtime.Stream) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-stream.Events()
		return eventMsg{ev: ev, ok: ok}
	}
}

func (a App) confirmCmd(counterpartyID string, accepted bool) tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return confirmDoneMsg{err: sess.Confirm(ctx, counterpartyID, accepted)}
	}
}

func (a App) settleCmd(counterpartyID string, amount decimal.Decimal) tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return confirmDoneMsg{err: sess.MarkPaid(ctx, counterpartyID, amount)}
	}
}

// rederive pulls fresh derived state out of the session.
func (a *App) rederive() {
	a.rows = a.sess.Rows()
	a.notices = a.sess.Notices()
	a.drifts = a.sess.Drifts()
	if a.selected >= len(a.rows) {
		a.selected = 0
	}
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case groupsLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.errText = msg.err.Error()
			return a, nil
		}
		a.groups = msg.groups
		a.errText = ""
		if g, ok := a.defaultGroup(); ok {
			cmd := a.selectGroup(g)
			return a, cmd
		}

	case refreshDoneMsg:
		a.loading = false
		if msg.err != nil {
			a.errText = msg.err.Error()
		} else {
			a.errText = ""
		}
		// Derived state is recomputed either way; on failure it renders
		// the prior (stale-but-available) data.
		a.rederive()

	case txLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.errText = msg.err.Error()
			return a, nil
		}
		a.txPage = msg.page

	case streamMsg:
		if msg.err != nil {
			// Offline mode: manual refresh still works.
			return a, nil
		}
		a.stream = msg.stream
		if g := a.sess; g != nil && g.Group().ID != "" {
			_ = a.stream.JoinGroup(g.Group().ID)
		}
		return a, waitEventCmd(a.stream)

	case eventMsg:
		if !msg.ok {
			a.stream = nil
			return a, nil
		}
		cmds := []tea.Cmd{waitEventCmd(a.stream)}
		if a.sess != nil && msg.ev.GroupID == a.sess.Group().ID {
			if msg.ev.Type == realtime.EventSettlementUpdate {
				a.caps.Notifier.Notify("Settlement update", "A settlement in "+a.sess.Group().Name+" changed")
			}
			cmds = append(cmds, a.refreshCmd())
		}
		return a, tea.Batch(cmds...)

	case loginDoneMsg:
		if msg.err != nil {
			a.errText = msg.err.Error()
			a.loginForm = newLoginForm(&a.loginVals)
			return a, a.loginForm.Init()
		}
		a.needLogin = false
		a.errText = ""
		a.sess = session.New(a.client, a.store, msg.user)
		return a, tea.Batch(a.loadGroupsCmd(), a.connectStreamCmd())

	case confirmDoneMsg:
		a.loading = false
		if msg.err != nil {
			a.errText = msg.err.Error()
		}
		a.rederive()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.needLogin && a.loginForm != nil {
		form, cmd := a.loginForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			a.loginForm = f
		}
		if a.loginForm.State == huh.StateCompleted {
			return a, a.loginSubmitCmd()
		}
		return a, cmd
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showGuide {
		a.showGuide = false
		if a.store != nil {
			_ = a.store.SetFlag(store.FlagGuideCompleted, true)
		}
		return a, nil
	}

	if a.needLogin {
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		form, cmd := a.loginForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			a.loginForm = f
		}
		if a.loginForm.State == huh.StateCompleted {
			return a, a.loginSubmitCmd()
		}
		return a, cmd
	}

	// Confirm modal captures keys while open
	if a.confirming != nil {
		switch msg.String() {
		case "y", "enter":
			target := a.confirming.Counterparty.ID
			a.confirming = nil
			a.loading = true
			return a, a.confirmCmd(target, true)
		case "n":
			target := a.confirming.Counterparty.ID
			a.confirming = nil
			a.loading = true
			return a, a.confirmCmd(target, false)
		case "esc", "q":
			a.confirming = nil
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if a.stream != nil {
			if g := a.sess.Group().ID; g != "" {
				_ = a.stream.LeaveGroup(g)
			}
			_ = a.stream.Close()
		}
		return a, tea.Quit

	case "?":
		a.showGuide = true

	case "r":
		if a.sess.Group().ID != "" {
			a.loading = true
			return a, a.refreshCmd()
		}

	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}

	case "down", "j":
		if a.selected < a.maxCursor() {
			a.selected++
		}

	case "enter":
		if a.activeTab == tabGroups && a.selected < len(a.groups) {
			cmd := a.selectGroup(a.groups[a.selected])
			return a, cmd
		}

	case "c":
		if a.activeTab == tabBalances {
			if n := a.noticeForSelected(); n != nil {
				a.confirming = n
			}
		}

	case "p":
		// Settle up: pay the full outstanding display balance.
		if a.activeTab == tabBalances && a.selected < len(a.rows) {
			row := a.rows[a.selected]
			if row.State == derive.RowSettleUp || row.State == derive.RowHandleRejected {
				a.loading = true
				return a, a.settleCmd(row.Member.ID, row.Display.Neg())
			}
		}

	case "n":
		if a.activeTab == tabTransactions && a.txPage != nil && a.txPage.Page < a.txPage.TotalPages {
			a.loading = true
			return a, a.loadTxCmd(a.txPage.Page + 1)
		}

	case "N":
		if a.activeTab == tabTransactions && a.txPage != nil && a.txPage.Page > 1 {
			a.loading = true
			return a, a.loadTxCmd(a.txPage.Page - 1)
		}

	default:
		if len(msg.String()) == 1 {
			if idx := components.TabIdxByKey(rune(msg.String()[0])); idx >= 0 {
				a.activeTab = idx
				a.selected = 0
				if idx == tabTransactions && a.txPage == nil && a.sess.Group().ID != "" {
					a.loading = true
					return a, a.loadTxCmd(1)
				}
			}
		}
	}

	return a, nil
}

// selectGroup switches the session to a group, joins its event room, and
// kicks off a refresh.
func (a *App) selectGroup(g model.Group) tea.Cmd {
	if a.stream != nil {
		if prev := a.sess.Group().ID; prev != "" && prev != g.ID {
			_ = a.stream.LeaveGroup(prev)
		}
		_ = a.stream.JoinGroup(g.ID)
	}
	a.sess.SetGroup(g)
	a.rederive()
	a.txPage = nil
	a.activeTab = tabBalances
	a.selected = 0
	a.loading = true
	return a.refreshCmd()
}

func (a App) defaultGroup() (model.Group, bool) {
	if a.cfg.General.DefaultGroup == "" {
		return model.Group{}, false
	}
	for _, g := range a.groups {
		if g.ID == a.cfg.General.DefaultGroup || g.Name == a.cfg.General.DefaultGroup {
			return g, true
		}
	}
	return model.Group{}, false
}

func (a App) maxCursor() int {
	switch a.activeTab {
	case tabGroups:
		return len(a.groups) - 1
	case tabBalances:
		return len(a.rows) - 1
	default:
		return 0
	}
}

// noticeForSelected returns the confirmation notice for the selected row, if
// that member has money awaiting the current user's confirmation.
func (a App) noticeForSelected() *derive.Notice {
	if a.selected >= len(a.rows) {
		return nil
	}
	memberID := a.rows[a.selected].Member.ID
	for i := range a.notices {
		if a.notices[i].Counterparty.ID == memberID {
			return &a.notices[i]
		}
	}
	return nil
}

// View renders the app.
func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}
	if a.needLogin {
		return a.renderLogin()
	}
	if a.showGuide {
		return a.renderGuide()
	}

	var body string
	switch a.activeTab {
	case tabGroups:
		body = a.renderGroupsTab()
	case tabBalances:
		body = a.renderBalancesTab()
	case tabTransactions:
		body = a.renderTransactionsTab()
	case tabSettings:
		body = a.renderSettingsTab()
	}

	if a.confirming != nil {
		body = a.renderConfirmModal()
	}

	var fetchedAt time.Time
	var fromCache bool
	if a.sess != nil {
		fetchedAt, fromCache, _ = a.sess.Status()
	}
	conn := "offline"
	if a.stream != nil {
		conn = "live"
	}
	if fromCache {
		conn = "cached"
	}
	age := ""
	if !fetchedAt.IsZero() {
		age = fetchedAt.Local().Format("15:04:05")
	}

	header := components.RenderTabBar(a.activeTab, a.width)
	status := components.RenderStatusBar(a.width, conn, age)

	content := lipgloss.NewStyle().Height(a.height - 4).Render(body)
	return header + "\n\n" + content + "\n" + status
}
