// Package session owns the client-side state for one group view: it fetches
// balances and settlement records, sequences overlapping fetches, and applies
// optimistic patches around the settlement write path.
//
// It is also the app context the rest of the client goes through for the
// current user and token; nothing else reads the device store ad hoc.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financeflow/finflow/internal/api"
	"github.com/financeflow/finflow/internal/derive"
	"github.com/financeflow/finflow/internal/model"
	"github.com/financeflow/finflow/internal/store"
)

var (
	// ErrConfirmInFlight indicates a confirmation for the same counterparty
	// has been submitted and not yet resolved.
	ErrConfirmInFlight = errors.New("session: confirmation already in flight")
	// ErrNoGroup indicates no group has been selected.
	ErrNoGroup = errors.New("session: no group selected")
)

// Session holds the fetched state for the active group. All mutation goes
// through Refresh and the write methods; reads snapshot under a lock so the
// TUI and CLI can render from any goroutine.
type Session struct {
	api   *api.Client
	store *store.Store
	user  model.Member

	// gen sequences fetches: every Refresh takes a new generation, and a
	// response is only applied while its generation is still the newest.
	// Whatever order overlapping responses resolve in, stale ones drop.
	gen atomic.Uint64

	mu         sync.RWMutex
	group      model.Group
	balances   []model.MemberBalance
	ledger     model.SettlementLedger
	summary    *model.SpendingSummary
	appliedGen uint64
	lastFetch  time.Time
	fromCache  bool
	lastErr    error
	confirming map[string]bool
}

// New builds a session for the given user. The store may be nil (no
// persistence, e.g. in tests).
func New(client *api.Client, st *store.Store, user model.Member) *Session {
	return &Session{
		api:        client,
		store:      st,
		user:       user,
		confirming: make(map[string]bool),
	}
}

// User returns the logged-in user.
func (s *Session) User() model.Member { return s.user }

// Group returns the active group.
func (s *Session) Group() model.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.group
}

// SetGroup switches the active group, clearing fetched state. If the device
// store holds a snapshot for the group it is used immediately so the view is
// stale-but-available until the next Refresh lands.
func (s *Session) SetGroup(g model.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.group = g
	s.balances = nil
	s.ledger = model.SettlementLedger{}
	s.summary = nil
	s.lastFetch = time.Time{}
	s.fromCache = false
	s.lastErr = nil

	if s.store == nil {
		return
	}
	balances, ledger, fetchedAt, ok, err := s.store.GroupSnapshot(g.ID)
	if err != nil {
		log.Printf("session: reading group snapshot: %v", err)
		return
	}
	if ok {
		s.balances = balances
		s.ledger = ledger
		s.lastFetch = fetchedAt
		s.fromCache = true
	}
}

// Refresh fetches balances, settlement status, and the spending summary for
// the active group. A missing auth token is a no-op. On failure the previous
// state stays in place and the error is recorded; a 401 additionally clears
// the stored credentials. A response that lost the race to a newer Refresh
// is discarded.
func (s *Session) Refresh(ctx context.Context) error {
	if s.api == nil || !s.api.HasToken() {
		return nil
	}

	s.mu.RLock()
	groupID := s.group.ID
	s.mu.RUnlock()
	if groupID == "" {
		return ErrNoGroup
	}

	g := s.gen.Add(1)

	balances, err := s.api.FetchGroupBalances(ctx, groupID)
	if err != nil {
		return s.recordFetchError(err)
	}
	ledger, err := s.api.FetchSettlementStatus(ctx, groupID, s.user.ID)
	if err != nil {
		return s.recordFetchError(err)
	}
	summary, err := s.api.FetchSpendingSummary(ctx, groupID)
	if err != nil {
		// The summary is decoration; balances and ledger still apply.
		log.Printf("session: fetching spending summary: %v", err)
		summary = nil
	}

	s.mu.Lock()
	if g < s.gen.Load() || g <= s.appliedGen || s.group.ID != groupID {
		s.mu.Unlock()
		return nil
	}
	s.balances = balances
	s.ledger = *ledger
	if summary != nil {
		s.summary = summary
	}
	s.appliedGen = g
	s.lastFetch = time.Now()
	s.fromCache = false
	s.lastErr = nil
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveGroupSnapshot(groupID, balances, *ledger); err != nil {
			log.Printf("session: saving group snapshot: %v", err)
		}
	}
	return nil
}

func (s *Session) recordFetchError(err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	if errors.Is(err, api.ErrUnauthorized) && s.store != nil {
		if cerr := s.store.ClearCredentials(); cerr != nil {
			log.Printf("session: clearing credentials: %v", cerr)
		}
	}
	log.Printf("session: fetch failed, keeping previous state: %v", err)
	return err
}

// Rows derives the member rows for the active group.
func (s *Session) Rows() []derive.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return derive.Rows(s.balances, s.ledger, s.group.Members, s.group.ID, s.user.ID)
}

// Notices derives the confirmation list for the active group.
func (s *Session) Notices() []derive.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return derive.Notices(s.ledger.Paid, s.group.Members, s.group.ID, s.user.ID)
}

// Drifts cross-checks the balance figures against the settlement ledger.
func (s *Session) Drifts() []derive.Drift {
	return derive.Reconcile(s.Rows())
}

// Summary returns the last fetched spending summary, or nil.
func (s *Session) Summary() *model.SpendingSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Status reports when the current data was fetched, whether it came from the
// device cache, and the last fetch error if any.
func (s *Session) Status() (fetchedAt time.Time, fromCache bool, lastErr error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetch, s.fromCache, s.lastErr
}

// Confirm resolves a counterparty's paid settlements toward the current
// user: accepted moves them to success, rejected pushes them back for the
// counterparty to handle. The in-flight guard is taken before the request
// starts, so a double submit fails fast instead of issuing two PUTs. On
// success local state is patched optimistically and then reconciled with a
// full Refresh.
func (s *Session) Confirm(ctx context.Context, counterpartyID string, accepted bool) error {
	s.mu.Lock()
	if s.confirming[counterpartyID] {
		s.mu.Unlock()
		return ErrConfirmInFlight
	}
	s.confirming[counterpartyID] = true
	groupID := s.group.ID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.confirming, counterpartyID)
		s.mu.Unlock()
	}()

	if groupID == "" {
		return ErrNoGroup
	}

	if err := s.api.ConfirmSettlement(ctx, groupID, counterpartyID, accepted); err != nil {
		log.Printf("session: confirm settlement: %v", err)
		return err
	}

	s.patchConfirmed(groupID, counterpartyID, accepted)

	if err := s.Refresh(ctx); err != nil {
		// Optimistic state stands until the next successful fetch.
		log.Printf("session: reconcile after confirm: %v", err)
	}
	return nil
}

// patchConfirmed moves the counterparty's incoming paid settlements out of
// the paid bucket so the row state flips before the reconcile fetch lands.
func (s *Session) patchConfirmed(groupID, counterpartyID string, accepted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var remaining []model.Settlement
	for _, set := range s.ledger.Paid {
		if set.GroupID == groupID && set.UserID == counterpartyID && set.PaidByID == s.user.ID {
			if accepted {
				set.Status = model.SettlementSuccess
				s.ledger.Success = append(s.ledger.Success, set)
			} else {
				set.Status = model.SettlementRejected
				s.ledger.Rejected = append(s.ledger.Rejected, set)
			}
			continue
		}
		remaining = append(remaining, set)
	}
	s.ledger.Paid = remaining
}

// MarkPaid records that the current user has paid the given amount toward a
// counterparty (pending -> paid), then re-fetches.
func (s *Session) MarkPaid(ctx context.Context, counterpartyID string, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return errors.New("session: amount must be positive")
	}

	s.mu.RLock()
	groupID := s.group.ID
	s.mu.RUnlock()
	if groupID == "" {
		return ErrNoGroup
	}

	if err := s.api.UpdateSettlementStatus(ctx, groupID, counterpartyID, amount); err != nil {
		log.Printf("session: update settlement status: %v", err)
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		log.Printf("session: refresh after settle: %v", err)
	}
	return nil
}
