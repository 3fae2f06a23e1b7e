package derive

import (
	"github.com/shopspring/decimal"

	"github.com/financeflow/finflow/internal/model"
)

// RowState is the action state of one member row. Exactly one state is
// active per row; it is recomputed from fetched data on every refresh and
// never stored. Transitions happen on the backend's settlement records and
// are observed here via re-fetch.
type RowState int

const (
	// RowSettled means nothing is owed or awaiting action between the pair.
	RowSettled RowState = iota
	// RowSettleUp means the current user owes the member and a pending
	// settlement exists to act on.
	RowSettleUp
	// RowWaiting means the current user has marked a settlement paid and is
	// waiting for the member to confirm receipt.
	RowWaiting
	// RowYouReceived means the member has paid and the current user must
	// confirm (or reject) receipt.
	RowYouReceived
	// RowHandleRejected means a prior settlement between the pair was
	// rejected and must be resubmitted. Takes precedence over everything.
	RowHandleRejected
)

func (s RowState) String() string {
	switch s {
	case RowSettleUp:
		return "Settle Up"
	case RowWaiting:
		return "Waiting"
	case RowYouReceived:
		return "You Received"
	case RowHandleRejected:
		return "Handle Rejected"
	default:
		return "Settled"
	}
}

// RowInput carries the derived facts needed to pick a row state for one pair.
type RowInput struct {
	// Display is the balance-derived signed figure (DisplayBalance).
	Display decimal.Decimal
	// Net is the settlement-derived net (PairNet.Net).
	Net decimal.Decimal
	// HasRejected is true when any rejected settlement exists for the pair.
	HasRejected bool
	// HasPending is true when a pending settlement with positive amount
	// exists for the pair.
	HasPending bool
}

// StateFor reduces the derived facts for one pair to a single row state.
// Precedence, highest first: rejected, incoming net, outgoing net, owed
// with a pending settlement, settled.
func StateFor(in RowInput) RowState {
	switch {
	case in.HasRejected:
		return RowHandleRejected
	case in.Net.Sign() > 0:
		return RowYouReceived
	case in.Net.Sign() < 0:
		return RowWaiting
	case in.Display.Sign() < 0 && in.HasPending:
		return RowSettleUp
	default:
		return RowSettled
	}
}

// Row is one fully derived member row, ready for rendering.
type Row struct {
	Member  model.Member
	Display decimal.Decimal
	Net     decimal.Decimal
	State   RowState
}

// Rows derives the full set of member rows for a group from the balance
// rows and the current user's settlement ledger. The current user is
// excluded from the output.
func Rows(balances []model.MemberBalance, ledger model.SettlementLedger, members []model.Member, groupID, currentUserID string) []Row {
	rows := make([]Row, 0, len(members))
	for _, m := range members {
		if m.ID == currentUserID {
			continue
		}

		display := DisplayBalance(BalanceFor(balances, m.ID), currentUserID)
		pn := NetPaidSettlements(ledger.Paid, groupID, currentUserID, m.ID)

		rows = append(rows, Row{
			Member:  m,
			Display: display,
			Net:     pn.Net,
			State: StateFor(RowInput{
				Display:     display,
				Net:         pn.Net,
				HasRejected: hasRejected(ledger.Rejected, groupID, currentUserID, m.ID),
				HasPending:  hasPositivePending(ledger.Pending, groupID, currentUserID, m.ID),
			}),
		})
	}
	return rows
}

func hasRejected(rejected []model.Settlement, groupID, a, b string) bool {
	for _, s := range rejected {
		if s.GroupID == groupID && s.Between(a, b) {
			return true
		}
	}
	return false
}

func hasPositivePending(pending []model.Settlement, groupID, a, b string) bool {
	for _, s := range pending {
		if s.GroupID == groupID && s.Between(a, b) && s.Amount.Sign() > 0 {
			return true
		}
	}
	return false
}
