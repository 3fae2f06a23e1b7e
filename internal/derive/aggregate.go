package derive

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/financeflow/finflow/internal/model"
)

// PairNet is the netted position of the current user's paid settlements
// against one counterparty in one group.
//
// Incoming sums settlements the counterparty has paid to the current user
// (current user must confirm receipt). Outgoing sums settlements the current
// user has paid to the counterparty (counterparty must confirm). Only the
// net direction ever surfaces: the larger side cancels the smaller, and a
// zero net shows no action at all.
type PairNet struct {
	CounterpartyID string
	Incoming       decimal.Decimal
	Outgoing       decimal.Decimal
	Net            decimal.Decimal // Incoming - Outgoing
	LatestIncoming *model.Settlement
}

// NetPaidSettlements nets the paid settlements between the current user and
// one counterparty within a group.
func NetPaidSettlements(paid []model.Settlement, groupID, currentUserID, counterpartyID string) PairNet {
	pn := PairNet{
		CounterpartyID: counterpartyID,
		Incoming:       decimal.Zero,
		Outgoing:       decimal.Zero,
	}

	for i := range paid {
		s := paid[i]
		if s.GroupID != groupID || s.Status != model.SettlementPaid {
			continue
		}
		switch {
		case s.UserID == counterpartyID && s.PaidByID == currentUserID:
			pn.Incoming = pn.Incoming.Add(s.Amount)
			if pn.LatestIncoming == nil || s.CreatedAt.After(pn.LatestIncoming.CreatedAt) {
				pn.LatestIncoming = &paid[i]
			}
		case s.UserID == currentUserID && s.PaidByID == counterpartyID:
			pn.Outgoing = pn.Outgoing.Add(s.Amount)
		}
	}

	pn.Net = pn.Incoming.Sub(pn.Outgoing)
	return pn
}

// Notice is one entry of the confirmation list shown to the current user:
// a counterparty whose paid settlements net to money the current user has
// received and must confirm.
type Notice struct {
	Counterparty model.Member
	Total        decimal.Decimal
	Settlements  []model.Settlement // most recent incoming settlement
}

// Notices builds the confirmation list for the current user: one Notice per
// counterparty whose netted paid settlements flow toward the current user
// (net > 0). Counterparties with zero or outgoing nets are omitted. Output
// is ordered by descending total so the largest confirmation leads.
func Notices(paid []model.Settlement, members []model.Member, groupID, currentUserID string) []Notice {
	var out []Notice
	for _, m := range members {
		if m.ID == currentUserID {
			continue
		}
		pn := NetPaidSettlements(paid, groupID, currentUserID, m.ID)
		if pn.Net.Sign() <= 0 {
			continue
		}
		n := Notice{Counterparty: m, Total: pn.Net}
		if pn.LatestIncoming != nil {
			n.Settlements = []model.Settlement{*pn.LatestIncoming}
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}
