// Package derive computes display balances, settlement nets, and per-member
// action states from fetched group data. Everything here is a pure function
// of its inputs; nothing is stored, so a re-fetch fully determines the UI.
package derive

import (
	"github.com/shopspring/decimal"

	"github.com/financeflow/finflow/internal/model"
)

// DisplayBalance returns the signed net balance between the current user and
// the member the balance row belongs to:
//
//	displayBalance = owesTo[current] - owedBy[current]
//
// Negative means the current user owes the member; positive means the member
// owes the current user. A nil row (member with no shared transactions) and
// missing map entries both contribute zero, so a brand-new member nets to
// zero and renders as settled.
func DisplayBalance(mb *model.MemberBalance, currentUserID string) decimal.Decimal {
	if mb == nil {
		return decimal.Zero
	}
	currentOwesMember := mb.OwedBy[currentUserID]
	memberOwesCurrent := mb.OwesTo[currentUserID]
	return memberOwesCurrent.Sub(currentOwesMember)
}

// BalanceFor finds the balance row for the given member id. Returns nil when
// the member has no row, which DisplayBalance treats as a zero balance.
func BalanceFor(balances []model.MemberBalance, memberID string) *model.MemberBalance {
	for i := range balances {
		if balances[i].Member.ID == memberID {
			return &balances[i]
		}
	}
	return nil
}
