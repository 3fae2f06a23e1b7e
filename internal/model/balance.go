package model

import "github.com/shopspring/decimal"

// MemberBalance is one member's row from the group balances endpoint.
//
// OwedBy and OwesTo are keyed by user id, exactly as the backend sends them.
// The signed figure shown next to a member is never read from these maps
// directly; it is derived (see the derive package) so that the two-sided
// bookkeeping stays in one place.
type MemberBalance struct {
	Member Member                     `json:"member"`
	OwedBy map[string]decimal.Decimal `json:"owedBy"`
	OwesTo map[string]decimal.Decimal `json:"owesTo"`
}

// SpendingSummary is the per-group spending rollup.
type SpendingSummary struct {
	GroupID    string                     `json:"groupId"`
	TotalSpent decimal.Decimal            `json:"totalSpent"`
	TotalOwed  decimal.Decimal            `json:"totalOwed"`
	TotalOwing decimal.Decimal            `json:"totalOwing"`
	ByCategory map[string]decimal.Decimal `json:"byCategory,omitempty"`
}
