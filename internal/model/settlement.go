package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStatus is the lifecycle state of a settlement record.
//
// A settlement moves pending -> paid (debtor marks it paid) -> success
// (creditor confirms receipt). A disputed confirmation moves it to rejected,
// which behaves like pending but must be surfaced to the debtor.
type SettlementStatus string

const (
	SettlementPending  SettlementStatus = "pending"
	SettlementPaid     SettlementStatus = "paid"
	SettlementSuccess  SettlementStatus = "success"
	SettlementRejected SettlementStatus = "rejected"
)

// Settlement records a debt repayment between two group members.
// UserID is the debtor (who owes); PaidByID is the original transaction
// payer, who is owed the money and must confirm receipt.
type Settlement struct {
	ID        string           `json:"_id"`
	GroupID   string           `json:"group"`
	UserID    string           `json:"user"`
	PaidByID  string           `json:"paidBy"`
	Amount    decimal.Decimal  `json:"amount"`
	Status    SettlementStatus `json:"status"`
	Title     string           `json:"title,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Between reports whether the settlement is between the two given users,
// in either direction.
func (s Settlement) Between(a, b string) bool {
	return (s.UserID == a && s.PaidByID == b) || (s.UserID == b && s.PaidByID == a)
}

// SettlementLedger holds the current user's settlement records for one group,
// bucketed by status as returned by the settlement-status endpoint.
type SettlementLedger struct {
	Pending  []Settlement `json:"pendingSettlements"`
	Paid     []Settlement `json:"paidSettlements"`
	Success  []Settlement `json:"successSettlements"`
	Rejected []Settlement `json:"rejectedSettlements"`
}
