package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one group expense. Append-only from the client's
// perspective; the client only reads and paginates.
type Transaction struct {
	ID           string          `json:"_id"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category,omitempty"`
	PaidBy       Member          `json:"paidBy"`
	SplitBetween []Member        `json:"splitBetween"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// TransactionPage is one page of a group's transaction history.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Page         int           `json:"page"`
	TotalPages   int           `json:"totalPages"`
	Total        int           `json:"total"`
}
