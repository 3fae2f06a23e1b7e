package derive

import (
	"github.com/shopspring/decimal"

	"github.com/financeflow/finflow/internal/model"
)

// Drift flags a counterparty whose balance-endpoint figure and settlement
// ledger disagree. The two are computed from independent backend aggregates
// and can fall out of sync; action states come from the ledger and displayed
// amounts from the balances, so disagreement is surfaced rather than hidden.
type Drift struct {
	Member  model.Member
	Display decimal.Decimal
	Net     decimal.Decimal
}

// Reconcile cross-checks each member row: a paid-settlement net larger in
// magnitude than the outstanding display balance means money was marked paid
// that the balance aggregate does not know about (or vice versa).
func Reconcile(rows []Row) []Drift {
	var drifts []Drift
	for _, r := range rows {
		if r.Net.IsZero() {
			continue
		}
		if r.Net.Abs().GreaterThan(r.Display.Abs()) {
			drifts = append(drifts, Drift{Member: r.Member, Display: r.Display, Net: r.Net})
		}
	}
	return drifts
}
