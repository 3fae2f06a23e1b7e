package derive

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/financeflow/finflow/internal/model"
)

func TestReconcile_FlagsLedgerAheadOfBalances(t *testing.T) {
	rows := []Row{
		// Ledger says 100 received, balances say only 40 outstanding: drift.
		{Member: model.Member{ID: "A"}, Display: decimal.NewFromInt(-40), Net: decimal.NewFromInt(100)},
		// Net within the display figure: consistent.
		{Member: model.Member{ID: "B"}, Display: decimal.NewFromInt(-100), Net: decimal.NewFromInt(60)},
		// No paid settlements at all: nothing to check.
		{Member: model.Member{ID: "C"}, Display: decimal.NewFromInt(500), Net: decimal.Zero},
	}

	drifts := Reconcile(rows)
	if len(drifts) != 1 {
		t.Fatalf("got %d drifts, want 1", len(drifts))
	}
	if drifts[0].Member.ID != "A" {
		t.Errorf("drift member = %s, want A", drifts[0].Member.ID)
	}
}

func TestReconcile_CleanLedger(t *testing.T) {
	rows := []Row{
		{Member: model.Member{ID: "A"}, Display: decimal.NewFromInt(-100), Net: decimal.NewFromInt(-100)},
	}
	if drifts := Reconcile(rows); drifts != nil {
		t.Errorf("got drifts %+v, want none", drifts)
	}
}
