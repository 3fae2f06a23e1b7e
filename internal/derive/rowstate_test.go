package derive

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financeflow/finflow/internal/model"
)

func TestStateFor_Precedence(t *testing.T) {
	tests := []struct {
		name string
		in   RowInput
		want RowState
	}{
		{"rejected beats everything", RowInput{
			Display: decimal.NewFromInt(-50), Net: decimal.NewFromInt(100),
			HasRejected: true, HasPending: true,
		}, RowHandleRejected},
		{"positive net means you received", RowInput{
			Net: decimal.NewFromInt(60),
		}, RowYouReceived},
		{"negative net means waiting", RowInput{
			Net: decimal.NewFromInt(-60),
		}, RowWaiting},
		{"owing with pending means settle up", RowInput{
			Display: decimal.NewFromInt(-50), HasPending: true,
		}, RowSettleUp},
		{"owing without pending stays settled", RowInput{
			Display: decimal.NewFromInt(-50),
		}, RowSettled},
		{"zero everything is settled", RowInput{}, RowSettled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateFor(tt.in); got != tt.want {
				t.Errorf("StateFor(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStateFor_NeverBothDirections(t *testing.T) {
	// Whatever the inputs, at most one of YouReceived/Waiting is active.
	nets := []int64{-100, -1, 0, 1, 100}
	for _, n := range nets {
		got := StateFor(RowInput{Net: decimal.NewFromInt(n)})
		if n > 0 && got != RowYouReceived {
			t.Errorf("net %d: got %v, want YouReceived", n, got)
		}
		if n < 0 && got != RowWaiting {
			t.Errorf("net %d: got %v, want Waiting", n, got)
		}
		if n == 0 && (got == RowYouReceived || got == RowWaiting) {
			t.Errorf("net 0: got %v, want neutral", got)
		}
	}
}

func TestRows_TwoPaidSettlementsScenario(t *testing.T) {
	// A owes B 100 (paid), B owes A 40 (paid): B sees YouReceived, A sees Waiting.
	now := time.Now()
	members := []model.Member{{ID: "A", Name: "Asha"}, {ID: "B", Name: "Bharat"}}
	ledger := model.SettlementLedger{
		Paid: []model.Settlement{
			paidSettlement("s1", "g1", "A", "B", 100, now),
			paidSettlement("s2", "g1", "B", "A", 40, now),
		},
	}

	rowsForB := Rows(nil, ledger, members, "g1", "B")
	if len(rowsForB) != 1 {
		t.Fatalf("B sees %d rows, want 1", len(rowsForB))
	}
	if rowsForB[0].State != RowYouReceived {
		t.Errorf("B's row state = %v, want YouReceived", rowsForB[0].State)
	}
	if !rowsForB[0].Net.Equal(decimal.NewFromInt(60)) {
		t.Errorf("B's net = %s, want 60", rowsForB[0].Net)
	}

	rowsForA := Rows(nil, ledger, members, "g1", "A")
	if len(rowsForA) != 1 {
		t.Fatalf("A sees %d rows, want 1", len(rowsForA))
	}
	if rowsForA[0].State != RowWaiting {
		t.Errorf("A's row state = %v, want Waiting", rowsForA[0].State)
	}
}

func TestRows_EmptyDataRendersSettled(t *testing.T) {
	// No settlements, no balances: every row settles, nothing panics on
	// missing avatar/phone fields.
	members := []model.Member{
		{ID: "me"},
		{ID: "A", Name: "Asha"},
		{ID: "B"},
	}

	rows := Rows(nil, model.SettlementLedger{}, members, "g1", "me")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (current user excluded)", len(rows))
	}
	for _, r := range rows {
		if r.State != RowSettled {
			t.Errorf("row %s state = %v, want Settled", r.Member.ID, r.State)
		}
		if !r.Display.IsZero() {
			t.Errorf("row %s display = %s, want 0", r.Member.ID, r.Display)
		}
		if r.Member.DisplayPhone() != "No phone" {
			t.Errorf("row %s phone fallback = %q", r.Member.ID, r.Member.DisplayPhone())
		}
	}
}

func TestRows_RejectedTakesPriority(t *testing.T) {
	now := time.Now()
	members := []model.Member{{ID: "A"}, {ID: "B"}}
	ledger := model.SettlementLedger{
		Paid: []model.Settlement{
			paidSettlement("s1", "g1", "A", "B", 100, now),
		},
		Rejected: []model.Settlement{
			{ID: "s2", GroupID: "g1", UserID: "B", PaidByID: "A",
				Amount: decimal.NewFromInt(25), Status: model.SettlementRejected, CreatedAt: now},
		},
	}

	rows := Rows(nil, ledger, members, "g1", "B")
	if rows[0].State != RowHandleRejected {
		t.Errorf("state = %v, want HandleRejected over YouReceived", rows[0].State)
	}
}

func TestRows_Idempotent(t *testing.T) {
	// Deriving twice from the same inputs yields identical states.
	now := time.Now()
	members := []model.Member{{ID: "me"}, {ID: "A"}}
	balances := []model.MemberBalance{
		{
			Member: model.Member{ID: "A"},
			OwedBy: map[string]decimal.Decimal{"me": decimal.NewFromInt(80)},
		},
	}
	ledger := model.SettlementLedger{
		Pending: []model.Settlement{
			{ID: "p1", GroupID: "g1", UserID: "me", PaidByID: "A",
				Amount: decimal.NewFromInt(80), Status: model.SettlementPending, CreatedAt: now},
		},
	}

	first := Rows(balances, ledger, members, "g1", "me")
	second := Rows(balances, ledger, members, "g1", "me")

	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].State != second[i].State || !first[i].Display.Equal(second[i].Display) {
			t.Errorf("row %d differs between derivations: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].State != RowSettleUp {
		t.Errorf("state = %v, want SettleUp (owes with pending)", first[0].State)
	}
}
