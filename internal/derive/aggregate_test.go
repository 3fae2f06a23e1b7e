package derive

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financeflow/finflow/internal/model"
)

func paidSettlement(id, group, user, paidBy string, amount int64, at time.Time) model.Settlement {
	return model.Settlement{
		ID:        id,
		GroupID:   group,
		UserID:    user,
		PaidByID:  paidBy,
		Amount:    decimal.NewFromInt(amount),
		Status:    model.SettlementPaid,
		CreatedAt: at,
	}
}

func TestNetPaidSettlements_BothDirections(t *testing.T) {
	// A owes B 100, marked paid; B owes A 40, marked paid.
	// From B's side: net incoming = 100 - 40 = 60.
	now := time.Now()
	paid := []model.Settlement{
		paidSettlement("s1", "g1", "A", "B", 100, now),
		paidSettlement("s2", "g1", "B", "A", 40, now.Add(time.Minute)),
	}

	fromB := NetPaidSettlements(paid, "g1", "B", "A")
	if !fromB.Net.Equal(decimal.NewFromInt(60)) {
		t.Errorf("net for B = %s, want 60", fromB.Net)
	}
	if fromB.LatestIncoming == nil || fromB.LatestIncoming.ID != "s1" {
		t.Errorf("latest incoming for B = %+v, want s1", fromB.LatestIncoming)
	}

	fromA := NetPaidSettlements(paid, "g1", "A", "B")
	if !fromA.Net.Equal(decimal.NewFromInt(-60)) {
		t.Errorf("net for A = %s, want -60", fromA.Net)
	}
}

func TestNetPaidSettlements_FiltersGroupAndStatus(t *testing.T) {
	now := time.Now()
	paid := []model.Settlement{
		paidSettlement("s1", "g1", "A", "B", 100, now),
		paidSettlement("s2", "g2", "A", "B", 500, now), // other group
		{ID: "s3", GroupID: "g1", UserID: "A", PaidByID: "B",
			Amount: decimal.NewFromInt(75), Status: model.SettlementPending, CreatedAt: now},
	}

	pn := NetPaidSettlements(paid, "g1", "B", "A")
	if !pn.Net.Equal(decimal.NewFromInt(100)) {
		t.Errorf("net = %s, want 100 (other-group and pending records excluded)", pn.Net)
	}
}

func TestNetPaidSettlements_ZeroNet(t *testing.T) {
	now := time.Now()
	paid := []model.Settlement{
		paidSettlement("s1", "g1", "A", "B", 50, now),
		paidSettlement("s2", "g1", "B", "A", 50, now),
	}

	pn := NetPaidSettlements(paid, "g1", "B", "A")
	if !pn.Net.IsZero() {
		t.Errorf("net = %s, want 0", pn.Net)
	}
}

func TestNotices_OnlyPositiveNets(t *testing.T) {
	now := time.Now()
	members := []model.Member{
		{ID: "me", Name: "Me"},
		{ID: "A", Name: "Asha"},
		{ID: "B", Name: "Bharat"},
		{ID: "C", Name: "Chitra"},
	}
	paid := []model.Settlement{
		paidSettlement("s1", "g1", "A", "me", 100, now), // A paid me
		paidSettlement("s2", "g1", "me", "B", 40, now),  // I paid B
		paidSettlement("s3", "g1", "C", "me", 20, now),  // C paid me
		paidSettlement("s4", "g1", "me", "C", 20, now),  // I paid C back the same
	}

	notices := Notices(paid, members, "g1", "me")
	if len(notices) != 1 {
		t.Fatalf("got %d notices, want 1 (only A nets positive)", len(notices))
	}
	if notices[0].Counterparty.ID != "A" {
		t.Errorf("notice counterparty = %s, want A", notices[0].Counterparty.ID)
	}
	if !notices[0].Total.Equal(decimal.NewFromInt(100)) {
		t.Errorf("notice total = %s, want 100", notices[0].Total)
	}
	if len(notices[0].Settlements) != 1 || notices[0].Settlements[0].ID != "s1" {
		t.Errorf("notice settlements = %+v, want [s1]", notices[0].Settlements)
	}
}

func TestNotices_SortedByTotalDescending(t *testing.T) {
	now := time.Now()
	members := []model.Member{{ID: "me"}, {ID: "A"}, {ID: "B"}}
	paid := []model.Settlement{
		paidSettlement("s1", "g1", "A", "me", 10, now),
		paidSettlement("s2", "g1", "B", "me", 90, now),
	}

	notices := Notices(paid, members, "g1", "me")
	if len(notices) != 2 {
		t.Fatalf("got %d notices, want 2", len(notices))
	}
	if notices[0].Counterparty.ID != "B" || notices[1].Counterparty.ID != "A" {
		t.Errorf("order = [%s %s], want [B A]", notices[0].Counterparty.ID, notices[1].Counterparty.ID)
	}
}
