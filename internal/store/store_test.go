package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/financeflow/finflow/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "finflow.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCredentialsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, _, ok, err := s.Credentials(); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v, want ok=false", ok, err)
	}

	user := model.Member{ID: "me", Name: "Mira", PhoneNumber: "9999999999"}
	if err := s.SaveCredentials("tok-1", user); err != nil {
		t.Fatalf("save: %v", err)
	}

	token, got, ok, err := s.Credentials()
	if err != nil || !ok {
		t.Fatalf("read back: ok=%v err=%v", ok, err)
	}
	if token != "tok-1" || got.Name != "Mira" {
		t.Errorf("got token=%q user=%+v", token, got)
	}

	// Second save replaces, never duplicates.
	if err := s.SaveCredentials("tok-2", user); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	token, _, _, _ = s.Credentials()
	if token != "tok-2" {
		t.Errorf("token after re-save = %q, want tok-2", token)
	}

	if err := s.ClearCredentials(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, _, ok, _ := s.Credentials(); ok {
		t.Error("credentials still present after clear")
	}
}

func TestFlags(t *testing.T) {
	s := openTestStore(t)

	if v, err := s.Flag(FlagGuideCompleted); err != nil || v {
		t.Fatalf("unset flag: v=%v err=%v, want false", v, err)
	}
	if err := s.SetFlag(FlagGuideCompleted, true); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if v, _ := s.Flag(FlagGuideCompleted); !v {
		t.Error("flag not persisted")
	}
}

func TestGroupSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, _, _, ok, err := s.GroupSnapshot("g1"); err != nil || ok {
		t.Fatalf("empty snapshot: ok=%v err=%v", ok, err)
	}

	balances := []model.MemberBalance{
		{
			Member: model.Member{ID: "A", Name: "Asha"},
			OwedBy: map[string]decimal.Decimal{"me": decimal.NewFromInt(50)},
		},
	}
	ledger := model.SettlementLedger{
		Paid: []model.Settlement{
			{ID: "s1", GroupID: "g1", UserID: "A", PaidByID: "me",
				Amount: decimal.NewFromInt(50), Status: model.SettlementPaid},
		},
	}

	if err := s.SaveGroupSnapshot("g1", balances, ledger); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	gotBalances, gotLedger, fetchedAt, ok, err := s.GroupSnapshot("g1")
	if err != nil || !ok {
		t.Fatalf("read snapshot: ok=%v err=%v", ok, err)
	}
	if fetchedAt.IsZero() {
		t.Error("fetchedAt not recorded")
	}
	if len(gotBalances) != 1 || !gotBalances[0].OwedBy["me"].Equal(decimal.NewFromInt(50)) {
		t.Errorf("balances = %+v", gotBalances)
	}
	if len(gotLedger.Paid) != 1 || gotLedger.Paid[0].ID != "s1" {
		t.Errorf("ledger = %+v", gotLedger)
	}
}
