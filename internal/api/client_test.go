package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFetchGroupBalances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/splits/get-group-balances" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("groupId") != "g1" {
			t.Errorf("groupId = %s", r.URL.Query().Get("groupId"))
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true,"balances":{"members":[
			{"member":{"_id":"A","name":"Asha"},"owedBy":{"me":50.25},"owesTo":{}}
		]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	balances, err := c.FetchGroupBalances(context.Background(), "g1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("got %d balance rows, want 1", len(balances))
	}
	if !balances[0].OwedBy["me"].Equal(decimal.NewFromFloat(50.25)) {
		t.Errorf("owedBy[me] = %s, want 50.25", balances[0].OwedBy["me"])
	}
}

func TestFetchSettlementStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/splits/settlement-status/g1/me" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"settlementStatus":{
			"pendingSettlements":[{"_id":"p1","group":"g1","user":"me","paidBy":"A","amount":80,"status":"pending"}],
			"paidSettlements":[],
			"successSettlements":[]
		}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	ledger, err := c.FetchSettlementStatus(context.Background(), "g1", "me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ledger.Pending) != 1 || ledger.Pending[0].ID != "p1" {
		t.Fatalf("pending = %+v, want [p1]", ledger.Pending)
	}
	if len(ledger.Paid) != 0 {
		t.Errorf("paid = %+v, want empty", ledger.Paid)
	}
}

func TestConfirmSettlement_SendsIdempotencyKey(t *testing.T) {
	var body map[string]any
	var idemKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		idemKey = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	if err := c.ConfirmSettlement(context.Background(), "g1", "A", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idemKey == "" {
		t.Error("missing Idempotency-Key header on write")
	}
	if body["confirmed"] != true || body["groupId"] != "g1" || body["userId"] != "A" {
		t.Errorf("body = %+v", body)
	}
}

func TestDo_NoToken(t *testing.T) {
	c := NewClient("http://unused.invalid", "")
	_, err := c.FetchGroups(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
}

func TestDo_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "stale")
	_, err := c.FetchGroups(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestDo_BusinessFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"no paid settlements"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	err := c.ConfirmSettlement(context.Background(), "g1", "A", true)
	if err == nil {
		t.Fatal("expected error for success=false envelope")
	}
}

func TestLogin_InstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"token":"fresh","user":{"_id":"me","name":"Mira"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	token, user, err := c.Login(context.Background(), "9999999999", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "fresh" || user.ID != "me" {
		t.Errorf("token=%q user=%+v", token, user)
	}
	if !c.HasToken() {
		t.Error("token not installed on client after login")
	}
}
