package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// testServer upgrades one connection, echoes received envelopes onto recv,
// and pushes anything sent on push.
func testServer(t *testing.T, recv chan envelope, push chan envelope) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		go func() {
			for env := range push {
				if err := conn.WriteJSON(env); err != nil {
					return
				}
			}
		}()

		for {
			var env envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			recv <- env
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestStream_JoinLeaveAndReceive(t *testing.T) {
	recv := make(chan envelope, 4)
	push := make(chan envelope, 4)
	srv := testServer(t, recv, push)
	defer srv.Close()

	s, err := Dial(context.Background(), wsURL(srv), "tok")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer s.Close()

	if err := s.JoinGroup("g1"); err != nil {
		t.Fatalf("join: %v", err)
	}
	select {
	case env := <-recv:
		if env.Event != "joinGroup" || env.GroupID != "g1" {
			t.Errorf("server saw %+v, want joinGroup g1", env)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never received joinGroup")
	}

	push <- envelope{Event: EventBalanceUpdate, GroupID: "g1", Data: json.RawMessage(`{"reason":"expense"}`)}
	select {
	case ev := <-s.Events():
		if ev.Type != EventBalanceUpdate || ev.GroupID != "g1" {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client never received balanceUpdate")
	}

	if err := s.LeaveGroup("g1"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	select {
	case env := <-recv:
		if env.Event != "leaveGroup" {
			t.Errorf("server saw %+v, want leaveGroup", env)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never received leaveGroup")
	}
}

func TestStream_CloseEndsEvents(t *testing.T) {
	recv := make(chan envelope, 1)
	push := make(chan envelope)
	srv := testServer(t, recv, push)
	defer srv.Close()

	s, err := Dial(context.Background(), wsURL(srv), "")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Double close is a no-op.
	if err := s.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	select {
	case _, ok := <-s.Events():
		if ok {
			t.Error("received event after close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after Close")
	}

	if err := s.JoinGroup("g1"); err == nil {
		t.Error("join on closed stream did not error")
	}
}
