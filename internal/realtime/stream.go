// Package realtime maintains the websocket connection over which the backend
// pushes group updates. Every received event is a cue to re-fetch; the event
// payload itself is never treated as authoritative state.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types pushed by the server. Each carries the group it concerns.
const (
	EventTransactionUpdate  = "transactionUpdate"
	EventTransactionDeleted = "transactionDeleted"
	EventSettlementUpdate   = "settlementUpdate"
	EventBalanceUpdate      = "balanceUpdate"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 5 * time.Second
	eventBuffer      = 32
)

// Event is one server push.
type Event struct {
	Type    string
	GroupID string
	Payload json.RawMessage
}

// envelope is the wire shape of both directions.
type envelope struct {
	Event   string          `json:"event"`
	GroupID string          `json:"groupId"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Stream is an open event connection. Events are delivered on a buffered
// channel; a slow consumer sheds events rather than blocking the read loop,
// which is safe because consumers re-fetch full state on every event anyway.
type Stream struct {
	conn   *websocket.Conn
	events chan Event

	mu     sync.Mutex
	closed bool
	err    error
}

// Dial connects to the event endpoint and starts the read loop.
func Dial(ctx context.Context, socketURL, token string) (*Stream, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := dialer.DialContext(ctx, socketURL, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	s := &Stream{
		conn:   conn,
		events: make(chan Event, eventBuffer),
	}
	go s.readLoop()
	return s, nil
}

// Events returns the channel of server pushes. It is closed when the
// connection drops or Close is called.
func (s *Stream) Events() <-chan Event { return s.events }

// Err returns the error that terminated the read loop, if any.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// JoinGroup subscribes to a group's event room.
func (s *Stream) JoinGroup(groupID string) error {
	return s.send(envelope{Event: "joinGroup", GroupID: groupID})
}

// LeaveGroup unsubscribes from a group's event room.
func (s *Stream) LeaveGroup(groupID string) error {
	return s.send(envelope{Event: "leaveGroup", GroupID: groupID})
}

func (s *Stream) send(env envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("realtime: stream closed")
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(env)
}

func (s *Stream) readLoop() {
	defer close(s.events)
	for {
		var env envelope
		if err := s.conn.ReadJSON(&env); err != nil {
			s.mu.Lock()
			if !s.closed {
				s.err = err
			}
			s.mu.Unlock()
			return
		}

		ev := Event{Type: env.Event, GroupID: env.GroupID, Payload: env.Data}
		select {
		case s.events <- ev:
		default:
		}
	}
}

// Close tears the connection down. Safe to call more than once.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.mu.Unlock()

	return s.conn.Close()
}
