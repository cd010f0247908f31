package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/vovakirdan/wirechat-gamebot/internal/config"
	"github.com/vovakirdan/wirechat-gamebot/internal/proto"
)

func isMessage(text string) func(inbound) bool {
	return func(out inbound) bool {
		if out.Type != proto.OutboundTypeEvent || out.Event != proto.EventMessage {
			return false
		}
		var data proto.EventMessageData
		if err := json.Unmarshal(out.Data, &data); err != nil {
			return false
		}
		return data.Text == text
	}
}

func isError(code string) func(inbound) bool {
	return func(out inbound) bool {
		return out.Type == proto.OutboundTypeError && out.Error != nil && out.Error.Code == code
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestStack(t, nil)

	resp, err := s.ts.Client().Get(s.ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketAndAPIShareServer(t *testing.T) {
	s := newTestStack(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn := s.dialRaw(ctx, t)
	send(ctx, t, conn, proto.InboundTypeJoin, proto.RoomData{Room: testRoom})
	if out := read(ctx, t, conn); !isError(ErrCodeUnauthorized)(out) {
		t.Fatalf("expected unauthorized, got %+v", out)
	}

	for _, path := range []string{"/health", "/api/rooms"} {
		resp, err := s.ts.Client().Get(s.ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != 200 {
			t.Fatalf("GET %s: unexpected status %d", path, resp.StatusCode)
		}
	}

	// the open socket still answers after the API calls
	send(ctx, t, conn, proto.InboundTypeHello, proto.HelloData{Token: s.token(t, "alice", ""), Protocol: proto.ProtocolVersion})
	if out := read(ctx, t, conn); out.Event != proto.EventWelcome {
		t.Fatalf("expected welcome, got %+v", out)
	}
}

func TestWebSocketJoinAndCommands(t *testing.T) {
	s := newTestStack(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	alice := s.dial(ctx, t, "alice", "")
	send(ctx, t, alice, proto.InboundTypeJoin, proto.RoomData{Room: testRoom})
	joined := readUntil(ctx, t, alice, func(out inbound) bool { return out.Event == proto.EventUserJoined })
	var presence proto.EventPresenceData
	if err := json.Unmarshal(joined.Data, &presence); err != nil {
		t.Fatalf("decode presence: %v", err)
	}
	if presence.User != "alice" || presence.Room != testRoom {
		t.Fatalf("unexpected presence: %+v", presence)
	}

	send(ctx, t, alice, proto.InboundTypeCommand, proto.CommandData{Name: "join", Room: testRoom})
	out := readUntil(ctx, t, alice, isMessage("alice has joined the game (1/4)"))
	if from := messageText(t, out).User; from != "gamebot" {
		t.Fatalf("expected bot to announce, got %q", from)
	}

	bob := s.dial(ctx, t, "bob", "")
	send(ctx, t, bob, proto.InboundTypeJoin, proto.RoomData{Room: testRoom})
	send(ctx, t, bob, proto.InboundTypeSay, proto.SayData{Room: testRoom, Text: "!join"})

	said := readUntil(ctx, t, alice, isMessage("!join"))
	if from := messageText(t, said).User; from != "bob" {
		t.Fatalf("expected message from bob, got %q", from)
	}
	readUntil(ctx, t, alice, isMessage("bob has joined the game (2/4)"))

	if !s.reg.InSession("bob") {
		t.Fatal("bob should be in the waiting room")
	}

	send(ctx, t, alice, proto.InboundTypeCommand, proto.CommandData{Name: "who", Room: testRoom})
	readUntil(ctx, t, alice, isMessage("a\u200bl\u200bi\u200bc\u200be b\u200bo\u200bb"))
}

func TestWebSocketDisconnectLeavesWaitingRoom(t *testing.T) {
	s := newTestStack(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	alice := s.dial(ctx, t, "alice", "")
	send(ctx, t, alice, proto.InboundTypeJoin, proto.RoomData{Room: testRoom})
	send(ctx, t, alice, proto.InboundTypeCommand, proto.CommandData{Name: "join", Room: testRoom})
	readUntil(ctx, t, alice, isMessage("alice has joined the game (1/4)"))

	alice.Close(websocket.StatusNormalClosure, "bye")

	deadline := time.Now().Add(3 * time.Second)
	for s.reg.InSession("alice") {
		if time.Now().After(deadline) {
			t.Fatal("alice still in session after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWebSocketRequiresHello(t *testing.T) {
	s := newTestStack(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn := s.dialRaw(ctx, t)
	send(ctx, t, conn, proto.InboundTypeJoin, proto.RoomData{Room: testRoom})
	if out := read(ctx, t, conn); !isError(ErrCodeUnauthorized)(out) {
		t.Fatalf("expected unauthorized, got %+v", out)
	}

	send(ctx, t, conn, proto.InboundTypeHello, proto.HelloData{Token: "garbage"})
	if out := read(ctx, t, conn); !isError(ErrCodeUnauthorized)(out) {
		t.Fatalf("expected unauthorized for bad token, got %+v", out)
	}
}

func TestWebSocketNickInUse(t *testing.T) {
	s := newTestStack(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s.dial(ctx, t, "alice", "")

	conn := s.dialRaw(ctx, t)
	send(ctx, t, conn, proto.InboundTypeHello, proto.HelloData{Token: s.token(t, "alice", "")})
	if out := read(ctx, t, conn); !isError(ErrCodeNickInUse)(out) {
		t.Fatalf("expected nick_in_use, got %+v", out)
	}
}

func TestWebSocketErrors(t *testing.T) {
	s := newTestStack(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn := s.dial(ctx, t, "alice", "")

	tests := []struct {
		name string
		typ  string
		data any
		code string
	}{
		{"say outside room", proto.InboundTypeSay, proto.SayData{Room: testRoom, Text: "hi"}, ErrCodeNotInRoom},
		{"join without room", proto.InboundTypeJoin, proto.RoomData{}, "bad_request"},
		{"command without name", proto.InboundTypeCommand, proto.CommandData{}, "bad_request"},
		{"command in foreign room", proto.InboundTypeCommand, proto.CommandData{Name: "who", Room: testRoom}, ErrCodeNotInRoom},
		{"second hello", proto.InboundTypeHello, proto.HelloData{}, ErrCodeAlreadyAuthenticated},
		{"unknown type", "dance", struct{}{}, ErrCodeInvalidMessage},
	}
	for _, tt := range tests {
		send(ctx, t, conn, tt.typ, tt.data)
		if out := read(ctx, t, conn); !isError(tt.code)(out) {
			t.Fatalf("%s: expected %s, got %+v", tt.name, tt.code, out)
		}
	}
}

func TestWebSocketRateLimit(t *testing.T) {
	s := newTestStack(t, func(cfg *config.Config) { cfg.RateLimitPerMinute = 2 })
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn := s.dial(ctx, t, "alice", "")
	part := proto.RoomData{Room: testRoom}

	for _, want := range []string{ErrCodeNotInRoom, ErrCodeNotInRoom, ErrCodeRateLimited} {
		send(ctx, t, conn, proto.InboundTypePart, part)
		if out := read(ctx, t, conn); !isError(want)(out) {
			t.Fatalf("expected %s, got %+v", want, out)
		}
	}

	s.clock.Add(time.Minute)
	send(ctx, t, conn, proto.InboundTypePart, part)
	if out := read(ctx, t, conn); !isError(ErrCodeNotInRoom)(out) {
		t.Fatalf("expected window reset, got %+v", out)
	}
}

func TestCommandFromSay(t *testing.T) {
	req, ok := commandFromSay("alice", testRoom, "!start  noreplace")
	if !ok || req.Name != "start" || req.Args != "noreplace" || req.Room != testRoom {
		t.Fatalf("unexpected request: %+v %v", req, ok)
	}
	for _, text := range []string{"hello", "!", ""} {
		if _, ok := commandFromSay("alice", testRoom, text); ok {
			t.Fatalf("%q should not be a command", text)
		}
	}
}
