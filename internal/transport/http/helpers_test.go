package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-gamebot/internal/auth"
	"github.com/vovakirdan/wirechat-gamebot/internal/bot"
	"github.com/vovakirdan/wirechat-gamebot/internal/chat"
	"github.com/vovakirdan/wirechat-gamebot/internal/config"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
	"github.com/vovakirdan/wirechat-gamebot/internal/games/roster"
	"github.com/vovakirdan/wirechat-gamebot/internal/notify"
	"github.com/vovakirdan/wirechat-gamebot/internal/proto"
	"github.com/vovakirdan/wirechat-gamebot/internal/store"
	"github.com/vovakirdan/wirechat-gamebot/internal/store/file"
)

const (
	testRoom     = "#games"
	testSecret   = "test-secret"
	testAccount  = "boss"
	testPassword = "password123"
)

type testStack struct {
	ts    *httptest.Server
	auth  *auth.Service
	net   *chat.Network
	reg   *core.Registry
	clock *clock.Mock
}

func newTestStack(t *testing.T, mutate func(*config.Config)) *testStack {
	t.Helper()

	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.Rooms = []string{testRoom}
	if mutate != nil {
		mutate(&cfg)
	}

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	authService := auth.NewService(map[string]string{testAccount: hash}, &auth.JWTConfig{
		Secret:   []byte(testSecret),
		Issuer:   "test",
		Audience: "test",
		TTL:      time.Hour,
	})

	fs, err := file.New(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	updater := store.NewUpdater(fs)
	prefs := notify.NewPreferences(updater, nil)
	subs := notify.NewSubscriptions(updater)

	disabledLogger := zerolog.Nop()
	net := chat.NewNetwork(cfg.BotNick, prefs, nil, &disabledLogger)
	rules := roster.New("Roster", 2, 4, net, nil, &disabledLogger)
	reg := core.NewRegistry(rules, net, core.Options{Rooms: cfg.Rooms, Subscribers: subs}, &disabledLogger)
	b := bot.New(bot.Deps{
		Registry:      reg,
		Moderation:    core.NewModeration(reg, []string{testAccount}),
		Network:       net,
		Preferences:   prefs,
		Subscriptions: subs,
	}, &disabledLogger)
	net.AddListener(b)

	clk := clock.NewMock()
	server := NewServer(Deps{
		Network:  net,
		Bot:      b,
		Auth:     authService,
		Registry: reg,
		Clock:    clk,
	}, cfg, &disabledLogger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return &testStack{ts: ts, auth: authService, net: net, reg: reg, clock: clk}
}

func (s *testStack) token(t *testing.T, nick, account string) string {
	t.Helper()
	token, err := s.auth.IssueToken(nick, account)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// dial opens a WebSocket and completes the hello handshake.
func (s *testStack) dial(ctx context.Context, t *testing.T, nick, account string) *websocket.Conn {
	t.Helper()
	conn := s.dialRaw(ctx, t)
	send(ctx, t, conn, proto.InboundTypeHello, proto.HelloData{Token: s.token(t, nick, account), Protocol: proto.ProtocolVersion})

	out := read(ctx, t, conn)
	if out.Type != proto.OutboundTypeEvent || out.Event != proto.EventWelcome {
		t.Fatalf("expected welcome, got %+v", out)
	}
	return conn
}

func (s *testStack) dialRaw(ctx context.Context, t *testing.T) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(s.ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func send(ctx context.Context, t *testing.T, conn *websocket.Conn, typ string, data any) {
	t.Helper()
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		t.Fatalf("send %s: %v", typ, err)
	}
}

// inbound mirrors proto.Outbound with raw data for decoding in tests.
type inbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func read(ctx context.Context, t *testing.T, conn *websocket.Conn) inbound {
	t.Helper()
	var out inbound
	if err := wsjson.Read(ctx, conn, &out); err != nil {
		t.Fatalf("read outbound: %v", err)
	}
	return out
}

// readUntil skips frames until one matches.
func readUntil(ctx context.Context, t *testing.T, conn *websocket.Conn, match func(inbound) bool) inbound {
	t.Helper()
	for {
		out := read(ctx, t, conn)
		if match(out) {
			return out
		}
	}
}

func messageText(t *testing.T, out inbound) proto.EventMessageData {
	t.Helper()
	var data proto.EventMessageData
	if err := json.Unmarshal(out.Data, &data); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	return data
}
