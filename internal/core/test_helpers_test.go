package core_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
)

// fakeChat records every side effect the core produces.
type fakeChat struct {
	mu        sync.Mutex
	present   map[string]map[string]bool
	idle      map[string]time.Duration
	idleErr   map[string]error
	offline   map[string]bool
	accounts  map[string]string
	voiced    map[string]map[string]bool
	moderated map[string]bool
	sent      []string
	private   []string
	idleCalls int
}

func newFakeChat() *fakeChat {
	return &fakeChat{
		present:   make(map[string]map[string]bool),
		idle:      make(map[string]time.Duration),
		idleErr:   make(map[string]error),
		offline:   make(map[string]bool),
		accounts:  make(map[string]string),
		voiced:    make(map[string]map[string]bool),
		moderated: make(map[string]bool),
	}
}

func (f *fakeChat) enter(room string, users ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.present[room] == nil {
		f.present[room] = make(map[string]bool)
	}
	for _, u := range users {
		f.present[room][u] = true
	}
}

func (f *fakeChat) setIdle(user string, d time.Duration) {
	f.mu.Lock()
	f.idle[user] = d
	f.mu.Unlock()
}

func (f *fakeChat) Send(room, text string) {
	f.mu.Lock()
	f.sent = append(f.sent, room+": "+text)
	f.mu.Unlock()
}

func (f *fakeChat) SendPrivate(user, text string) {
	f.mu.Lock()
	f.private = append(f.private, user+": "+text)
	f.mu.Unlock()
}

func (f *fakeChat) Voice(room, user string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.voiced[room] == nil {
		f.voiced[room] = make(map[string]bool)
	}
	f.voiced[room][user] = true
}

func (f *fakeChat) Devoice(room, user string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.voiced[room], user)
}

func (f *fakeChat) SetModerated(room string, moderated bool) {
	f.mu.Lock()
	f.moderated[room] = moderated
	f.mu.Unlock()
}

func (f *fakeChat) InRoom(room, user string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.present[room][user]
}

func (f *fakeChat) Online(_ context.Context, user string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.offline[user]
}

func (f *fakeChat) IdleTime(_ context.Context, user string) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idleCalls++
	if err := f.idleErr[user]; err != nil {
		return 0, err
	}
	return f.idle[user], nil
}

func (f *fakeChat) Account(user string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acct, ok := f.accounts[user]
	return acct, ok
}

func (f *fakeChat) isVoiced(room, user string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voiced[room][user]
}

func (f *fakeChat) roomMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeChat) privateMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.private...)
}

// fakeGame is a minimal started game.
type fakeGame struct {
	mu      sync.Mutex
	players []string
	refuse  bool
}

func (g *fakeGame) Players() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.players...)
}

func (g *fakeGame) ReplacePlayer(old, replacement string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.refuse {
		return false
	}
	idx := lo.IndexOf(g.players, old)
	if idx < 0 {
		return false
	}
	g.players[idx] = replacement
	return true
}

func (g *fakeGame) StatusText() string {
	return fmt.Sprintf("players: %v", g.Players())
}

// fakeRules builds fakeGames unless decline or startErr is set.
// A positive seats limits the game to the first seats members.
type fakeRules struct {
	min, max int
	seats    int
	decline  bool
	startErr error

	mu       sync.Mutex
	requests []core.StartRequest
	resets   []string
	replaces []string
}

func (r *fakeRules) MinPlayers() int { return r.min }
func (r *fakeRules) MaxPlayers() int { return r.max }
func (r *fakeRules) DisplayName() string { return "Fake" }

func (r *fakeRules) Start(_ context.Context, req core.StartRequest) (core.Game, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	if r.startErr != nil {
		return nil, r.startErr
	}
	if r.decline {
		return nil, nil
	}
	players := req.Players
	if r.seats > 0 && r.seats < len(players) {
		players = players[:r.seats]
	}
	return &fakeGame{players: append([]string(nil), players...)}, nil
}

func (r *fakeRules) OnReset(_ context.Context, room string, _ core.Game) {
	r.mu.Lock()
	r.resets = append(r.resets, room)
	r.mu.Unlock()
}

func (r *fakeRules) OnReplace(_ context.Context, room string, _ core.Game, old, replacement string) {
	r.mu.Lock()
	r.replaces = append(r.replaces, fmt.Sprintf("%s:%s->%s", room, old, replacement))
	r.mu.Unlock()
}

var errBoom = errors.New("boom")

const (
	roomA   = "#games"
	roomB   = "#other"
	modNick = "mod"
)

type harness struct {
	reg   *core.Registry
	mod   *core.Moderation
	chat  *fakeChat
	rules *fakeRules
	clock *clock.Mock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	chat := newFakeChat()
	chat.accounts[modNick] = "mod-account"
	rules := &fakeRules{min: 2, max: 3}
	clk := clock.NewMock()
	reg := core.NewRegistry(rules, chat, core.Options{
		Rooms:          []string{roomA, roomB},
		IdleThreshold:  10 * time.Minute,
		IdlePeriod:     time.Minute,
		InviteInterval: 5 * time.Minute,
		Clock:          clk,
	}, nil)
	return &harness{
		reg:   reg,
		mod:   core.NewModeration(reg, []string{"mod-account"}),
		chat:  chat,
		rules: rules,
		clock: clk,
	}
}

// join puts users in room on the chat side and in the waiting room.
func (h *harness) join(t *testing.T, room string, users ...string) {
	t.Helper()
	h.chat.enter(room, users...)
	for _, u := range users {
		if _, err := h.reg.Join(room, u); err != nil {
			t.Fatalf("join %s to %s: %v", u, room, err)
		}
	}
}

func (h *harness) start(t *testing.T, room, requester string) core.Game {
	t.Helper()
	game, err := h.reg.StartGame(context.Background(), core.StartRequest{Room: room, Requester: requester})
	if err != nil {
		t.Fatalf("start %s: %v", room, err)
	}
	if game == nil {
		t.Fatalf("start %s declined", room)
	}
	return game
}
