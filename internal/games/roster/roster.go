// Package roster is a minimal game type: a started game is just the list
// of players. It exercises every hook the session core offers.
package roster

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
)

// Start arguments understood by Rules.Start.
const (
	ArgFail      = "fail"
	ArgNoReplace = "noreplace"
)

// Announcer posts to a room.
type Announcer interface {
	Send(room, text string)
}

// Rules implements core.Rules.
type Rules struct {
	name     string
	min, max int
	announce Announcer
	clock    clock.Clock
	log      *zerolog.Logger
}

var _ core.Rules = (*Rules)(nil)

// New returns rules for a game named name accepting min to max players.
// A nil clk uses the wall clock.
func New(name string, min, max int, announce Announcer, clk clock.Clock, logger *zerolog.Logger) *Rules {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Rules{
		name:     name,
		min:      min,
		max:      max,
		announce: announce,
		clock:    clk,
		log:      logger,
	}
}

func (r *Rules) MinPlayers() int { return r.min }
func (r *Rules) MaxPlayers() int { return r.max }
func (r *Rules) DisplayName() string { return r.name }

// Start declines when args contain "fail". "noreplace" builds a game that
// refuses substitutions.
func (r *Rules) Start(_ context.Context, req core.StartRequest) (core.Game, error) {
	args := strings.Fields(strings.ToLower(req.Args))
	if lo.Contains(args, ArgFail) {
		return nil, nil
	}
	teams := make(map[string]string, len(req.Players))
	for _, p := range req.Players {
		if team, ok := req.Settings[p]["team"].(string); ok && team != "" {
			teams[p] = team
		}
	}
	return &Game{
		name:      r.name,
		players:   append([]string(nil), req.Players...),
		teams:     teams,
		noReplace: lo.Contains(args, ArgNoReplace),
		started:   r.clock.Now(),
		clock:     r.clock,
	}, nil
}

// OnReset announces the abandoned game.
func (r *Rules) OnReset(_ context.Context, room string, game core.Game) {
	r.log.Info().Str("room", room).Strs("players", game.Players()).Msg("roster game abandoned")
	if r.announce != nil {
		r.announce.Send(room, fmt.Sprintf("The %s game with %s was abandoned.", r.name, strings.Join(game.Players(), ", ")))
	}
}

// OnReplace greets the substitute.
func (r *Rules) OnReplace(_ context.Context, room string, _ core.Game, old, replacement string) {
	if r.announce != nil {
		r.announce.Send(room, fmt.Sprintf("%s takes over the seat of %s.", replacement, old))
	}
}

// Game is a started roster game.
type Game struct {
	name      string
	noReplace bool
	started   time.Time
	clock     clock.Clock

	mu      sync.Mutex
	players []string
	teams   map[string]string
}

var _ core.Game = (*Game)(nil)

func (g *Game) Players() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.players...)
}

// ReplacePlayer refuses when the game was started with "noreplace".
func (g *Game) ReplacePlayer(old, replacement string) bool {
	if g.noReplace {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	idx := lo.IndexOf(g.players, old)
	if idx < 0 || lo.Contains(g.players, replacement) {
		return false
	}
	g.players[idx] = replacement
	if team, ok := g.teams[old]; ok {
		g.teams[replacement] = team
		delete(g.teams, old)
	}
	return true
}

func (g *Game) StatusText() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := lo.Map(g.players, func(p string, _ int) string {
		if team, ok := g.teams[p]; ok {
			return p + " (" + team + ")"
		}
		return p
	})
	elapsed := g.clock.Since(g.started).Truncate(time.Second)
	return fmt.Sprintf("%s in progress for %s: %s", g.name, elapsed, strings.Join(names, ", "))
}
