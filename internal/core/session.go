package core

import (
	"sync"

	"github.com/google/uuid"
)

// SessionKind tells which occupant a room slot holds.
type SessionKind int

const (
	// SessionWaiting is a forming game accepting joins.
	SessionWaiting SessionKind = iota
	// SessionGame is a started game.
	SessionGame
)

func (k SessionKind) String() string {
	if k == SessionGame {
		return "game"
	}
	return "waiting"
}

// Session is a read-only snapshot of a room slot.
type Session struct {
	Room     string
	Kind     SessionKind
	Members  []string
	Capacity int
	// Game is set when Kind is SessionGame.
	Game   Game
	GameID uuid.UUID
}

// Started reports whether the room holds a game.
func (s Session) Started() bool {
	return s.Kind == SessionGame
}

// roomSlot holds exactly one of waiting or game.
type roomSlot struct {
	mu      sync.Mutex
	name    string
	waiting *WaitingRoom
	game    Game
	gameID  uuid.UUID
	idle    idleState
}

func (s *roomSlot) snapshot() Session {
	if s.game != nil {
		return Session{
			Room:    s.name,
			Kind:    SessionGame,
			Members: s.game.Players(),
			Game:    s.game,
			GameID:  s.gameID,
		}
	}
	return Session{
		Room:     s.name,
		Kind:     SessionWaiting,
		Members:  s.waiting.Members(),
		Capacity: s.waiting.Capacity(),
	}
}
