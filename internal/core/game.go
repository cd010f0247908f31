//go:generate go run go.uber.org/mock/mockgen -source=game.go -destination=../mocks/mock_game.go -package=mocks

package core

import "context"

// Game is a started session supplied by the rules implementation.
// The core never constructs one; it only receives it from Rules.Start.
type Game interface {
	// Players returns the current players.
	Players() []string
	// ReplacePlayer substitutes old with replacement. Returning false
	// refuses the substitution and must leave the game untouched.
	ReplacePlayer(old, replacement string) bool
	// StatusText renders the game state for display.
	StatusText() string
}

// StartRequest carries everything a rules implementation needs to build a Game.
type StartRequest struct {
	Room      string
	Requester string
	Players   []string
	// Settings holds the per-player data collected in the waiting room.
	Settings map[string]map[string]any
	// Args is the free-form text following the start command.
	Args string
}

// Rules is the extension point describing a game type.
type Rules interface {
	MinPlayers() int
	MaxPlayers() int
	DisplayName() string

	// Start builds a Game from the waiting room roster.
	// Returning a nil Game and nil error declines the start. Members missing
	// from the returned Game's Players are released from the session.
	Start(ctx context.Context, req StartRequest) (Game, error)

	// OnReset is invoked by a moderator reset before the game is discarded.
	OnReset(ctx context.Context, room string, game Game)

	// OnReplace is invoked after a successful in-game replacement.
	OnReplace(ctx context.Context, room string, game Game, old, replacement string)
}
