package core

// Error codes for domain errors.
const (
	ErrCodeInvalidRoom        = "invalid_room"
	ErrCodeAlreadyInSession   = "already_in_session"
	ErrCodeGameInProgress     = "game_in_progress"
	ErrCodeRoomFull           = "room_full"
	ErrCodeNotEnoughPlayers   = "not_enough_players"
	ErrCodeNotInSession       = "not_in_session"
	ErrCodeNotAuthorized      = "not_authorized"
	ErrCodeTooSoon            = "too_soon"
	ErrCodeReplacementRefused = "replacement_refused"
	ErrCodeNotPresent         = "not_present"
	ErrCodeNoGame             = "no_game"
	ErrCodeBadRequest         = "bad_request"
)

var (
	ErrInvalidRoom        = coreError(ErrCodeInvalidRoom, "not a valid room")
	ErrAlreadyInSession   = coreError(ErrCodeAlreadyInSession, "already in a game")
	ErrGameInProgress     = coreError(ErrCodeGameInProgress, "game has already started")
	ErrRoomFull           = coreError(ErrCodeRoomFull, "game is at max players")
	ErrNotEnoughPlayers   = coreError(ErrCodeNotEnoughPlayers, "not enough players to start")
	ErrNotInSession       = coreError(ErrCodeNotInSession, "not in a game")
	ErrNotAuthorized      = coreError(ErrCodeNotAuthorized, "not authorized")
	ErrTooSoon            = coreError(ErrCodeTooSoon, "an invitation cannot be sent out again so soon")
	ErrReplacementRefused = coreError(ErrCodeReplacementRefused, "the game refused the replacement")
	ErrNotPresent         = coreError(ErrCodeNotPresent, "not present in the room")
	ErrNoGame             = coreError(ErrCodeNoGame, "no game in progress")
	ErrBadRequest         = coreError(ErrCodeBadRequest, "bad request")
)

// CoreError wraps a code and human-readable message.
// Room is set when the error refers to a specific room, e.g. the room a
// participant already occupies.
type CoreError struct {
	Code    string
	Message string
	Room    string
}

func (e *CoreError) Error() string {
	if e.Room != "" {
		return e.Message + " (" + e.Room + ")"
	}
	return e.Message
}

// Is reports whether target carries the same code, so errors.Is works
// against the package sentinels regardless of the attached room.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

func roomError(base *CoreError, room string) *CoreError {
	return &CoreError{Code: base.Code, Message: base.Message, Room: room}
}
