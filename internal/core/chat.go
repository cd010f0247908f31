//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat.go -package=mocks

package core

import (
	"context"
	"time"
)

// Chat is the chat network as seen by the core.
// Send, SendPrivate and the voice/moderation calls are fire-and-forget;
// the core never calls them while holding a room lock.
type Chat interface {
	// Send posts a message to a room.
	Send(room, text string)
	// SendPrivate delivers a message to one participant.
	SendPrivate(user, text string)

	// Voice grants speaking privilege in a room.
	Voice(room, user string)
	// Devoice revokes speaking privilege in a room.
	Devoice(room, user string)
	// SetModerated restricts (true) or opens (false) speaking in a room.
	SetModerated(room string, moderated bool)

	// InRoom reports whether user is currently present in room.
	InRoom(room, user string) bool
	// Online reports whether user is currently reachable.
	Online(ctx context.Context, user string) bool
	// IdleTime refreshes and returns how long user has been inactive.
	IdleTime(ctx context.Context, user string) (time.Duration, error)
	// Account returns the authenticated account name of user, if any.
	Account(user string) (string, bool)
}

// Subscribers lists participants that asked to be invited to new games.
type Subscribers interface {
	Subscribers(ctx context.Context) ([]string, error)
}

// RoomMode is the broadcast restriction of a room.
type RoomMode string

const (
	// RoomModeSilent restricts speaking to voiced participants.
	RoomModeSilent RoomMode = "silent"
	// RoomModeVocal lets everybody speak.
	RoomModeVocal RoomMode = "vocal"
)

// ParseRoomMode validates a mode name.
func ParseRoomMode(s string) (RoomMode, error) {
	switch RoomMode(s) {
	case RoomModeSilent, RoomModeVocal:
		return RoomMode(s), nil
	default:
		return "", ErrBadRequest
	}
}

// outbox collects chat side effects while a room lock is held.
type outbox []func(Chat)

func (o *outbox) send(room, text string) {
	*o = append(*o, func(c Chat) { c.Send(room, text) })
}

func (o *outbox) private(user, text string) {
	*o = append(*o, func(c Chat) { c.SendPrivate(user, text) })
}

func (o *outbox) voice(room, user string) {
	*o = append(*o, func(c Chat) { c.Voice(room, user) })
}

func (o *outbox) devoice(room, user string) {
	*o = append(*o, func(c Chat) { c.Devoice(room, user) })
}

func (o *outbox) moderated(room string, on bool) {
	*o = append(*o, func(c Chat) { c.SetModerated(room, on) })
}

func (o outbox) flush(c Chat) {
	for _, fn := range o {
		fn(c)
	}
}
