package chat

import "time"

// EventKind is a notification the network emits to clients.
type EventKind int

const (
	// EventRoomMessage is a message posted to a room.
	EventRoomMessage EventKind = iota
	// EventNotice is a passive private message.
	EventNotice
	// EventPrivateMessage is a direct private message.
	EventPrivateMessage
	// EventUserJoined notifies room members about a user entering.
	EventUserJoined
	// EventUserLeft notifies room members about a user leaving.
	EventUserLeft
	// EventMode announces a voice or moderation change.
	EventMode
	// EventError reports a failed client request.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventRoomMessage:
		return "message"
	case EventNotice:
		return "notice"
	case EventPrivateMessage:
		return "privmsg"
	case EventUserJoined:
		return "user_joined"
	case EventUserLeft:
		return "user_left"
	case EventMode:
		return "mode"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is sent to clients to describe what happened on the network.
type Event struct {
	Kind EventKind
	Room string
	From string
	// User is the subject of join, part and mode events.
	User string
	Text string
	// Mode is one of +v, -v, +m, -m.
	Mode string
	Code string
	At   time.Time
}
