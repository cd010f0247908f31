package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeHello   = "hello"
	InboundTypeJoin    = "join_room"
	InboundTypePart    = "part_room"
	InboundTypeSay     = "say"
	InboundTypeCommand = "command"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// Event names carried by OutboundTypeEvent envelopes.
const (
	EventWelcome    = "welcome"
	EventMessage    = "message"
	EventNotice     = "notice"
	EventPrivate    = "privmsg"
	EventUserJoined = "user_joined"
	EventUserLeft   = "user_left"
	EventMode       = "mode"
)

// HelloData is sent by the client to introduce itself.
// Token is a JWT issued by /api/login or /api/guest.
type HelloData struct {
	Token    string `json:"token"`
	Protocol int    `json:"protocol,omitempty"`
}

// RoomData names a chat room to join or part.
type RoomData struct {
	Room string `json:"room"`
}

// SayData is a chat message from the client.
type SayData struct {
	Room string `json:"room"`
	Text string `json:"text"`
}

// CommandData is a bot command. Room is empty for private commands.
type CommandData struct {
	Name string `json:"name"`
	Room string `json:"room,omitempty"`
	Args string `json:"args,omitempty"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventWelcomeData confirms the hello handshake.
type EventWelcomeData struct {
	Nick     string `json:"nick"`
	Account  string `json:"account,omitempty"`
	Protocol int    `json:"protocol"`
}

// EventMessageData is a room message, notice or private message.
type EventMessageData struct {
	Room string `json:"room,omitempty"`
	User string `json:"user"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// EventPresenceData notifies that a user joined or left a room.
type EventPresenceData struct {
	Room string `json:"room"`
	User string `json:"user"`
}

// EventModeData announces a voice or moderation change.
type EventModeData struct {
	Room string `json:"room"`
	User string `json:"user,omitempty"`
	Mode string `json:"mode"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
