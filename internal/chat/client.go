package chat

import (
	"time"

	"github.com/google/uuid"
)

const eventBuffer = 32

// Client is a connected participant.
type Client struct {
	ID      string
	Nick    string
	Account string
	Events  chan Event

	rooms      map[string]struct{}
	lastActive time.Time
}

func newClient(nick, account string, now time.Time) *Client {
	return &Client{
		ID:         uuid.NewString(),
		Nick:       nick,
		Account:    account,
		Events:     make(chan Event, eventBuffer),
		rooms:      make(map[string]struct{}),
		lastActive: now,
	}
}

// deliver drops the event if the client is not keeping up.
func (c *Client) deliver(ev Event) {
	select {
	case c.Events <- ev:
	default:
	}
}
