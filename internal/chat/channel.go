package chat

import (
	"sort"
)

// channel groups clients present in the same room.
type channel struct {
	name      string
	clients   map[*Client]struct{}
	voiced    map[string]struct{}
	moderated bool
}

func newChannel(name string) *channel {
	return &channel{
		name:    name,
		clients: make(map[*Client]struct{}),
		voiced:  make(map[string]struct{}),
	}
}

func (ch *channel) add(c *Client) bool {
	if _, ok := ch.clients[c]; ok {
		return false
	}
	ch.clients[c] = struct{}{}
	return true
}

func (ch *channel) remove(c *Client) bool {
	if _, ok := ch.clients[c]; !ok {
		return false
	}
	delete(ch.clients, c)
	delete(ch.voiced, c.Nick)
	return true
}

func (ch *channel) broadcast(ev Event) {
	for c := range ch.clients {
		c.deliver(ev)
	}
}

func (ch *channel) canSpeak(nick string) bool {
	if !ch.moderated {
		return true
	}
	_, ok := ch.voiced[nick]
	return ok
}

func (ch *channel) nicks() []string {
	out := make([]string, 0, len(ch.clients))
	for c := range ch.clients {
		out = append(out, c.Nick)
	}
	sort.Strings(out)
	return out
}
