// Package chat is the in-process chat network the bot runs on. It tracks
// connected clients, room presence, voice and moderation, and implements
// core.Chat for the session core.
package chat

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
	"github.com/vovakirdan/wirechat-gamebot/internal/notify"
)

var (
	ErrNickInUse   = errors.New("nick is already in use")
	ErrInvalidNick = errors.New("invalid nick")
	ErrNoSuchUser  = errors.New("no such user")
	ErrNotInRoom   = errors.New("not in room")
	ErrCannotSpeak = errors.New("cannot speak in a moderated room")
)

// DeliveryPolicy chooses how private messages reach a participant.
type DeliveryPolicy interface {
	DeliveryMode(user string) notify.DeliveryMode
}

// Listener observes room presence changes. Callbacks run without network
// locks held.
type Listener interface {
	UserJoined(room, nick string)
	UserParted(room, nick string)
}

// Network is a set of rooms and connected clients.
type Network struct {
	botNick string
	policy  DeliveryPolicy
	clock   clock.Clock
	log     *zerolog.Logger

	mu        sync.RWMutex
	clients   map[string]*Client
	channels  map[string]*channel
	listeners []Listener
}

var _ core.Chat = (*Network)(nil)

// NewNetwork creates an empty network. A nil policy delivers everything as notices.
func NewNetwork(botNick string, policy DeliveryPolicy, clk clock.Clock, logger *zerolog.Logger) *Network {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Network{
		botNick:  botNick,
		policy:   policy,
		clock:    clk,
		log:      logger,
		clients:  make(map[string]*Client),
		channels: make(map[string]*channel),
	}
}

// BotNick returns the nick the bot speaks as.
func (n *Network) BotNick() string {
	return n.botNick
}

// AddListener registers l for presence changes.
func (n *Network) AddListener(l Listener) {
	n.mu.Lock()
	n.listeners = append(n.listeners, l)
	n.mu.Unlock()
}

// Connect registers a client under nick. Account is empty for guests.
func (n *Network) Connect(nick, account string) (*Client, error) {
	if nick == "" || strings.ContainsAny(nick, " \t\r\n") || strings.EqualFold(nick, n.botNick) {
		return nil, ErrInvalidNick
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, taken := n.clients[nick]; taken {
		return nil, ErrNickInUse
	}
	c := newClient(nick, account, n.clock.Now())
	n.clients[nick] = c
	n.log.Debug().Str("client_id", c.ID).Str("user", nick).Bool("authed", account != "").Msg("client connected")
	return c, nil
}

// Disconnect parts c from every room and closes its event channel.
func (n *Network) Disconnect(c *Client) {
	n.mu.Lock()
	if n.clients[c.Nick] != c {
		n.mu.Unlock()
		return
	}
	rooms := n.partAllLocked(c)
	delete(n.clients, c.Nick)
	close(c.Events)
	listeners := n.listeners
	n.mu.Unlock()

	for _, room := range rooms {
		for _, l := range listeners {
			l.UserParted(room, c.Nick)
		}
	}
	n.log.Debug().Str("client_id", c.ID).Str("user", c.Nick).Msg("client disconnected")
}

func (n *Network) partAllLocked(c *Client) []string {
	rooms := make([]string, 0, len(c.rooms))
	for room := range c.rooms {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	for _, room := range rooms {
		n.partLocked(c, room)
	}
	return rooms
}

// JoinRoom enters c into room, creating it on first use.
func (n *Network) JoinRoom(c *Client, room string) error {
	if room == "" {
		return core.ErrBadRequest
	}
	n.mu.Lock()
	if n.clients[c.Nick] != c {
		n.mu.Unlock()
		return ErrNoSuchUser
	}
	ch, ok := n.channels[room]
	if !ok {
		ch = newChannel(room)
		n.channels[room] = ch
	}
	added := ch.add(c)
	if added {
		c.rooms[room] = struct{}{}
		c.lastActive = n.clock.Now()
		ch.broadcast(Event{Kind: EventUserJoined, Room: room, User: c.Nick, At: n.clock.Now()})
	}
	listeners := n.listeners
	n.mu.Unlock()

	if added {
		for _, l := range listeners {
			l.UserJoined(room, c.Nick)
		}
	}
	return nil
}

// PartRoom removes c from room.
func (n *Network) PartRoom(c *Client, room string) error {
	n.mu.Lock()
	if _, ok := c.rooms[room]; !ok {
		n.mu.Unlock()
		return ErrNotInRoom
	}
	n.partLocked(c, room)
	listeners := n.listeners
	n.mu.Unlock()

	for _, l := range listeners {
		l.UserParted(room, c.Nick)
	}
	return nil
}

func (n *Network) partLocked(c *Client, room string) {
	delete(c.rooms, room)
	ch, ok := n.channels[room]
	if !ok || !ch.remove(c) {
		return
	}
	// the leaving client sees its own part
	c.deliver(Event{Kind: EventUserLeft, Room: room, User: c.Nick, At: n.clock.Now()})
	ch.broadcast(Event{Kind: EventUserLeft, Room: room, User: c.Nick, At: n.clock.Now()})
}

// Say posts text from c to room.
func (n *Network) Say(c *Client, room, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch, ok := n.channels[room]
	if !ok {
		return ErrNotInRoom
	}
	if _, member := ch.clients[c]; !member {
		return ErrNotInRoom
	}
	c.lastActive = n.clock.Now()
	if !ch.canSpeak(c.Nick) {
		return ErrCannotSpeak
	}
	ch.broadcast(Event{Kind: EventRoomMessage, Room: room, From: c.Nick, Text: text, At: n.clock.Now()})
	return nil
}

// Touch records activity for nick.
func (n *Network) Touch(nick string) {
	n.mu.Lock()
	if c, ok := n.clients[nick]; ok {
		c.lastActive = n.clock.Now()
	}
	n.mu.Unlock()
}

// Members lists the nicks present in room, sorted.
func (n *Network) Members(room string) []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ch, ok := n.channels[room]
	if !ok {
		return nil
	}
	return ch.nicks()
}

// Voiced reports whether nick holds voice in room.
func (n *Network) Voiced(room, nick string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ch, ok := n.channels[room]
	if !ok {
		return false
	}
	_, voiced := ch.voiced[nick]
	return voiced
}

// Moderated reports whether room restricts speaking to voiced users.
func (n *Network) Moderated(room string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ch, ok := n.channels[room]
	return ok && ch.moderated
}

// Send posts text to room as the bot.
func (n *Network) Send(room, text string) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	ch, ok := n.channels[room]
	if !ok {
		n.log.Debug().Str("room", room).Msg("send to empty room dropped")
		return
	}
	ch.broadcast(Event{Kind: EventRoomMessage, Room: room, From: n.botNick, Text: text, At: n.clock.Now()})
}

// SendPrivate delivers text to user using the delivery policy.
func (n *Network) SendPrivate(user, text string) {
	kind := EventNotice
	if n.policy != nil && n.policy.DeliveryMode(user) == notify.DeliveryDirect {
		kind = EventPrivateMessage
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, ok := n.clients[user]
	if !ok {
		return
	}
	c.deliver(Event{Kind: kind, From: n.botNick, User: user, Text: text, At: n.clock.Now()})
}

// Voice grants user speaking privilege in room.
func (n *Network) Voice(room, user string) {
	n.setVoice(room, user, true)
}

// Devoice revokes user's speaking privilege in room.
func (n *Network) Devoice(room, user string) {
	n.setVoice(room, user, false)
}

func (n *Network) setVoice(room, user string, on bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch, ok := n.channels[room]
	if !ok {
		return
	}
	_, had := ch.voiced[user]
	if had == on {
		return
	}
	mode := "-v"
	if on {
		c, present := n.clients[user]
		if !present {
			return
		}
		if _, member := ch.clients[c]; !member {
			return
		}
		ch.voiced[user] = struct{}{}
		mode = "+v"
	} else {
		delete(ch.voiced, user)
	}
	ch.broadcast(Event{Kind: EventMode, Room: room, From: n.botNick, User: user, Mode: mode, At: n.clock.Now()})
}

// SetModerated toggles room's broadcast restriction.
func (n *Network) SetModerated(room string, moderated bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch, ok := n.channels[room]
	if !ok {
		ch = newChannel(room)
		n.channels[room] = ch
	}
	if ch.moderated == moderated {
		return
	}
	ch.moderated = moderated
	mode := "-m"
	if moderated {
		mode = "+m"
	}
	ch.broadcast(Event{Kind: EventMode, Room: room, From: n.botNick, Mode: mode, At: n.clock.Now()})
}

// InRoom reports whether user is present in room.
func (n *Network) InRoom(room, user string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, ok := n.clients[user]
	if !ok {
		return false
	}
	_, in := c.rooms[room]
	return in
}

// Online reports whether user is connected.
func (n *Network) Online(_ context.Context, user string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.clients[user]
	return ok
}

// IdleTime returns the time since user's last activity.
func (n *Network) IdleTime(ctx context.Context, user string) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, ok := n.clients[user]
	if !ok {
		return 0, ErrNoSuchUser
	}
	return n.clock.Since(c.lastActive), nil
}

// Account returns the authenticated account of user.
func (n *Network) Account(user string) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, ok := n.clients[user]
	if !ok || c.Account == "" {
		return "", false
	}
	return c.Account, true
}
