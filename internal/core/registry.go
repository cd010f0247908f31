package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const defaultIdlePeriod = 300 * time.Second

// Options configures a Registry.
type Options struct {
	Rooms          []string
	IdleThreshold  time.Duration
	IdlePeriod     time.Duration
	InviteInterval time.Duration
	Subscribers    Subscribers
	Clock          clock.Clock
}

// JoinResult reports the waiting room size after a successful join.
type JoinResult struct {
	Room     string
	Size     int
	Capacity int
}

// Registry owns every room slot and the participant index.
// Lock order is slot.mu before idxMu.
type Registry struct {
	rules Rules
	chat  Chat
	subs  Subscribers
	clock clock.Clock
	log   *zerolog.Logger

	idleThreshold  time.Duration
	idlePeriod     time.Duration
	inviteInterval time.Duration

	rooms map[string]*roomSlot
	order []string

	idxMu sync.RWMutex
	index map[string]*roomSlot
}

// NewRegistry creates an empty waiting room for every configured room.
func NewRegistry(rules Rules, chat Chat, opts Options, logger *zerolog.Logger) *Registry {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	period := opts.IdlePeriod
	if period <= 0 {
		period = defaultIdlePeriod
	}

	r := &Registry{
		rules:          rules,
		chat:           chat,
		subs:           opts.Subscribers,
		clock:          clk,
		log:            logger,
		idleThreshold:  opts.IdleThreshold,
		idlePeriod:     period,
		inviteInterval: opts.InviteInterval,
		rooms:          make(map[string]*roomSlot, len(opts.Rooms)),
		index:          make(map[string]*roomSlot),
	}
	for _, name := range opts.Rooms {
		if _, dup := r.rooms[name]; dup {
			continue
		}
		r.rooms[name] = &roomSlot{
			name:    name,
			waiting: NewWaitingRoom(name, rules.MaxPlayers()),
		}
		r.order = append(r.order, name)
	}
	return r
}

// Rules returns the game rules the registry was built with.
func (r *Registry) Rules() Rules {
	return r.rules
}

// Rooms returns the managed room names in configuration order.
func (r *Registry) Rooms() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// SessionFor returns a snapshot of the room's current session.
func (r *Registry) SessionFor(room string) (Session, error) {
	slot, ok := r.rooms[room]
	if !ok {
		return Session{}, roomError(ErrInvalidRoom, room)
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.snapshot(), nil
}

// SessionOf returns the session the participant currently occupies.
func (r *Registry) SessionOf(user string) (Session, bool) {
	slot := r.lockSessionOf(user)
	if slot == nil {
		return Session{}, false
	}
	defer slot.mu.Unlock()
	return slot.snapshot(), true
}

// InSession reports whether the participant occupies any session.
func (r *Registry) InSession(user string) bool {
	return r.slotOf(user) != nil
}

// Join adds a participant to the room's waiting room.
func (r *Registry) Join(room, user string) (JoinResult, error) {
	if other := r.slotOf(user); other != nil {
		return JoinResult{}, roomError(ErrAlreadyInSession, other.name)
	}
	slot, ok := r.rooms[room]
	if !ok {
		return JoinResult{}, roomError(ErrInvalidRoom, room)
	}
	if !r.chat.InRoom(room, user) {
		return JoinResult{}, roomError(ErrNotPresent, room)
	}

	var ob outbox
	slot.mu.Lock()
	res, err := r.joinLocked(slot, user, &ob)
	slot.mu.Unlock()
	ob.flush(r.chat)

	if err == nil {
		r.log.Debug().Str("room", room).Str("user", user).Int("size", res.Size).Msg("joined waiting room")
	}
	return res, err
}

func (r *Registry) joinLocked(slot *roomSlot, user string, ob *outbox) (JoinResult, error) {
	if slot.game != nil {
		return JoinResult{}, roomError(ErrGameInProgress, slot.name)
	}
	if slot.waiting.Full() {
		return JoinResult{}, roomError(ErrRoomFull, slot.name)
	}

	r.idxMu.Lock()
	defer r.idxMu.Unlock()
	if other, ok := r.index[user]; ok {
		return JoinResult{}, roomError(ErrAlreadyInSession, other.name)
	}
	slot.waiting.Add(user)
	r.index[user] = slot

	res := JoinResult{Room: slot.name, Size: slot.waiting.Size(), Capacity: slot.waiting.Capacity()}
	ob.send(slot.name, fmt.Sprintf("%s has joined the game (%d/%d)", user, res.Size, res.Capacity))
	ob.voice(slot.name, user)
	return res, nil
}

// Leave removes a participant from their waiting room.
// Leaving a started game is refused.
func (r *Registry) Leave(user string) error {
	slot := r.lockSessionOf(user)
	if slot == nil {
		return ErrNotInSession
	}

	var ob outbox
	err := r.leaveLocked(slot, user, &ob)
	slot.mu.Unlock()
	ob.flush(r.chat)
	return err
}

func (r *Registry) leaveLocked(slot *roomSlot, user string, ob *outbox) error {
	if slot.game != nil {
		return roomError(ErrGameInProgress, slot.name)
	}
	if !r.removeLocked(slot, user, ob) {
		return ErrNotInSession
	}
	ob.send(slot.name, fmt.Sprintf("%s has left the game (%d/%d)", user, slot.waiting.Size(), slot.waiting.Capacity()))
	return nil
}

// removeLocked drops user from the slot's waiting room and the index.
// Returns false if user was not a member, so callers never announce a
// departure that did not happen.
func (r *Registry) removeLocked(slot *roomSlot, user string, ob *outbox) bool {
	if slot.waiting == nil || !slot.waiting.Remove(user) {
		return false
	}
	r.idxMu.Lock()
	if r.index[user] == slot {
		delete(r.index, user)
	}
	r.idxMu.Unlock()
	ob.devoice(slot.name, user)
	return true
}

// StartGame asks the rules to turn the waiting room into a game.
// A nil Game with a nil error means the rules declined and nothing changed.
func (r *Registry) StartGame(ctx context.Context, req StartRequest) (Game, error) {
	slot, err := r.lockTarget(req.Room, req.Requester)
	if err != nil {
		return nil, err
	}
	var ob outbox
	game, err := r.startLocked(ctx, slot, req, &ob)
	slot.mu.Unlock()
	ob.flush(r.chat)
	return game, err
}

func (r *Registry) startLocked(ctx context.Context, slot *roomSlot, req StartRequest, ob *outbox) (Game, error) {
	if slot.game != nil {
		return nil, roomError(ErrGameInProgress, slot.name)
	}
	wr := slot.waiting
	if wr.Size() < r.rules.MinPlayers() {
		return nil, roomError(ErrNotEnoughPlayers, slot.name)
	}
	if !wr.Contains(req.Requester) {
		return nil, roomError(ErrNotInSession, slot.name)
	}

	req.Room = slot.name
	req.Players = wr.Members()
	req.Settings = wr.settingsSnapshot()

	game, err := r.rules.Start(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("start game in %s: %w", slot.name, err)
	}
	if game == nil {
		r.log.Debug().Str("room", slot.name).Str("args", req.Args).Msg("game start declined")
		return nil, nil
	}

	// Index entries point at the slot, so players now resolve to the game.
	// Members the game left out are released.
	players := game.Players()
	var released []string
	r.idxMu.Lock()
	for _, user := range wr.Members() {
		if !lo.Contains(players, user) && r.index[user] == slot {
			delete(r.index, user)
			released = append(released, user)
		}
	}
	r.idxMu.Unlock()
	for _, user := range released {
		ob.devoice(slot.name, user)
	}

	wr.Clear()
	slot.game = game
	slot.gameID = uuid.New()
	slot.waiting = nil
	slot.idle = idlePaused

	r.log.Info().
		Str("room", slot.name).
		Str("game_id", slot.gameID.String()).
		Strs("players", players).
		Strs("released", released).
		Msg("game started")
	return game, nil
}

// ResetGame discards the room's game and opens a fresh waiting room.
func (r *Registry) ResetGame(ctx context.Context, room string) error {
	slot, err := r.lockRoom(room)
	if err != nil {
		return err
	}
	if slot.game == nil {
		slot.mu.Unlock()
		return roomError(ErrNoGame, room)
	}
	var ob outbox
	r.resetLocked(slot, &ob)
	slot.mu.Unlock()
	ob.flush(r.chat)
	return nil
}

func (r *Registry) resetLocked(slot *roomSlot, ob *outbox) {
	var released []string
	r.idxMu.Lock()
	for user, s := range r.index {
		if s == slot {
			delete(r.index, user)
			released = append(released, user)
		}
	}
	r.idxMu.Unlock()
	sort.Strings(released)

	ob.moderated(slot.name, false)
	for _, user := range released {
		ob.devoice(slot.name, user)
	}

	r.log.Info().Str("room", slot.name).Str("game_id", slot.gameID.String()).Msg("game reset")

	slot.game = nil
	slot.gameID = uuid.Nil
	slot.waiting = NewWaitingRoom(slot.name, r.rules.MaxPlayers())
	slot.idle = idleRunning
}

// SetPlayerData stores a per-player value in the participant's waiting room.
func (r *Registry) SetPlayerData(user, key string, value any) error {
	slot := r.lockSessionOf(user)
	if slot == nil {
		return ErrNotInSession
	}
	defer slot.mu.Unlock()
	if slot.game != nil {
		return roomError(ErrGameInProgress, slot.name)
	}
	data := slot.waiting.Data(user)
	if data == nil {
		return ErrNotInSession
	}
	data[key] = value
	return nil
}

// PlayerData returns a copy of the participant's waiting room data.
func (r *Registry) PlayerData(user string) (map[string]any, error) {
	slot := r.lockSessionOf(user)
	if slot == nil {
		return nil, ErrNotInSession
	}
	defer slot.mu.Unlock()
	if slot.game != nil {
		return nil, roomError(ErrGameInProgress, slot.name)
	}
	out := make(map[string]any)
	for k, v := range slot.waiting.Data(user) {
		out[k] = v
	}
	return out, nil
}

// VoiceIfPlaying re-grants voice to a player entering the room of their game.
func (r *Registry) VoiceIfPlaying(room, user string) bool {
	slot, ok := r.rooms[room]
	if !ok {
		return false
	}
	slot.mu.Lock()
	playing := slot.game != nil && r.slotOf(user) == slot
	slot.mu.Unlock()
	if playing {
		r.chat.Voice(room, user)
	}
	return playing
}

func (r *Registry) slotOf(user string) *roomSlot {
	r.idxMu.RLock()
	defer r.idxMu.RUnlock()
	return r.index[user]
}

// lockSessionOf returns the participant's slot locked, or nil.
// The index is re-checked after locking since it may change in between.
func (r *Registry) lockSessionOf(user string) *roomSlot {
	for {
		slot := r.slotOf(user)
		if slot == nil {
			return nil
		}
		slot.mu.Lock()
		if r.slotOf(user) == slot {
			return slot
		}
		slot.mu.Unlock()
	}
}

func (r *Registry) lockRoom(room string) (*roomSlot, error) {
	slot, ok := r.rooms[room]
	if !ok {
		return nil, roomError(ErrInvalidRoom, room)
	}
	slot.mu.Lock()
	return slot, nil
}

// lockTarget resolves an explicit room, or the participant's session when room is empty.
func (r *Registry) lockTarget(room, user string) (*roomSlot, error) {
	if room != "" {
		return r.lockRoom(room)
	}
	slot := r.lockSessionOf(user)
	if slot == nil {
		return nil, ErrNotInSession
	}
	return slot, nil
}
