package core

import (
	"context"
	"fmt"
)

// Moderation exposes the privileged operations.
// Every operation returns ErrNotAuthorized without side effects when the
// caller is not a moderator; callers must not reply to it.
type Moderation struct {
	reg  *Registry
	mods map[string]struct{}
}

// NewModeration builds the moderation operations for the given account names.
func NewModeration(reg *Registry, mods []string) *Moderation {
	set := make(map[string]struct{}, len(mods))
	for _, m := range mods {
		set[m] = struct{}{}
	}
	return &Moderation{reg: reg, mods: set}
}

// IsModerator requires an authenticated account listed as moderator.
func (m *Moderation) IsModerator(user string) bool {
	account, ok := m.reg.chat.Account(user)
	if !ok {
		return false
	}
	_, isMod := m.mods[account]
	return isMod
}

// Kick removes target from a forming game.
func (m *Moderation) Kick(ctx context.Context, mod, target string) error {
	if !m.IsModerator(mod) {
		return ErrNotAuthorized
	}
	slot := m.reg.lockSessionOf(target)
	if slot == nil {
		return ErrNotInSession
	}

	var ob outbox
	err := m.reg.leaveLocked(slot, target, &ob)
	room := slot.name
	slot.mu.Unlock()
	ob.flush(m.reg.chat)

	if err == nil {
		m.reg.log.Info().Str("room", room).Str("moderator", mod).Str("user", target).Msg("participant kicked")
	}
	return err
}

// Replace substitutes old with replacement in whatever session old occupies.
func (m *Moderation) Replace(ctx context.Context, mod, old, replacement string) error {
	if !m.IsModerator(mod) {
		return ErrNotAuthorized
	}
	if other := m.reg.slotOf(replacement); other != nil {
		return roomError(ErrAlreadyInSession, other.name)
	}
	slot := m.reg.lockSessionOf(old)
	if slot == nil {
		return ErrNotInSession
	}

	game, err := m.replaceLocked(slot, old, replacement)
	room := slot.name
	if err != nil {
		slot.mu.Unlock()
		return err
	}

	var ob outbox
	ob.devoice(room, old)
	ob.voice(room, replacement)
	ob.send(room, fmt.Sprintf("%s has been replaced with %s", old, replacement))
	slot.mu.Unlock()
	ob.flush(m.reg.chat)

	m.reg.log.Info().Str("room", room).Str("moderator", mod).Str("old", old).Str("new", replacement).Msg("participant replaced")
	if game != nil {
		m.reg.rules.OnReplace(ctx, room, game, old, replacement)
	}
	return nil
}

// replaceLocked swaps membership and index entries. The returned Game is
// non-nil when the slot holds a started game.
func (m *Moderation) replaceLocked(slot *roomSlot, old, replacement string) (Game, error) {
	r := m.reg
	r.idxMu.Lock()
	defer r.idxMu.Unlock()

	if other, ok := r.index[replacement]; ok {
		return nil, roomError(ErrAlreadyInSession, other.name)
	}
	if slot.game != nil {
		if !slot.game.ReplacePlayer(old, replacement) {
			return nil, roomError(ErrReplacementRefused, slot.name)
		}
	} else if !slot.waiting.Replace(old, replacement) {
		return nil, ErrNotInSession
	}

	delete(r.index, old)
	r.index[replacement] = slot
	return slot.game, nil
}

// Reset discards the game in room, or in the moderator's own session when
// room is empty.
func (m *Moderation) Reset(ctx context.Context, mod, room string) error {
	if !m.IsModerator(mod) {
		return ErrNotAuthorized
	}
	slot, err := m.reg.lockTarget(room, mod)
	if err != nil {
		return err
	}
	if slot.game == nil {
		slot.mu.Unlock()
		return roomError(ErrNoGame, slot.name)
	}

	m.reg.rules.OnReset(ctx, slot.name, slot.game)

	var ob outbox
	m.reg.resetLocked(slot, &ob)
	ob.send(slot.name, "The game has been reset.")
	slot.mu.Unlock()
	ob.flush(m.reg.chat)
	return nil
}

// SetRoomMode toggles the room's broadcast restriction.
func (m *Moderation) SetRoomMode(ctx context.Context, mod, room string, mode RoomMode) error {
	if !m.IsModerator(mod) {
		return ErrNotAuthorized
	}
	if _, ok := m.reg.rooms[room]; !ok {
		return roomError(ErrInvalidRoom, room)
	}
	m.reg.chat.SetModerated(room, mode == RoomModeSilent)
	m.reg.log.Info().Str("room", room).Str("moderator", mod).Str("mode", string(mode)).Msg("room mode changed")
	return nil
}
