package core

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Invite notifies subscribers that a game is gathering.
// The room defaults to the requester's session. Calls closer together than
// the configured interval fail with ErrTooSoon and leave the timestamp alone.
func (r *Registry) Invite(ctx context.Context, user, room string) error {
	slot, err := r.lockTarget(room, user)
	if err != nil {
		return err
	}
	if slot.game != nil {
		slot.mu.Unlock()
		return roomError(ErrGameInProgress, slot.name)
	}

	wr := slot.waiting
	now := r.clock.Now()
	if !wr.lastInvitation.IsZero() && now.Sub(wr.lastInvitation) < r.inviteInterval {
		slot.mu.Unlock()
		return roomError(ErrTooSoon, slot.name)
	}
	wr.lastInvitation = now
	members := wr.Members()
	name := slot.name
	slot.mu.Unlock()

	r.chat.SendPrivate(user, "Invitation has been sent.")
	r.log.Info().Str("room", name).Str("user", user).Msg("invitation sent")

	if r.subs == nil {
		return nil
	}
	subscribers, err := r.subs.Subscribers(ctx)
	if err != nil {
		return fmt.Errorf("load subscribers: %w", err)
	}

	text := fmt.Sprintf("A game of %s is gathering in %s...", r.rules.DisplayName(), name)
	for _, sub := range lo.Without(subscribers, members...) {
		if r.chat.Online(ctx, sub) {
			r.chat.SendPrivate(sub, text)
		}
	}
	return nil
}

// LastInvitation returns when the room last sent invitations.
// The zero time means never, or that the room has no waiting room.
func (r *Registry) LastInvitation(room string) (time.Time, error) {
	slot, ok := r.rooms[room]
	if !ok {
		return time.Time{}, roomError(ErrInvalidRoom, room)
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.waiting == nil {
		return time.Time{}, nil
	}
	return slot.waiting.lastInvitation, nil
}
