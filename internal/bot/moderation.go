package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/wirechat-gamebot/internal/core"
)

// Moderator commands answer privately and stay silent for everybody else.

func (b *Bot) kick(ctx context.Context, req Request) error {
	nick := firstField(req.Args)
	if nick == "" {
		return nil
	}
	err := b.mod.Kick(ctx, req.User, nick)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrNotInSession):
		b.net.SendPrivate(req.User, nick+" is not in a game")
	case errors.Is(err, core.ErrGameInProgress):
		b.net.SendPrivate(req.User, "You can't kick someone while a game is in progress.")
	default:
		return err
	}
	return nil
}

func (b *Bot) replace(ctx context.Context, req Request) error {
	f := fields(req.Args)
	if len(f) != 2 {
		if b.mod.IsModerator(req.User) {
			b.net.SendPrivate(req.User, "Usage: replace <old> <new>")
		}
		return nil
	}
	old, replacement := f[0], f[1]
	err := b.mod.Replace(ctx, req.User, old, replacement)
	var ce *core.CoreError
	switch {
	case err == nil:
	case errors.Is(err, core.ErrAlreadyInSession) && errors.As(err, &ce):
		b.net.SendPrivate(req.User, fmt.Sprintf("%s is already in the %s game.", replacement, ce.Room))
	case errors.Is(err, core.ErrNotInSession):
		b.net.SendPrivate(req.User, old+" is not in a game")
	case errors.Is(err, core.ErrReplacementRefused):
		b.net.SendPrivate(req.User, fmt.Sprintf("The game refused to replace %s.", old))
	default:
		return err
	}
	return nil
}

func (b *Bot) reset(ctx context.Context, req Request) error {
	room := firstField(req.Args)
	if room == "" {
		room = req.Room
	}
	err := b.mod.Reset(ctx, req.User, room)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrNoGame):
		b.net.SendPrivate(req.User, "There is no game in progress to reset.")
	case errors.Is(err, core.ErrInvalidRoom):
		b.net.SendPrivate(req.User, room+" is not a valid room")
	case errors.Is(err, core.ErrNotInSession):
		b.net.SendPrivate(req.User, "To reset a game via PM you must specify the room: reset <room>")
	default:
		return err
	}
	return nil
}

func (b *Bot) roomMode(ctx context.Context, req Request) error {
	f := fields(req.Args)
	room := req.Room
	var modeArg string
	switch len(f) {
	case 1:
		modeArg = f[0]
	case 2:
		room, modeArg = f[0], f[1]
	}
	mode, err := core.ParseRoomMode(modeArg)
	if err != nil || room == "" {
		if b.mod.IsModerator(req.User) {
			b.net.SendPrivate(req.User, "Usage: room [room] silent|vocal")
		}
		return nil
	}

	err = b.mod.SetRoomMode(ctx, req.User, room, mode)
	if errors.Is(err, core.ErrInvalidRoom) {
		b.net.SendPrivate(req.User, room+" is not a valid room")
		return nil
	}
	return err
}
