package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
	"github.com/vovakirdan/wirechat-gamebot/internal/notify"
)

const helpText = "Commands: join [room], leave, start [options], who [room], team <name>, invite, " +
	"subscribe, unsubscribe, notice [on|off], intro, changelog [page]. " +
	"Moderators: kick <nick>, replace <old> <new>, reset [room], room [room] silent|vocal, notice list."

func (b *Bot) join(_ context.Context, req Request) error {
	target := firstField(req.Args)
	if target == "" {
		target = req.Room
	}

	if sess, ok := b.reg.SessionOf(req.User); ok {
		// rejoining a started game is silent so games can reuse the command
		if sess.Started() && (target == "" || target == sess.Room) {
			return nil
		}
		b.reply(req, fmt.Sprintf("You are already in the %s game", sess.Room), true)
		return nil
	}
	if target == "" {
		b.reply(req, "To join a game via PM you must specify the room: join <room>", false)
		return nil
	}

	_, err := b.reg.Join(target, req.User)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrInvalidRoom):
		b.reply(req, target+" is not a valid room to join", true)
	case errors.Is(err, core.ErrNotPresent):
		b.reply(req, fmt.Sprintf("You need to be in %s to join the game.", target), true)
	case errors.Is(err, core.ErrGameInProgress):
		b.reply(req, "Game has already started.", true)
	case errors.Is(err, core.ErrRoomFull):
		b.reply(req, "Game is at max players.", true)
	case errors.Is(err, core.ErrAlreadyInSession):
		var ce *core.CoreError
		errors.As(err, &ce)
		b.reply(req, fmt.Sprintf("You are already in the %s game", ce.Room), true)
	default:
		return err
	}
	return nil
}

func (b *Bot) leave(_ context.Context, req Request) error {
	err := b.reg.Leave(req.User)
	switch {
	case err == nil, errors.Is(err, core.ErrNotInSession):
	case errors.Is(err, core.ErrGameInProgress):
		b.reply(req, "You cannot leave a game in progress.", true)
	default:
		return err
	}
	return nil
}

func (b *Bot) start(ctx context.Context, req Request) error {
	game, err := b.reg.StartGame(ctx, core.StartRequest{Room: req.Room, Requester: req.User, Args: req.Args})
	switch {
	case err == nil:
	case errors.Is(err, core.ErrGameInProgress), errors.Is(err, core.ErrInvalidRoom):
		return nil
	case errors.Is(err, core.ErrNotEnoughPlayers):
		b.reply(req, fmt.Sprintf("Need at least %d to start a game.", b.reg.Rules().MinPlayers()), true)
		return nil
	case errors.Is(err, core.ErrNotInSession):
		b.reply(req, "You are not in the game.", true)
		return nil
	default:
		return err
	}
	if game == nil {
		b.reply(req, "The game could not be started with those options.", true)
		return nil
	}

	sess, ok := b.reg.SessionOf(req.User)
	if !ok {
		return nil
	}
	b.net.Send(sess.Room, fmt.Sprintf("The %s game has started! Players: %s",
		b.reg.Rules().DisplayName(), strings.Join(game.Players(), ", ")))
	return nil
}

// sessionTarget resolves an explicit room, the command's room, or the
// user's own session, in that order.
func (b *Bot) sessionTarget(req Request, room string) (core.Session, bool, error) {
	if room == "" {
		room = req.Room
	}
	if room != "" {
		sess, err := b.reg.SessionFor(room)
		if err != nil {
			return core.Session{}, false, err
		}
		return sess, true, nil
	}
	sess, ok := b.reg.SessionOf(req.User)
	return sess, ok, nil
}

func (b *Bot) who(_ context.Context, req Request) error {
	room := firstField(req.Args)
	sess, ok, err := b.sessionTarget(req, room)
	if errors.Is(err, core.ErrInvalidRoom) {
		b.reply(req, room+" is not a valid room", true)
		return nil
	}
	if err != nil {
		return err
	}
	if !ok {
		b.reply(req, "To list players via PM you must specify the room: who <room>", false)
		return nil
	}

	if sess.Started() {
		b.reply(req, sess.Game.StatusText(), false)
		return nil
	}
	if len(sess.Members) == 0 {
		b.reply(req, "No one has joined the game yet.", false)
		return nil
	}
	b.reply(req, strings.Join(lo.Map(sess.Members, func(m string, _ int) string {
		return dehighlight(m)
	}), " "), false)
	return nil
}

func (b *Bot) team(_ context.Context, req Request) error {
	name := firstField(req.Args)
	if name == "" {
		b.reply(req, "Usage: team <name>", true)
		return nil
	}
	err := b.reg.SetPlayerData(req.User, "team", name)
	switch {
	case err == nil:
		b.reply(req, fmt.Sprintf("You will play for team %s.", name), true)
	case errors.Is(err, core.ErrNotInSession):
		b.reply(req, "You are not in a game.", true)
	case errors.Is(err, core.ErrGameInProgress):
		b.reply(req, "Game has already started.", true)
	default:
		return err
	}
	return nil
}

func (b *Bot) invite(ctx context.Context, req Request) error {
	err := b.reg.Invite(ctx, req.User, req.Room)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrTooSoon):
		b.reply(req, "An invitation cannot be sent out again so soon.", true)
	case errors.Is(err, core.ErrGameInProgress), errors.Is(err, core.ErrNotInSession), errors.Is(err, core.ErrInvalidRoom):
	default:
		return err
	}
	return nil
}

func (b *Bot) subscribe(ctx context.Context, req Request) error {
	if _, authed := b.net.Account(req.User); !authed {
		b.net.SendPrivate(req.User, "You need to log in with an account to subscribe to the invitation list.")
		return nil
	}
	err := b.subs.Subscribe(ctx, req.User)
	switch {
	case err == nil:
		b.net.SendPrivate(req.User, "You've been subscribed to the invitation list.")
	case errors.Is(err, notify.ErrAlreadySubscribed):
		b.net.SendPrivate(req.User, "You are already subscribed to the invitation list.")
	default:
		return err
	}
	return nil
}

func (b *Bot) unsubscribe(ctx context.Context, req Request) error {
	if _, authed := b.net.Account(req.User); !authed {
		b.net.SendPrivate(req.User, "You need to log in with an account to unsubscribe from the invitation list.")
		return nil
	}
	err := b.subs.Unsubscribe(ctx, req.User)
	switch {
	case err == nil:
		b.net.SendPrivate(req.User, "You've been unsubscribed from the invitation list.")
	case errors.Is(err, notify.ErrNotSubscribed):
		b.net.SendPrivate(req.User, "You are not subscribed to the invitation list.")
	default:
		return err
	}
	return nil
}

// notice toggles delivery: "on" selects notices, "off" direct messages.
func (b *Bot) notice(ctx context.Context, req Request) error {
	f := fields(req.Args)
	toggle, nick := "", ""
	if len(f) > 0 {
		toggle = strings.ToLower(f[0])
	}
	if len(f) > 1 {
		nick = f[1]
	}
	privileged := b.mod.IsModerator(req.User)

	if toggle == "list" && privileged {
		b.reply(req, fmt.Sprintf("Direct message users: %s", strings.Join(b.prefs.List(), ", ")), false)
		return nil
	}

	target := req.User
	if privileged && nick != "" {
		target = nick
	}
	if toggle == "on" || toggle == "off" {
		var err error
		target, err = b.prefs.Set(ctx, notify.PreferenceChange{
			Actor:      req.User,
			Target:     nick,
			Direct:     toggle == "off",
			Privileged: privileged,
		})
		if err != nil {
			return err
		}
	}

	mode := "NOTICE"
	if b.prefs.PrefersDirect(target) {
		mode = "PRIVMSG"
	}
	b.reply(req, fmt.Sprintf("Private communications to %s will occur in %s", target, mode), false)
	return nil
}

func (b *Bot) intro(_ context.Context, req Request) error {
	b.net.SendPrivate(req.User, fmt.Sprintf("Welcome to %s. You can join a game if there's one getting started "+
		"with the command \"join\". For more commands, type \"help\".", b.net.BotNick()))
	return nil
}

func (b *Bot) showChangelog(_ context.Context, req Request) error {
	arg := firstField(req.Args)
	var lines []string
	if arg == "" {
		lines = b.changelog.Summary(5)
		if len(lines) == 0 {
			lines = []string{"No changes recorded yet."}
		}
	} else {
		page, err := strconv.Atoi(arg)
		if err != nil {
			b.net.SendPrivate(req.User, "Usage: changelog [page]")
			return nil
		}
		lines = b.changelog.Page(page)
	}
	for _, line := range lines {
		b.net.SendPrivate(req.User, line)
	}
	return nil
}

func (b *Bot) help(_ context.Context, req Request) error {
	b.net.SendPrivate(req.User, helpText)
	return nil
}
