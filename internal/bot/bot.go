// Package bot turns chat commands into session core operations and
// renders the replies.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vovakirdan/wirechat-gamebot/internal/changelog"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
	"github.com/vovakirdan/wirechat-gamebot/internal/notify"
)

// Network is the chat network the bot talks through.
type Network interface {
	core.Chat
	BotNick() string
	Touch(nick string)
}

// Request is a command issued by User. Room is empty for private commands.
type Request struct {
	User string
	Room string
	Name string
	Args string
}

// Private reports whether the command was sent outside a room.
func (r Request) Private() bool {
	return r.Room == ""
}

type handlerFunc func(ctx context.Context, req Request) error

// Bot dispatches commands.
type Bot struct {
	reg       *core.Registry
	mod       *core.Moderation
	net       Network
	prefs     *notify.Preferences
	subs      *notify.Subscriptions
	changelog *changelog.Changelog
	log       *zerolog.Logger

	handlers map[string]handlerFunc
}

// Deps groups the collaborators of a Bot.
type Deps struct {
	Registry      *core.Registry
	Moderation    *core.Moderation
	Network       Network
	Preferences   *notify.Preferences
	Subscriptions *notify.Subscriptions
	Changelog     *changelog.Changelog
}

// New builds a Bot.
func New(d Deps, logger *zerolog.Logger) *Bot {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	cl := d.Changelog
	if cl == nil {
		cl = changelog.New(nil)
	}
	b := &Bot{
		reg:       d.Registry,
		mod:       d.Moderation,
		net:       d.Network,
		prefs:     d.Preferences,
		subs:      d.Subscriptions,
		changelog: cl,
		log:       logger,
	}
	b.handlers = map[string]handlerFunc{
		"join":        b.join,
		"leave":       b.leave,
		"start":       b.start,
		"who":         b.who,
		"team":        b.team,
		"invite":      b.invite,
		"subscribe":   b.subscribe,
		"unsubscribe": b.unsubscribe,
		"notice":      b.notice,
		"intro":       b.intro,
		"changelog":   b.showChangelog,
		"help":        b.help,
		"reset":       b.reset,
		"replace":     b.replace,
		"kick":        b.kick,
		"room":        b.roomMode,
	}
	return b
}

// Handle runs one command. Errors returned are unexpected failures; user
// mistakes are answered in chat and yield nil.
func (b *Bot) Handle(ctx context.Context, req Request) error {
	req.Name = strings.ToLower(strings.TrimSpace(req.Name))
	req.Args = strings.TrimSpace(req.Args)
	b.net.Touch(req.User)

	h, ok := b.handlers[req.Name]
	if !ok {
		b.reply(req, fmt.Sprintf("Unknown command %q. Try \"help\".", req.Name), true)
		return nil
	}
	b.log.Debug().Str("user", req.User).Str("room", req.Room).Str("command", req.Name).Str("args", req.Args).Msg("command")

	err := h(ctx, req)
	if err != nil && !errors.Is(err, core.ErrNotAuthorized) {
		b.log.Error().Err(err).Str("user", req.User).Str("command", req.Name).Msg("command failed")
		b.reply(req, "Something went wrong, please try again later.", true)
		return err
	}
	return nil
}

// reply answers in the room the command came from, or privately.
func (b *Bot) reply(req Request, text string, prefix bool) {
	if req.Private() {
		b.net.SendPrivate(req.User, text)
		return
	}
	if prefix {
		text = req.User + ": " + text
	}
	b.net.Send(req.Room, text)
}

// UserJoined re-voices players returning to the room of their game.
func (b *Bot) UserJoined(room, nick string) {
	b.reg.VoiceIfPlaying(room, nick)
}

// UserParted drops a participant from a forming game in the room they left.
func (b *Bot) UserParted(room, nick string) {
	sess, ok := b.reg.SessionOf(nick)
	if !ok || sess.Started() || sess.Room != room {
		return
	}
	if err := b.reg.Leave(nick); err != nil && !errors.Is(err, core.ErrNotInSession) {
		b.log.Warn().Err(err).Str("room", room).Str("user", nick).Msg("remove on part failed")
	}
}

// dehighlight breaks nicks with zero-width spaces so listing players does
// not ping them.
func dehighlight(nick string) string {
	return strings.Join(strings.Split(nick, ""), "\u200b")
}

func fields(args string) []string {
	return strings.Fields(args)
}

func firstField(args string) string {
	f := fields(args)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}
