package http

import (
	"errors"
	"strings"

	"github.com/vovakirdan/wirechat-gamebot/internal/bot"
	"github.com/vovakirdan/wirechat-gamebot/internal/chat"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
	"github.com/vovakirdan/wirechat-gamebot/internal/proto"
)

// Protocol error codes not covered by core.
const (
	ErrCodeUnauthorized         = "unauthorized"
	ErrCodeUnsupportedVersion   = "unsupported_version"
	ErrCodeNickInUse            = "nick_in_use"
	ErrCodeNotInRoom            = "not_in_room"
	ErrCodeCannotSpeak          = "cannot_speak"
	ErrCodeRateLimited          = "rate_limited"
	ErrCodeInvalidMessage       = "invalid_message"
	ErrCodeAlreadyAuthenticated = "already_authenticated"
	ErrCodeInternal             = "internal"
)

// commandPrefix marks room messages that are also bot commands.
const commandPrefix = "!"

func outboundFromEvent(ev chat.Event) proto.Outbound {
	switch ev.Kind {
	case chat.EventRoomMessage, chat.EventNotice, chat.EventPrivateMessage:
		name := proto.EventMessage
		if ev.Kind == chat.EventNotice {
			name = proto.EventNotice
		} else if ev.Kind == chat.EventPrivateMessage {
			name = proto.EventPrivate
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: name,
			Data: proto.EventMessageData{
				Room: ev.Room,
				User: ev.From,
				Text: ev.Text,
				TS:   ev.At.Unix(),
			},
		}
	case chat.EventUserJoined, chat.EventUserLeft:
		name := proto.EventUserJoined
		if ev.Kind == chat.EventUserLeft {
			name = proto.EventUserLeft
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: name,
			Data:  proto.EventPresenceData{Room: ev.Room, User: ev.User},
		}
	case chat.EventMode:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMode,
			Data:  proto.EventModeData{Room: ev.Room, User: ev.User, Mode: ev.Mode},
		}
	default:
		return errorOutbound(ev.Code, ev.Text)
	}
}

func errorOutbound(code, msg string) proto.Outbound {
	return proto.Outbound{
		Type:  proto.OutboundTypeError,
		Error: &proto.Error{Code: code, Msg: msg},
	}
}

// errorFor maps network and core errors to protocol errors.
func errorFor(err error) proto.Outbound {
	var coreErr *core.CoreError
	switch {
	case errors.As(err, &coreErr):
		return errorOutbound(coreErr.Code, coreErr.Error())
	case errors.Is(err, chat.ErrNickInUse):
		return errorOutbound(ErrCodeNickInUse, err.Error())
	case errors.Is(err, chat.ErrNotInRoom):
		return errorOutbound(ErrCodeNotInRoom, err.Error())
	case errors.Is(err, chat.ErrCannotSpeak):
		return errorOutbound(ErrCodeCannotSpeak, err.Error())
	case errors.Is(err, chat.ErrInvalidNick):
		return errorOutbound(core.ErrCodeBadRequest, err.Error())
	default:
		return errorOutbound(ErrCodeInternal, "internal error")
	}
}

// commandFromSay parses "!name args" posted in room.
func commandFromSay(user, room, text string) (bot.Request, bool) {
	if !strings.HasPrefix(text, commandPrefix) {
		return bot.Request{}, false
	}
	name, args, _ := strings.Cut(strings.TrimPrefix(text, commandPrefix), " ")
	if name == "" {
		return bot.Request{}, false
	}
	return bot.Request{User: user, Room: room, Name: name, Args: strings.TrimSpace(args)}, true
}
