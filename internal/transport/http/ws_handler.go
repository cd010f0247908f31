package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/benbjohnson/clock"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-gamebot/internal/auth"
	"github.com/vovakirdan/wirechat-gamebot/internal/bot"
	"github.com/vovakirdan/wirechat-gamebot/internal/chat"
	"github.com/vovakirdan/wirechat-gamebot/internal/config"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
	"github.com/vovakirdan/wirechat-gamebot/internal/proto"
)

// WSHandler upgrades HTTP connections and bridges them to the chat network.
type WSHandler struct {
	net       *chat.Network
	bot       *bot.Bot
	auth      *auth.Service
	clock     clock.Clock
	readLimit int64
	rateLimit int
	log       *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(d Deps, cfg config.Config, logger *zerolog.Logger) stdhttp.Handler {
	clk := d.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &WSHandler{
		net:       d.Network,
		bot:       d.Bot,
		auth:      d.Auth,
		clock:     clk,
		readLimit: cfg.MaxMessageBytes,
		rateLimit: cfg.RateLimitPerMinute,
		log:       logger,
	}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")
	if h.readLimit > 0 {
		conn.SetReadLimit(h.readLimit)
	}

	client, err := h.handshake(ctx, conn)
	if err != nil {
		h.closeWith(conn, err)
		return
	}
	defer h.net.Disconnect(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	h.closeWith(conn, err)
}

func (h *WSHandler) closeWith(conn *websocket.Conn, err error) {
	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// handshake reads frames until a valid hello arrives and registers the client.
func (h *WSHandler) handshake(ctx context.Context, conn *websocket.Conn) (*chat.Client, error) {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return nil, err
		}
		if inbound.Type != proto.InboundTypeHello {
			if err := wsjson.Write(ctx, conn, errorOutbound(ErrCodeUnauthorized, "hello required")); err != nil {
				return nil, err
			}
			continue
		}

		var hello proto.HelloData
		if err := json.Unmarshal(inbound.Data, &hello); err != nil {
			if err := wsjson.Write(ctx, conn, errorOutbound(ErrCodeInvalidMessage, "malformed hello")); err != nil {
				return nil, err
			}
			continue
		}
		if hello.Protocol != 0 && hello.Protocol != proto.ProtocolVersion {
			if err := wsjson.Write(ctx, conn, errorOutbound(ErrCodeUnsupportedVersion, "unsupported protocol version")); err != nil {
				return nil, err
			}
			continue
		}

		claims, err := h.auth.ValidateToken(hello.Token)
		if err != nil {
			h.log.Debug().Err(err).Msg("ws hello rejected")
			if err := wsjson.Write(ctx, conn, errorOutbound(ErrCodeUnauthorized, "invalid token")); err != nil {
				return nil, err
			}
			continue
		}

		client, err := h.net.Connect(claims.Nick, claims.Account)
		if err != nil {
			if err := wsjson.Write(ctx, conn, errorFor(err)); err != nil {
				return nil, err
			}
			continue
		}

		welcome := proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventWelcome,
			Data: proto.EventWelcomeData{
				Nick:     client.Nick,
				Account:  client.Account,
				Protocol: proto.ProtocolVersion,
			},
		}
		if err := wsjson.Write(ctx, conn, welcome); err != nil {
			h.net.Disconnect(client)
			return nil, err
		}
		h.log.Info().Str("client_id", client.ID).Str("user", client.Nick).Msg("ws client authenticated")
		return client, nil
	}
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *chat.Client) error {
	limiter := newRateLimiter(h.rateLimit, h.clock)
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			h.log.Debug().Err(err).Str("client_id", client.ID).Msg("read ws inbound")
			return err
		}

		if !limiter.allow() {
			if err := wsjson.Write(ctx, conn, errorOutbound(ErrCodeRateLimited, "too many messages")); err != nil {
				return err
			}
			continue
		}

		if out, ok := h.dispatch(ctx, client, inbound); ok {
			if err := wsjson.Write(ctx, conn, out); err != nil {
				return err
			}
		}
	}
}

// dispatch applies one inbound frame. It returns an error frame to send
// back when the request failed.
func (h *WSHandler) dispatch(ctx context.Context, client *chat.Client, inbound proto.Inbound) (proto.Outbound, bool) {
	switch inbound.Type {
	case proto.InboundTypeHello:
		return errorOutbound(ErrCodeAlreadyAuthenticated, "already authenticated"), true
	case proto.InboundTypeJoin, proto.InboundTypePart:
		var data proto.RoomData
		if err := json.Unmarshal(inbound.Data, &data); err != nil || data.Room == "" {
			return errorOutbound(core.ErrCodeBadRequest, "room is required"), true
		}
		var err error
		if inbound.Type == proto.InboundTypeJoin {
			err = h.net.JoinRoom(client, data.Room)
		} else {
			err = h.net.PartRoom(client, data.Room)
		}
		if err != nil {
			return errorFor(err), true
		}
	case proto.InboundTypeSay:
		var data proto.SayData
		if err := json.Unmarshal(inbound.Data, &data); err != nil || data.Room == "" {
			return errorOutbound(core.ErrCodeBadRequest, "room is required"), true
		}
		if err := h.net.Say(client, data.Room, data.Text); err != nil {
			return errorFor(err), true
		}
		if req, ok := commandFromSay(client.Nick, data.Room, data.Text); ok {
			h.handleCommand(ctx, req)
		}
	case proto.InboundTypeCommand:
		var data proto.CommandData
		if err := json.Unmarshal(inbound.Data, &data); err != nil || data.Name == "" {
			return errorOutbound(core.ErrCodeBadRequest, "command name is required"), true
		}
		if data.Room != "" && !h.net.InRoom(data.Room, client.Nick) {
			return errorFor(chat.ErrNotInRoom), true
		}
		h.handleCommand(ctx, bot.Request{User: client.Nick, Room: data.Room, Name: data.Name, Args: data.Args})
	default:
		return errorOutbound(ErrCodeInvalidMessage, "unknown message type"), true
	}
	return proto.Outbound{}, false
}

func (h *WSHandler) handleCommand(ctx context.Context, req bot.Request) {
	if err := h.bot.Handle(ctx, req); err != nil {
		h.log.Warn().Err(err).Str("user", req.User).Str("command", req.Name).Msg("command failed")
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *chat.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("client_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
