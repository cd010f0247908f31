package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/wirechat-gamebot/internal/proto"
)

const usage = `Type messages and press Enter to send them to the current room.
  /join <room>         enter a room and make it current
  /part                leave the current room
  /cmd <name> [args]   send a private bot command
  !<name> [args]       run a bot command in the current room
Ctrl+C to exit.`

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	api := flag.String("api", "http://localhost:8080", "HTTP base address")
	nick := flag.String("nick", "", "guest nick (random when empty)")
	token := flag.String("token", "", "token from /api/login or `gamebot token`; overrides -nick")
	room := flag.String("room", "#games", "room to join")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	if *token == "" {
		t, err := guestToken(ctx, *api, *nick)
		if err != nil {
			return err
		}
		*token = t
	}

	wsURL := strings.Replace(*api, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	c := &client{ctx: ctx, cancel: cancel, conn: conn, room: *room}
	c.send(proto.InboundTypeHello, proto.HelloData{Token: *token, Protocol: proto.ProtocolVersion})
	c.send(proto.InboundTypeJoin, proto.RoomData{Room: *room})

	fmt.Printf("Connected to %s in room %s\n", wsURL, *room)
	fmt.Println(usage)

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	c.writeLoop()

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

type client struct {
	ctx    context.Context
	cancel context.CancelFunc
	conn   *websocket.Conn
	room   string
}

func (c *client) send(typ string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("marshal %s: %v", typ, err)
		return
	}
	if writeErr := wsjson.Write(c.ctx, c.conn, proto.Inbound{Type: typ, Data: payload}); writeErr != nil {
		c.cancel()
		log.Printf("send: %v", writeErr)
	}
}

func (c *client) handleLine(text string) {
	if !strings.HasPrefix(text, "/") {
		c.send(proto.InboundTypeSay, proto.SayData{Room: c.room, Text: text})
		return
	}
	name, args, _ := strings.Cut(strings.TrimPrefix(text, "/"), " ")
	args = strings.TrimSpace(args)
	switch name {
	case "join":
		if args == "" {
			fmt.Println("usage: /join <room>")
			return
		}
		c.room = args
		c.send(proto.InboundTypeJoin, proto.RoomData{Room: args})
	case "part":
		c.send(proto.InboundTypePart, proto.RoomData{Room: c.room})
	case "cmd":
		cmd, rest, _ := strings.Cut(args, " ")
		c.send(proto.InboundTypeCommand, proto.CommandData{Name: cmd, Args: strings.TrimSpace(rest)})
	default:
		fmt.Println(usage)
	}
}

func (c *client) writeLoop() {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if text := strings.TrimSpace(line); text != "" {
				c.handleLine(text)
			}
		}
	}
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if outbound.Error != nil {
			fmt.Printf("! %s: %s\n", outbound.Error.Code, outbound.Error.Msg)
			continue
		}

		switch outbound.Event {
		case proto.EventMessage, proto.EventNotice, proto.EventPrivate:
			var evt proto.EventMessageData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal message: %v", err)
				continue
			}
			switch {
			case outbound.Event == proto.EventNotice:
				fmt.Printf("-%s- %s\n", evt.User, evt.Text)
			case evt.Room == "":
				fmt.Printf("*%s* %s\n", evt.User, evt.Text)
			default:
				fmt.Printf("[%s] %s: %s\n", evt.Room, evt.User, evt.Text)
			}
		case proto.EventUserJoined, proto.EventUserLeft:
			var evt proto.EventPresenceData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal presence: %v", err)
				continue
			}
			verb := "joined"
			if outbound.Event == proto.EventUserLeft {
				verb = "left"
			}
			fmt.Printf("[room %s] %s %s\n", evt.Room, evt.User, verb)
		case proto.EventMode:
			var evt proto.EventModeData
			if err := json.Unmarshal(outbound.Data, &evt); err != nil {
				log.Printf("unmarshal mode: %v", err)
				continue
			}
			fmt.Printf("[room %s] mode %s %s\n", evt.Room, evt.Mode, evt.User)
		default:
			fmt.Printf("event=%s data=%s\n", outbound.Event, outbound.Data)
		}
	}
}

func guestToken(ctx context.Context, api, nick string) (string, error) {
	body, err := json.Marshal(map[string]string{"nick": nick})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, api+"/api/guest", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("guest login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("guest login: status %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode guest token: %w", err)
	}
	return out.Token, nil
}
