package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/wirechat-gamebot/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	api := flag.String("api", "http://localhost:8080", "HTTP base address")
	nick := flag.String("nick", "tester", "guest nick to request")
	room := flag.String("room", "#games", "room name")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	token, err := guestToken(ctx, *api, *nick)
	if err != nil {
		return err
	}

	wsURL := strings.Replace(*api, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	steps := []struct {
		typ  string
		data any
	}{
		{proto.InboundTypeHello, proto.HelloData{Token: token, Protocol: proto.ProtocolVersion}},
		{proto.InboundTypeJoin, proto.RoomData{Room: *room}},
		{proto.InboundTypeCommand, proto.CommandData{Name: "join", Room: *room}},
		{proto.InboundTypeCommand, proto.CommandData{Name: "who", Room: *room}},
	}
	for _, step := range steps {
		payload, err := json.Marshal(step.data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", step.typ, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: step.typ, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", step.typ, err)
		}
	}

	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("Received outbound: type=%s", outbound.Type)
		if outbound.Event != "" {
			fmt.Printf(" event=%s", outbound.Event)
		}
		if outbound.Error != nil {
			fmt.Printf(" error=%s (%s)\n", outbound.Error.Code, outbound.Error.Msg)
			return fmt.Errorf("server error: %s", outbound.Error.Code)
		}
		fmt.Printf(" data=%s\n", outbound.Data)

		if outbound.Event != proto.EventMessage {
			continue
		}
		var msg proto.EventMessageData
		if err := json.Unmarshal(outbound.Data, &msg); err != nil {
			return fmt.Errorf("decode message: %w", err)
		}
		// the who reply is the last step
		if msg.Room == *room && strings.Contains(msg.Text, "\u200b") {
			return nil
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
