package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-gamebot/internal/chat"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
)

// RoomHandlers exposes the state of the managed rooms.
type RoomHandlers struct {
	reg *core.Registry
	net *chat.Network
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(reg *core.Registry, net *chat.Network, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		reg: reg,
		net: net,
		log: logger,
	}
}

// RoomResponse represents a managed room in API responses.
type RoomResponse struct {
	Name      string   `json:"name"`
	State     string   `json:"state"`
	Players   []string `json:"players"`
	Capacity  int      `json:"capacity,omitempty"`
	GameID    string   `json:"game_id,omitempty"`
	Present   int      `json:"present"`
	Moderated bool     `json:"moderated"`
}

// ListRooms lists every managed room with its current session.
// GET /api/rooms
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	rooms := h.reg.Rooms()
	response := make([]RoomResponse, 0, len(rooms))
	for _, name := range rooms {
		sess, err := h.reg.SessionFor(name)
		if err != nil {
			h.log.Error().Err(err).Str("room", name).Msg("failed to read session")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			return
		}
		resp := RoomResponse{
			Name:      name,
			State:     sess.Kind.String(),
			Players:   sess.Members,
			Capacity:  sess.Capacity,
			Present:   len(h.net.Members(name)),
			Moderated: h.net.Moderated(name),
		}
		if resp.Players == nil {
			resp.Players = []string{}
		}
		if sess.Started() {
			resp.GameID = sess.GameID.String()
		}
		response = append(response, resp)
	}

	h.log.Debug().Int("room_count", len(response)).Msg("rooms listed")
	c.JSON(http.StatusOK, response)
}
