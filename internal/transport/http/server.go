package http

import (
	stdhttp "net/http"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-gamebot/internal/auth"
	"github.com/vovakirdan/wirechat-gamebot/internal/bot"
	"github.com/vovakirdan/wirechat-gamebot/internal/chat"
	"github.com/vovakirdan/wirechat-gamebot/internal/config"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
)

// Deps groups what the HTTP layer talks to.
type Deps struct {
	Network  *chat.Network
	Bot      *bot.Bot
	Auth     *auth.Service
	Registry *core.Registry
	// Clock drives the per-connection rate limit. Defaults to the wall clock.
	Clock clock.Clock
}

// NewServer builds an HTTP server with the API and WebSocket routes.
func NewServer(d Deps, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)

	api := NewAPIHandlers(d.Auth, logger)
	rooms := NewRoomHandlers(d.Registry, d.Network, logger)

	apiGroup := router.Group("/api")
	apiGroup.POST("/login", api.Login)
	apiGroup.POST("/guest", api.GuestLogin)
	apiGroup.GET("/rooms", rooms.ListRooms)
	apiGroup.GET("/me", AuthMiddleware(d.Auth, logger), api.Me)

	// The upgraded connection must own the raw ResponseWriter, so /ws stays
	// outside the gin router.
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(d, cfg, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
