package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-gamebot/internal/auth"
)

// APIHandlers provides HTTP handlers for REST API endpoints.
type APIHandlers struct {
	authService *auth.Service
	log         *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(authService *auth.Service, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		authService: authService,
		log:         logger,
	}
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GuestRequest asks for a guest token. Nick is optional.
type GuestRequest struct {
	Nick string `json:"nick" binding:"omitempty,max=32"`
}

// AuthResponse represents the authentication response body.
type AuthResponse struct {
	Token string `json:"token"`
	Nick  string `json:"nick"`
}

// MeResponse describes the caller's token.
type MeResponse struct {
	Nick    string `json:"nick"`
	Account string `json:"account,omitempty"`
	IsGuest bool   `json:"is_guest"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Login handles account login.
// POST /api/login
func (h *APIHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Account, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
			return
		}
		h.log.Error().Err(err).Str("account", req.Account).Msg("failed to login")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("account", req.Account).Msg("account logged in")
	c.JSON(http.StatusOK, AuthResponse{Token: token, Nick: req.Account})
}

// GuestLogin issues a guest token.
// POST /api/guest
func (h *APIHandlers) GuestLogin(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log.Debug().Err(err).Msg("invalid guest request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, nick, err := h.authService.Guest(c.Request.Context(), req.Nick)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidNick) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid nick"})
			return
		}
		h.log.Error().Err(err).Msg("failed to issue guest token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("user", nick).Msg("guest token issued")
	c.JSON(http.StatusOK, AuthResponse{Token: token, Nick: nick})
}

// Me echoes the authenticated identity.
// GET /api/me
func (h *APIHandlers) Me(c *gin.Context) {
	c.JSON(http.StatusOK, MeResponse{
		Nick:    c.GetString(ContextKeyNick),
		Account: c.GetString(ContextKeyAccount),
		IsGuest: c.GetBool(ContextKeyIsGuest),
	})
}
