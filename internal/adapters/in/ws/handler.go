package ws

import (
	"log/slog"
	"net/http"

	"dispatch/internal/core/domain/model/session"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Handler performs the real-time handshake: it validates the requested role,
// authenticates credentialed roles, upgrades the request, and hands the
// resulting connection to the registry.
//
// Handshake query parameters:
//
//	role   one of admin, chef, delivery, customer, browser (required)
//	scope  the identity to address this connection by; defaults to the
//	       authenticated identity, or a generated id for browsers
//	token  credential, required for every role except browser
type Handler struct {
	registry ports.ConnectionRegistry
	auth     ports.Authenticator
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHandler creates the handshake handler.
func NewHandler(registry ports.ConnectionRegistry, auth ports.Authenticator, log *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		auth:     auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log.With("component", "ws_handler"),
	}
}

// Handle upgrades GET /ws. Rejections happen before the upgrade so clients
// receive a plain HTTP status with a reason code.
func (h *Handler) Handle(c echo.Context) error {
	role := session.Role(c.QueryParam("role"))
	if err := role.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"reason": "unknown_role"})
	}

	scope := c.QueryParam("scope")

	if role.RequiresCredential() {
		identity, err := h.auth.Authenticate(c.Request().Context(), role, c.QueryParam("token"))
		if err != nil {
			h.log.Warn("handshake rejected", "role", role.String(), "error", err)
			return c.JSON(http.StatusUnauthorized, map[string]string{"reason": "authentication_failed"})
		}
		if scope == "" {
			scope = identity
		}
	} else if scope == "" {
		// Anonymous browsers get a generated identity so reconnect semantics
		// still apply per tab.
		scope = uuid.NewString()
	}

	key, err := session.NewKey(role, scope)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"reason": "invalid_scope"})
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return nil
	}

	client := NewClient(key, conn, h.log)
	h.registry.Register(client)
	h.log.Info("connection established", "key", key.String())

	go client.WritePump()
	go client.ReadPump(func() {
		h.registry.Unregister(client)
		h.log.Info("connection closed", "key", key.String())
	})

	return nil
}
