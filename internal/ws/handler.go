package ws

import (
	"context"
	"net/http"

	"recruitment-portal/internal/domain/identity"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Authenticator resolves an access token to the caller it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (identity.Caller, error)
}

type Handler struct {
	hub    *Hub
	auth   Authenticator
	logger *zap.Logger
}

func NewHandler(hub *Hub, auth Authenticator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, auth: auth, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleNotificationsWS upgrades GET /ws/notifications?token=<access token>.
func (h *Handler) HandleNotificationsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.auth == nil {
		return fiber.ErrServiceUnavailable
	}

	token := c.Query("token")
	if token == "" {
		return fiber.ErrUnauthorized
	}
	caller, err := h.auth.Authenticate(c.Context(), token)
	if err != nil || !identity.IsAuthenticated(caller) {
		return fiber.ErrUnauthorized
	}
	userID := caller.UserID()

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", zap.Error(err))
			return
		}

		client := NewClient(h.hub, conn, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
