package gateway

import (
	"net/http"

	"github.com/code-100-precent/LingChat/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler serves the WebSocket upgrade endpoint
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates a new gateway handler bound to the hub
func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  hub.config.ReadBufferSize,
			WriteBufferSize: hub.config.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				// Cross-origin browsers are expected; auth happens via token.
				return true
			},
		},
	}
}

// RegisterRoutes mounts the upgrade endpoint and the stats endpoint
func RegisterRoutes(r *gin.Engine, handler *Handler) {
	r.GET(handler.hub.config.Path, handler.HandleUpgrade)
	r.GET(handler.hub.config.Path+"/stats", handler.GetStats)
}

// HandleUpgrade authenticates the handshake and upgrades the connection.
// The credential is verified exactly once, before the upgrade; the resulting
// identity is handed to the connection so no second decode ever happens.
// Malformed requests are refused with HTTP 400 before the upgrade rather
// than with CloseInvalidRequest after it.
func (h *Handler) HandleUpgrade(c *gin.Context) {
	if c.Request.Host == "" || c.Request.URL.Path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": ReasonBadRequest})
		return
	}

	token := extractToken(c)
	if token == "" {
		logger.Warn("websocket handshake without credential",
			zap.String("remote", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": ReasonTokenRequired})
		return
	}

	ident, err := h.hub.verifier.Verify(token)
	if err != nil {
		logger.Warn("websocket handshake with invalid credential",
			zap.Error(err), zap.String("remote", c.ClientIP()))
		c.JSON(http.StatusForbidden, gin.H{"error": ReasonInvalidToken})
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written its own HTTP error response.
		logger.Error("websocket upgrade failed",
			zap.Error(err), zap.String("remote", c.ClientIP()))
		return
	}

	h.Attach(ws, ident)
}

// Attach wires an upgraded socket into the hub. It is the single entry point
// past the handshake: an identity that did not survive verification gets the
// post-open auth failure close code instead of a silent drop.
func (h *Handler) Attach(ws *websocket.Conn, ident *Identity) {
	if ident == nil || ident.UserID == "" {
		conn := &Connection{ws: ws}
		conn.closeWithCode(CloseAuthFailure, ReasonInvalidToken)
		return
	}

	conn := newConnection(h.hub, ws, ident)

	select {
	case h.hub.register <- conn:
	case <-h.hub.ctx.Done():
		conn.closeWithCode(websocket.CloseGoingAway, "server shutting down")
		return
	}

	go conn.writePump()
	go conn.readPump()
}

// extractToken pulls the credential from the query string, falling back to
// the auth cookie.
func extractToken(c *gin.Context) string {
	if token := c.Query(TokenQueryParam); token != "" {
		return token
	}
	if token, err := c.Cookie(AuthCookieName); err == nil && token != "" {
		return token
	}
	return ""
}

// GetStats reports gateway connection statistics
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total_connections":  h.hub.ConnectionCount(),
		"max_connections":    h.hub.config.MaxConnections,
		"heartbeat_interval": h.hub.config.HeartbeatInterval.String(),
		"send_buffer_size":   h.hub.config.SendBufferSize,
		"max_message_size":   h.hub.config.MaxMessageSize,
	})
}
