package gateway

import (
	"sync"
	"time"

	"github.com/code-100-precent/LingChat/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Connection represents one live authenticated session. The socket handle is
// owned exclusively by the gateway; UserID and DisplayName are set once at
// construction and never change.
type Connection struct {
	ID          string
	UserID      string
	DisplayName string

	ws       *websocket.Conn
	send     chan []byte
	sendOnce sync.Once
	hub      *Hub

	mu      sync.Mutex
	isAlive bool
}

func newConnection(hub *Hub, ws *websocket.Conn, ident *Identity) *Connection {
	return &Connection{
		ID:          uuid.NewString(),
		UserID:      ident.UserID,
		DisplayName: ident.DisplayName(),
		ws:          ws,
		send:        make(chan []byte, hub.config.SendBufferSize),
		hub:         hub,
		isAlive:     true,
	}
}

func (c *Connection) alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isAlive
}

func (c *Connection) setAlive(v bool) {
	c.mu.Lock()
	c.isAlive = v
	c.mu.Unlock()
}

// closeSend closes the send queue exactly once, releasing the write pump.
// Every path that retires a connection must end up here, including the ones
// that never made it into the registry.
func (c *Connection) closeSend() {
	c.sendOnce.Do(func() { close(c.send) })
}

// readPump reads frames from the connection until it closes. It is the only
// reader of the socket; any panic in frame handling is recovered here so a
// bad frame never takes down the process.
func (c *Connection) readPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered panic in connection handler",
				zap.Any("panic", r), zap.String("conn", c.ID), zap.String("user", c.UserID))
		}
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
			// Hub loop already stopped; Shutdown closes the sockets and the
			// send queues itself.
		}
		c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.ws.Close()
	}()

	c.ws.SetReadLimit(c.hub.config.MaxMessageSize)
	c.ws.SetPongHandler(func(string) error {
		c.setAlive(true)
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("connection closed normally",
					zap.String("conn", c.ID), zap.String("user", c.UserID))
			} else if websocket.IsCloseError(err, websocket.CloseNoStatusReceived) {
				// Client closed without a status code (e.g. browser tab closed).
				logger.Debug("connection closed by client",
					zap.String("conn", c.ID), zap.String("user", c.UserID))
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("connection read error",
					zap.Error(err), zap.String("conn", c.ID), zap.String("user", c.UserID))
			} else {
				logger.Warn("connection error",
					zap.Error(err), zap.String("conn", c.ID), zap.String("user", c.UserID))
			}
			break
		}

		c.handleFrame(message)
	}
}

// writePump is the single writer goroutine for queued data frames. Control
// frames (heartbeat pings, close) go through WriteControl, which is safe
// concurrently with a data writer.
func (c *Connection) writePump() {
	defer c.ws.Close()

	for {
		message, ok := <-c.send
		c.ws.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
		if !ok {
			c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("connection write error",
					zap.Error(err), zap.String("conn", c.ID), zap.String("user", c.UserID))
			}
			return
		}
	}
}

// ping sends a protocol-level liveness probe.
func (c *Connection) ping() error {
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.hub.config.WriteTimeout))
}

// terminate drops the underlying socket without a close handshake. Used for
// dead peer eviction; readPump unwinds and unregisters the connection.
func (c *Connection) terminate() {
	c.ws.Close()
}

// closeWithCode performs a close handshake with an application close code.
func (c *Connection) closeWithCode(code int, reason string) {
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(time.Second))
	c.ws.Close()
}
