package gateway

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/code-100-precent/LingChat/pkg/logger"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub owns the connection registry and the heartbeat timer. All registry
// mutations flow through the run loop; delivery paths take read locks, so an
// iteration never observes a half-applied insert or remove.
type Hub struct {
	config   *Config
	verifier TokenVerifier
	store    MessageStore
	profiles ProfileResolver

	mu        sync.RWMutex
	conns     map[string]*Connection            // conn id -> connection
	userConns map[string]map[string]*Connection // user id -> conn id -> connection
	connCount int64

	register     chan *Connection
	unregister   chan *Connection
	presenceKick chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub creates the hub and starts its run loop. The heartbeat ticker lives
// and dies with the hub: started here, stopped exactly once in Shutdown.
func NewHub(config *Config, verifier TokenVerifier, store MessageStore, profiles ProfileResolver) *Hub {
	if config == nil {
		config = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	hub := &Hub{
		config:     config,
		verifier:   verifier,
		store:      store,
		profiles:   profiles,
		conns:      make(map[string]*Connection),
		userConns:  make(map[string]map[string]*Connection),
		register:     make(chan *Connection, 64),
		unregister:   make(chan *Connection, 64),
		presenceKick: make(chan struct{}, 1),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}

	go hub.run()
	go hub.presenceLoop()
	return hub
}

// run is the main hub loop.
func (h *Hub) run() {
	defer close(h.done)

	ticker := time.NewTicker(h.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case conn := <-h.register:
			h.registerConnection(conn)
		case conn := <-h.unregister:
			h.unregisterConnection(conn)
		case <-ticker.C:
			h.sweepHeartbeats()
		}
	}
}

// registerConnection inserts a connection into the registry and triggers a
// presence broadcast.
func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	if atomic.LoadInt64(&h.connCount) >= h.config.MaxConnections {
		h.mu.Unlock()
		logger.Warn("connection limit exceeded", zap.Int64("max", h.config.MaxConnections))
		conn.closeWithCode(websocket.CloseTryAgainLater, "connection limit exceeded")
		// The connection never enters the registry, so unregister will not
		// release its write pump. Do it here.
		conn.closeSend()
		return
	}

	h.conns[conn.ID] = conn
	if h.userConns[conn.UserID] == nil {
		h.userConns[conn.UserID] = make(map[string]*Connection)
	}
	h.userConns[conn.UserID][conn.ID] = conn
	atomic.AddInt64(&h.connCount, 1)
	h.mu.Unlock()

	logger.Info("connection registered",
		zap.String("conn", conn.ID), zap.String("user", conn.UserID),
		zap.Int64("total", atomic.LoadInt64(&h.connCount)))

	h.notifyPresence()
}

// unregisterConnection removes a connection, closes its send queue and
// triggers a presence broadcast. Removal happens before the handle is
// finally discarded by the read pump.
func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()
	if _, exists := h.conns[conn.ID]; !exists {
		h.mu.Unlock()
		return
	}
	delete(h.conns, conn.ID)
	if m := h.userConns[conn.UserID]; m != nil {
		delete(m, conn.ID)
		if len(m) == 0 {
			delete(h.userConns, conn.UserID)
		}
	}
	atomic.AddInt64(&h.connCount, -1)
	conn.closeSend()
	h.mu.Unlock()

	logger.Info("connection unregistered",
		zap.String("conn", conn.ID), zap.String("user", conn.UserID),
		zap.Int64("total", atomic.LoadInt64(&h.connCount)))

	h.notifyPresence()
}

// notifyPresence kicks the presence loop. The one-slot channel coalesces a
// burst of membership changes into a single snapshot computed after the last
// change, and serializing through one loop keeps snapshots in order: clients
// can never end up on a stale final snapshot.
func (h *Hub) notifyPresence() {
	select {
	case h.presenceKick <- struct{}{}:
	default:
	}
}

func (h *Hub) presenceLoop() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.presenceKick:
			h.broadcastPresence()
		}
	}
}

// sweepHeartbeats is the fixed-interval liveness sweep: a connection that
// has not answered the previous probe is terminated; every survivor is
// marked not-alive and probed again. The pong handler flips the flag back,
// so a dead peer is evicted within two intervals.
func (h *Hub) sweepHeartbeats() {
	for _, conn := range h.snapshotConns() {
		if !conn.alive() {
			logger.Warn("terminating inactive connection",
				zap.String("conn", conn.ID), zap.String("user", conn.UserID))
			conn.terminate()
			continue
		}
		conn.setAlive(false)
		if err := conn.ping(); err != nil {
			logger.Debug("heartbeat ping failed",
				zap.Error(err), zap.String("conn", conn.ID))
		}
	}
}

// routeChat persists a chat message and fans the stored record out to every
// connection of the recipient. Persistence failure drops the frame: no
// delivery attempt, no retry, no error signal to the sender.
func (h *Hub) routeChat(sender *Connection, recipient, text string) {
	rec, err := h.store.Create(context.Background(), sender.UserID, recipient, text)
	if err != nil {
		logger.Error("chat message persistence failed",
			zap.Error(err), zap.String("sender", sender.UserID), zap.String("recipient", recipient))
		return
	}

	payload, err := marshalFrame(deliveredMessage{
		ID:        rec.ID,
		Sender:    rec.Sender,
		Text:      rec.Text,
		Recipient: rec.Recipient,
		CreatedAt: rec.CreatedAt,
	})
	if err != nil {
		logger.Error("chat message serialization failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	matches := make([]*Connection, 0, len(h.userConns[recipient]))
	for _, conn := range h.userConns[recipient] {
		matches = append(matches, conn)
	}
	h.mu.RUnlock()

	for _, conn := range matches {
		h.trySend(conn, payload)
	}
}

// trySend enqueues without blocking; a full send buffer drops the frame
// (delivery is best-effort). The registry check under the read lock keeps a
// concurrent unregister from closing the queue mid-send.
func (h *Hub) trySend(conn *Connection, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, exists := h.conns[conn.ID]; !exists {
		return
	}
	select {
	case conn.send <- data:
	default:
		logger.Warn("send buffer full, frame dropped",
			zap.String("conn", conn.ID), zap.String("user", conn.UserID))
	}
}

func (h *Hub) snapshotConns() []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Connection, 0, len(h.conns))
	for _, conn := range h.conns {
		out = append(out, conn)
	}
	return out
}

// ConnectionCount returns the current number of registered connections.
func (h *Hub) ConnectionCount() int64 {
	return atomic.LoadInt64(&h.connCount)
}

// UserConnectionCount returns the number of live connections for one user.
func (h *Hub) UserConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userConns[userID])
}

// Shutdown stops the heartbeat timer first, then closes every registered
// connection and releases its write pump. It does not wait for in-flight
// persistence. Safe to call more than once.
func (h *Hub) Shutdown() {
	h.cancel()
	<-h.done

	conns := h.snapshotConns()
	for _, conn := range conns {
		conn.closeWithCode(websocket.CloseGoingAway, "server shutting down")
	}

	// Empty the registry before closing the send queues so a broadcast still
	// in flight fails the trySend membership check instead of hitting a
	// closed channel.
	h.mu.Lock()
	h.conns = make(map[string]*Connection)
	h.userConns = make(map[string]map[string]*Connection)
	atomic.StoreInt64(&h.connCount, 0)
	h.mu.Unlock()

	for _, conn := range conns {
		conn.closeSend()
	}

	logger.Info("gateway hub closed")
}
