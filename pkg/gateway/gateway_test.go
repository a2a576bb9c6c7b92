package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/code-100-precent/LingChat/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	if logger.Lg == nil {
		logger.Lg = zap.NewNop()
	}
}

var testIdentities = map[string]*Identity{
	"alice-token": {UserID: "u-alice", FirstName: "Alice", LastName: "Liddell"},
	"bob-token":   {UserID: "u-bob", FirstName: "Bob", LastName: "Marley"},
	"carol-token": {UserID: "u-carol", FirstName: "Carol", LastName: "Danvers"},
}

func testVerifier() TokenVerifier {
	return VerifierFunc(func(token string) (*Identity, error) {
		if ident, ok := testIdentities[token]; ok {
			return ident, nil
		}
		return nil, errors.New("credential rejected")
	})
}

type stubStore struct {
	mu      sync.Mutex
	created []*StoredMessage
	fail    bool
}

func (s *stubStore) Create(_ context.Context, sender, recipient, text string) (*StoredMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("store unavailable")
	}
	rec := &StoredMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Recipient: recipient,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.created = append(s.created, rec)
	return rec, nil
}

func (s *stubStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

type stubProfiles struct {
	mu    sync.Mutex
	links map[string]string
	fail  map[string]bool
}

func (p *stubProfiles) AvatarLink(_ context.Context, userID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail[userID] {
		return "", errors.New("profile lookup failed")
	}
	return p.links[userID], nil
}

// setupGateway wires a hub behind a real HTTP server so tests exercise the
// full handshake, upgrade and pump path.
func setupGateway(t *testing.T, config *Config, store MessageStore, profiles ProfileResolver) (*Hub, *gin.Engine, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if config == nil {
		config = DefaultConfig()
	}
	if store == nil {
		store = &stubStore{}
	}
	if profiles == nil {
		profiles = &stubProfiles{links: map[string]string{}}
	}

	hub := NewHub(config, testVerifier(), store, profiles)
	router := gin.New()
	RegisterRoutes(router, NewHandler(hub))
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		hub.Shutdown()
	})
	return hub, router, server
}

func wsURL(server *httptest.Server, token string) string {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + DefaultPath
	if token != "" {
		url += "?" + TokenQueryParam + "=" + token
	}
	return url
}

func dial(t *testing.T, server *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, token), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// awaitFrame reads frames until one matches or the timeout expires. Presence
// pushes interleave with everything else, so tests must skip frames they are
// not looking for.
func awaitFrame(t *testing.T, conn *websocket.Conn, timeout time.Duration, match func(map[string]any) bool) map[string]any {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		conn.SetReadDeadline(deadline)
		_, data, err := conn.ReadMessage()
		require.NoError(t, err, "expected frame not received")
		var frame map[string]any
		if json.Unmarshal(data, &frame) != nil {
			continue
		}
		if match(frame) {
			return frame
		}
	}
}

// expectNoFrame drains the connection for the given window and fails if a
// matching frame shows up. The connection is unusable afterwards.
func expectNoFrame(t *testing.T, conn *websocket.Conn, window time.Duration, match func(map[string]any) bool) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(window))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame map[string]any
		if json.Unmarshal(data, &frame) != nil {
			continue
		}
		if match(frame) {
			t.Fatalf("unexpected frame received: %s", data)
		}
	}
}

func isDelivered(frame map[string]any) bool {
	_, ok := frame["_id"]
	return ok
}

func isPong(frame map[string]any) bool {
	return frame["type"] == MessageTypePong
}

func hasOnline(n int) func(map[string]any) bool {
	return func(frame map[string]any) bool {
		online, ok := frame["online"].([]any)
		return ok && len(online) == n
	}
}
