package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleUpgrade_MissingToken(t *testing.T) {
	_, _, server := setupGateway(t, nil, nil, nil)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleUpgrade_InvalidToken(t *testing.T) {
	_, _, server := setupGateway(t, nil, nil, nil)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "forged-token"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHandleUpgrade_MissingHost(t *testing.T) {
	_, router, _ := setupGateway(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, DefaultPath+"?token=alice-token", nil)
	req.Host = ""
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ReasonBadRequest)
}

func TestHandleUpgrade_TokenFromCookie(t *testing.T) {
	hub, _, server := setupGateway(t, nil, nil, nil)

	header := http.Header{}
	header.Set("Cookie", AuthCookieName+"=alice-token")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, ""), header)
	require.NoError(t, err)
	defer conn.Close()

	awaitFrame(t, conn, time.Second, hasOnline(1))
	assert.Equal(t, int64(1), hub.ConnectionCount())
}

func TestHandleUpgrade_QueryTokenPreferredOverCookie(t *testing.T) {
	hub, _, server := setupGateway(t, nil, nil, nil)

	// An expired cookie next to a fresh query token must not break the dial.
	header := http.Header{}
	header.Set("Cookie", AuthCookieName+"=forged-token")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, "bob-token"), header)
	require.NoError(t, err)
	defer conn.Close()

	awaitFrame(t, conn, time.Second, hasOnline(1))
	assert.Equal(t, 1, hub.UserConnectionCount("u-bob"))
}

func TestAttach_RejectsMissingIdentity(t *testing.T) {
	hub, _, _ := setupGateway(t, nil, nil, nil)
	handler := NewHandler(hub)

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		handler.Attach(ws, nil)
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+server.URL[4:], nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, CloseAuthFailure), "expected close %d, got %v", CloseAuthFailure, err)
	assert.Equal(t, int64(0), hub.ConnectionCount())
}

func TestGetStats(t *testing.T) {
	_, _, server := setupGateway(t, nil, nil, nil)

	conn := dial(t, server, "alice-token")
	awaitFrame(t, conn, time.Second, hasOnline(1))

	resp, err := http.Get(server.URL + DefaultPath + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
