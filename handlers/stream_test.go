package handlers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextEvent reads SSE lines until an event name is seen.
func nextEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if name, ok := strings.CutPrefix(strings.TrimSpace(line), "event:"); ok {
			return strings.TrimSpace(name)
		}
	}
}

func TestChatEvents_StreamsAppendedTurns(t *testing.T) {
	h := newHarness(t)
	h.seedProfile()
	id := openChat(t, h)

	srv := httptest.NewServer(h.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/chat/sessions/"+id+"/events?token="+h.token, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := bufio.NewReader(resp.Body)
	require.Equal(t, "ready", nextEvent(t, events))

	w := h.do(http.MethodPost, "/api/chat/sessions/"+id+"/messages", map[string]string{"message": "hello"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "turn", nextEvent(t, events))
	assert.Equal(t, "turn", nextEvent(t, events))

	w = h.do(http.MethodDelete, "/api/chat/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "closed", nextEvent(t, events))
}

func TestChatEvents_UnknownSession(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/chat/sessions/missing/events", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatWebsocket_SendsTurns(t *testing.T) {
	h := newHarness(t)
	h.seedProfile()
	id := openChat(t, h)

	srv := httptest.NewServer(h.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/sessions/" + id + "/ws?token=" + h.token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.NoError(t, conn.WriteJSON(map[string]string{"message": "What investments should I consider?"}))

	var reply wsReply
	require.NoError(t, conn.ReadJSON(&reply))
	require.NotNil(t, reply.View)
	assert.Empty(t, reply.Error)
	assert.Len(t, reply.View.Turns, 3)

	require.NoError(t, conn.WriteJSON(map[string]string{"message": ""}))
	reply = wsReply{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "message is empty", reply.Error)
}

func TestChatWebsocket_RequiresSession(t *testing.T) {
	h := newHarness(t)
	srv := httptest.NewServer(h.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/sessions/x/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChatEvents_ClosedSession(t *testing.T) {
	h := newHarness(t)
	h.seedProfile()
	id := openChat(t, h)
	require.Equal(t, http.StatusOK, h.do(http.MethodDelete, "/api/chat/sessions/"+id, nil).Code)

	w := h.do(http.MethodGet, "/api/chat/sessions/"+id+"/events", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOpenChat_ReplacesPreviousSession(t *testing.T) {
	h := newHarness(t)
	h.seedProfile()
	first := openChat(t, h)
	second := openChat(t, h)

	assert.NotEqual(t, first, second)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/chat/sessions/"+first, nil).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/chat/sessions/"+second, nil).Code)
}
