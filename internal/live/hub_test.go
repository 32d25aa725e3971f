package live_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mauv0809/padel-tournament/internal/live"
	"github.com/mauv0809/padel-tournament/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHub(t *testing.T, origins ...string) (*live.Hub, *metrics.Mock, *httptest.Server) {
	t.Helper()
	m := metrics.NewMock()
	hub := live.NewHub(m, origins)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, strings.TrimPrefix(r.URL.Path, "/ws/"))
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, m, srv
}

func dial(t *testing.T, srv *httptest.Server, category string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + category
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) live.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg live.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubDeliversToCategoryRoom(t *testing.T) {
	hub, m, srv := setupHub(t)

	men := dial(t, srv, "5ta-masculino")
	women := dial(t, srv, "5ta-femenino")

	assert.Equal(t, live.TypeSubscribed, readMessage(t, men).Type)
	assert.Equal(t, live.TypeSubscribed, readMessage(t, women).Type)
	assert.Equal(t, 2, m.LiveConnections())

	hub.Publish("5ta-masculino", live.TypeResultRecorded, map[string]string{"match_id": "m1"})
	hub.Publish("5ta-femenino", live.TypeStandingsUpdated, nil)

	msg := readMessage(t, men)
	assert.Equal(t, live.TypeResultRecorded, msg.Type)
	assert.Equal(t, "5ta-masculino", msg.Category)
	assert.Equal(t, map[string]any{"match_id": "m1"}, msg.Payload)

	msg = readMessage(t, women)
	assert.Equal(t, live.TypeStandingsUpdated, msg.Type)
}

func TestHubUnregistersClosedClients(t *testing.T) {
	_, m, srv := setupHub(t)

	conn := dial(t, srv, "5ta-masculino")
	readMessage(t, conn)
	require.Equal(t, 1, m.LiveConnections())

	conn.Close()
	assert.Eventually(t, func() bool { return m.LiveConnections() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubRejectsUnknownOrigin(t *testing.T) {
	_, _, srv := setupHub(t, "https://padel.example.com")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/5ta-masculino"
	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPublishAfterStopDoesNotBlock(t *testing.T) {
	hub := live.NewHub(metrics.NewMock(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	for i := 0; i < 100; i++ {
		hub.Publish("5ta-masculino", live.TypeBracketUpdated, nil)
	}
}

func TestMockRecordsByType(t *testing.T) {
	m := live.NewMock()
	m.Publish("c", live.TypeResultRecorded, 1)
	m.Publish("c", live.TypeStandingsUpdated, 2)
	assert.Len(t, m.Published(live.TypeResultRecorded), 1)
	assert.Len(t, m.Published(live.TypeBracketUpdated), 0)
}
