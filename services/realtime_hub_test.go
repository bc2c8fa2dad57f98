package services

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialHub starts a websocket endpoint that registers each connection with the hub
// and returns the client side of one connection plus its registered server client.
func dialHub(t *testing.T, hub *RealtimeHub) (*websocket.Conn, *WSClient) {
	t.Helper()
	registered := make(chan *WSClient, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cl := &WSClient{UserID: "u1", Conn: conn}
		hub.Register(cl)
		registered <- cl
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	select {
	case cl := <-registered:
		return conn, cl
	case <-time.After(2 * time.Second):
		t.Fatal("connection was not registered")
		return nil, nil
	}
}

func TestRealtimeHubPublishDeliversToUser(t *testing.T) {
	log, _ := test.NewNullLogger()
	hub := NewRealtimeHub(log)
	conn, _ := dialHub(t, hub)
	assert.Equal(t, 1, hub.Connections("u1"))

	hub.Publish("u1", models.Event{Kind: "meal.logged"})
	hub.Publish("u2", models.Event{Kind: "meal.deleted"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), `"meal.logged"`)
}

func TestRealtimeWriteTimesOutOnStalledClient(t *testing.T) {
	prev := writeWait
	writeWait = 50 * time.Millisecond
	t.Cleanup(func() { writeWait = prev })

	log, _ := test.NewNullLogger()
	hub := NewRealtimeHub(log)
	_, cl := dialHub(t, hub) // the client never reads

	payload := bytes.Repeat([]byte("x"), 1<<20)
	done := make(chan error, 1)
	go func() {
		for i := 0; i < 256; i++ {
			if err := cl.write(websocket.TextMessage, payload); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("write blocked on a stalled client")
	}

	// the hub lock is not held by the failed writer
	unregistered := make(chan struct{})
	go func() {
		hub.Unregister(cl)
		close(unregistered)
	}()
	select {
	case <-unregistered:
	case <-time.After(2 * time.Second):
		t.Fatal("unregister blocked")
	}
	assert.Zero(t, hub.Connections("u1"))
}
