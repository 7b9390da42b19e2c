package observer

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/testutil"
)

func dialTestServer(t *testing.T, manager *HubManager) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(w, r, manager, testutil.NopLogger())
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		resp.Body.Close()
		conn.Close()
	})
	return conn
}

func subscribe(t *testing.T, conn *websocket.Conn, roomID string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]string{
		"type":   "SUBSCRIBE",
		"roomId": roomID,
	}))
}

// A connection observes exactly one room: repeated SUBSCRIBE messages must
// neither crash the hub nor detach the existing subscription.
func TestRepeatedSubscribeIsIgnored(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	conn := dialTestServer(t, manager)

	subscribe(t, conn, "r1")
	subscribe(t, conn, "r1")
	subscribe(t, conn, "r2")

	require.Eventually(t, func() bool {
		hub := manager.GetHub("r1")
		return hub != nil && hub.SubscriberCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Still subscribed to the first room only
	if hub := manager.GetHub("r2"); hub != nil {
		assert.Equal(t, 0, hub.SubscriberCount())
	}

	for i := 0; i < 2; i++ {
		manager.Publish("r1", model.GameUpdate{
			Event:      model.EventGameUpdate,
			RoomID:     "r1",
			MaskedWord: "M____",
		})

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var update model.GameUpdate
		require.NoError(t, conn.ReadJSON(&update))
		assert.Equal(t, model.RoomID("r1"), update.RoomID)
	}
}

func TestRegisterAfterCloseAllDoesNotBlock(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub := manager.GetOrCreateHub("r1")
	manager.CloseAll()

	done := make(chan struct{})
	go func() {
		c := newTestClient()
		hub.Register(c)
		hub.Unregister(c)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked after shutdown")
	}
}
