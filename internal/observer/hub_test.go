package observer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/testutil"
)

func newTestClient() *Client {
	return &Client{send: make(chan []byte, sendBufferSize)}
}

func recvUpdate(t *testing.T, c *Client) model.GameUpdate {
	t.Helper()
	select {
	case data := <-c.send:
		var update model.GameUpdate
		require.NoError(t, json.Unmarshal(data, &update))
		return update
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for push")
		return model.GameUpdate{}
	}
}

func TestPublishReachesAllRoomSubscribers(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	hub := manager.GetOrCreateHub("r1")
	c1 := newTestClient()
	c2 := newTestClient()
	hub.Register(c1)
	hub.Register(c2)

	manager.Publish("r1", model.GameUpdate{
		Event:             model.EventGameUpdate,
		RoomID:            "r1",
		MaskedWord:        "M____",
		RemainingAttempts: 6,
		CurrentTurnUserID: "u2",
		Status:            model.RoomStatusInProgress,
	})

	for _, c := range []*Client{c1, c2} {
		update := recvUpdate(t, c)
		assert.Equal(t, model.EventGameUpdate, update.Event)
		assert.Equal(t, "M____", update.MaskedWord)
		assert.Equal(t, model.UserID("u2"), update.CurrentTurnUserID)
	}
}

func TestPublishDoesNotCrossRooms(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	c1 := newTestClient()
	manager.GetOrCreateHub("r1").Register(c1)
	c2 := newTestClient()
	manager.GetOrCreateHub("r2").Register(c2)

	manager.Publish("r1", model.GameUpdate{Event: model.EventGameUpdate, RoomID: "r1"})

	update := recvUpdate(t, c1)
	assert.Equal(t, model.RoomID("r1"), update.RoomID)

	select {
	case <-c2.send:
		t.Fatal("subscriber of r2 received a push for r1")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	// No hub exists for the room; must not panic or block
	manager.Publish("r1", model.GameUpdate{Event: model.EventGameUpdate, RoomID: "r1"})
	assert.Nil(t, manager.GetHub("r1"))
}

func TestUnregisterStopsDelivery(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	hub := manager.GetOrCreateHub("r1")
	c := newTestClient()
	hub.Register(c)
	hub.Unregister(c)

	// Unregister closes the send channel
	select {
	case _, ok := <-c.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on unregister")
	}

	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestGetOrCreateHubReturnsSameHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.CloseAll()

	h1 := manager.GetOrCreateHub("r1")
	h2 := manager.GetOrCreateHub("r1")
	assert.Same(t, h1, h2)
}

func TestCloseAllDisconnectsSubscribers(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub := manager.GetOrCreateHub("r1")
	c := newTestClient()
	hub.Register(c)

	manager.CloseAll()

	select {
	case _, ok := <-c.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed on shutdown")
	}
	assert.Nil(t, manager.GetHub("r1"))
}
