package observer

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wordduel/wordduel/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SubscribeMessage is the control message a client sends after connecting
// to pick the room it observes.
type SubscribeMessage struct {
	Type   string       `json:"type"`
	RoomID model.RoomID `json:"roomId"`
}

// TypeSubscribe is the control message type for subscribing to a room
const TypeSubscribe = "SUBSCRIBE"

// Client represents one subscribed connection
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// ServeWS upgrades the request to a websocket and runs the subscription
// lifecycle: the client sends a SUBSCRIBE control message choosing a room,
// then receives every subsequent broadcast for that room until it disconnects.
func ServeWS(w http.ResponseWriter, r *http.Request, manager *HubManager, logger *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	go client.writePump()
	client.readPump(manager)
}

// readPump consumes control messages until the connection drops. The first
// SUBSCRIBE registers the client with the room's hub; a connection observes
// exactly one room, so later SUBSCRIBE messages are ignored.
func (c *Client) readPump(manager *HubManager) {
	defer func() {
		if c.hub != nil {
			c.hub.Unregister(c)
		}
		_ = c.conn.Close()
	}()

	for {
		var msg SubscribeMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		if msg.Type != TypeSubscribe || msg.RoomID == "" || c.hub != nil {
			continue
		}

		c.hub = manager.GetOrCreateHub(msg.RoomID)
		c.hub.Register(c)
	}
}

// writePump forwards broadcasts to the connection and keeps it alive with
// pings. A write failure ends the connection; the hub drops the client when
// readPump unregisters it.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
