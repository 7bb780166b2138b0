package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers on other origins are the expected clients.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client is one websocket connection. It may join any number of board rooms;
// the hub drops it from all of them on disconnect.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Event
}

// clientMessage is the inbound room control protocol.
type clientMessage struct {
	Action  string `json:"action"`
	BoardID string `json:"boardId"`
}

func serveWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorf("Error upgrading websocket: %v", err)
		return
	}
	c := &client{hub: hub, conn: conn, send: make(chan Event, sendBuffer)}
	hub.register(c)
	zap.S().Infof("Websocket client connected from %s", conn.RemoteAddr())

	go c.writePump()
	c.readPump()
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
		zap.S().Infof("Websocket client disconnected from %s", c.conn.RemoteAddr())
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.S().Warnf("Websocket read error: %v", err)
			}
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			zap.S().Warnf("Ignoring malformed websocket message: %v", err)
			continue
		}
		switch msg.Action {
		case "join_board":
			if isObjectID(msg.BoardID) {
				c.hub.join(c, msg.BoardID)
				zap.S().Infof("Client joined board room %s", msg.BoardID)
			}
		case "leave_board":
			c.hub.leave(c, msg.BoardID)
			zap.S().Infof("Client left board room %s", msg.BoardID)
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
