// Package transport upgrades HTTP connections to websockets and frames
// the inbound/outbound JSON envelopes onto the session router, using a
// per-client read/write pump shape: one goroutine per direction,
// register/unregister by direct Router calls.
package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"badicecream/internal/events"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Any origin: the game client is served from the same process or a
	// separate static host, neither of which this layer can enumerate.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Router is the narrow view of the session router a Client needs: enough
// to register/unregister its outbound channel and route inbound frames.
type Router interface {
	Connect(userID string) chan events.Outbound
	Disconnect(userID string)
	Dispatch(userID string, raw []byte)
}

// Client owns one user's websocket connection and the two pump goroutines
// that move frames between it and the router. There is no single
// in-process hub to serialize through: register/unregister become direct
// Router calls.
type Client struct {
	conn   *websocket.Conn
	router Router
	userID string
	log    *logrus.Entry
}

// ServeWS upgrades r into a websocket for userID and blocks until the
// connection closes, running both pumps. Call from an http.HandlerFunc
// once userID has been resolved (matchmaking join, or an existing
// session token).
func ServeWS(router Router, log *logrus.Logger, userID string, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := &Client{
		conn:   conn,
		router: router,
		userID: userID,
		log:    log.WithField("userId", userID),
	}

	out := router.Connect(userID)
	done := make(chan struct{})
	go c.writePump(out, done)
	c.readPump(done)
}

func (c *Client) readPump(done chan struct{}) {
	defer func() {
		close(done)
		c.router.Disconnect(c.userID)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Debug("websocket read error")
			}
			return
		}
		c.router.Dispatch(c.userID, raw)
	}
}

func (c *Client) writePump(out <-chan events.Outbound, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-out:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			payload, err := json.Marshal(msg)
			if err != nil {
				c.log.WithError(err).Warn("failed to marshal outbound message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
