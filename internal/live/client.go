package live

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

// clientHub is the part of Hub a client talks to. Replies go through the hub so that only
// the Run loop ever writes to or closes send.
type clientHub interface {
	Unregister(c *Client)
	reply(c *Client, msg ServerMessage)
}

// Client is one WebSocket connection subscribed to at most one match.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan ServerMessage
	hub  clientHub
	log  zerolog.Logger

	mu      sync.RWMutex
	matchID string
}

func newClient(id, matchID string, conn *websocket.Conn, hub clientHub, logger zerolog.Logger) *Client {
	return &Client{
		ID:      id,
		conn:    conn,
		send:    make(chan ServerMessage, sendBufferSize),
		hub:     hub,
		matchID: matchID,
		log:     logger.With().Str("client_id", id).Logger(),
	}
}

// Subscription returns the match id this client follows; empty means all.
func (c *Client) Subscription() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.matchID
}

func (c *Client) subscribe(matchID string) {
	c.mu.Lock()
	c.matchID = matchID
	c.mu.Unlock()
}

func (c *Client) wants(matchID string) bool {
	sub := c.Subscription()
	return sub == "" || sub == matchID
}

// trySend never blocks; false means the client is too slow. Only the hub's Run loop calls it.
func (c *Client) trySend(msg ServerMessage) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if ctx.Err() != nil {
			return
		}
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("unexpected close")
			}
			return
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg ClientMessage) {
	switch msg.Type {
	case TypeSubscribe:
		c.subscribe(msg.MatchID)
	case TypeUnsubscribe:
		c.subscribe("")
	default:
		c.hub.reply(c, ServerMessage{Type: TypeError, Error: "unknown message type: " + msg.Type, Timestamp: time.Now().UTC()})
		return
	}
	c.hub.reply(c, ServerMessage{Type: TypeSubscribed, MatchID: c.Subscription(), Timestamp: time.Now().UTC()})
}

func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.Debug().Err(err).Msg("write failed")
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
