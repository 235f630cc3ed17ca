package live

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

const broadcastBuffer = 256

type directMessage struct {
	to  *Client
	msg ServerMessage
}

var (
	ErrBroadcastFull = errors.New("live: broadcast buffer full")
	ErrHubStopped    = errors.New("live: hub stopped")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the API has no browser-facing auth, so any origin may watch
	CheckOrigin: func(*http.Request) bool { return true },
}

// Hub tracks connected clients and fans match events out to the ones subscribed.
// Run owns the client set; everything else talks to it over channels.
type Hub struct {
	clients    map[*Client]struct{}
	count      int
	countMu    sync.RWMutex
	broadcast  chan model.MatchEvent
	register   chan *Client
	unregister chan *Client
	replies    chan directMessage
	done       chan struct{}
	log        zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan model.MatchEvent, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		replies:    make(chan directMessage, broadcastBuffer),
		done:       make(chan struct{}),
		log:        logger.With().Str("module", "live").Str("component", "hub").Logger(),
	}
}

// Run blocks until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	h.log.Info().Msg("hub started")
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setCount(len(h.clients))
			h.log.Debug().Str("client_id", c.ID).Str("match_id", c.Subscription()).Int("clients", len(h.clients)).Msg("client connected")
		case c := <-h.unregister:
			h.remove(c)
		case ev := <-h.broadcast:
			h.fanOut(ev)
		case d := <-h.replies:
			if _, ok := h.clients[d.to]; ok {
				d.to.trySend(d.msg)
			}
		}
	}
}

// Notify queues an event for delivery without blocking the caller.
func (h *Hub) Notify(ctx context.Context, ev model.MatchEvent) error {
	// a stopped hub still has buffer room, so done must win before the send is tried
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case h.broadcast <- ev:
		return nil
	default:
		return ErrBroadcastFull
	}
}

// Register adds a client; a no-op once the hub has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

// Unregister removes a client; safe to call more than once and after Run returns.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) reply(c *Client, msg ServerMessage) {
	select {
	case h.replies <- directMessage{to: c, msg: msg}:
	case <-h.done:
	}
}

// ClientCount is the number of connected clients.
func (h *Hub) ClientCount() int {
	h.countMu.RLock()
	defer h.countMu.RUnlock()
	return h.count
}

// Serve upgrades the request and starts the client pumps. The pumps live on ctx, not on the
// request, because the request context ends when the handler returns.
func (h *Hub) Serve(ctx context.Context, w http.ResponseWriter, r *http.Request, matchID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := newClient(uuid.NewString(), matchID, conn, h, h.log)
	h.Register(c)
	go c.writePump(ctx)
	go c.readPump(ctx)
	return nil
}

func (h *Hub) fanOut(ev model.MatchEvent) {
	msg := ServerMessage{Type: TypeEvent, Event: &ev, MatchID: ev.MatchID, Timestamp: time.Now().UTC()}
	sent, dropped := 0, 0
	for c := range h.clients {
		if !c.wants(ev.MatchID) {
			continue
		}
		if c.trySend(msg) {
			sent++
			continue
		}
		dropped++
		h.log.Warn().Str("client_id", c.ID).Msg("client too slow, disconnecting")
		h.remove(c)
	}
	h.log.Debug().Str("event", string(ev.Type)).Str("match_id", ev.MatchID).Int("sent", sent).Int("dropped", dropped).Msg("event broadcast")
}

func (h *Hub) remove(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.setCount(len(h.clients))
	h.log.Debug().Str("client_id", c.ID).Int("clients", len(h.clients)).Msg("client disconnected")
}

func (h *Hub) shutdown() {
	h.log.Info().Int("clients", len(h.clients)).Msg("hub stopping")
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.setCount(0)
}

func (h *Hub) setCount(n int) {
	h.countMu.Lock()
	h.count = n
	h.countMu.Unlock()
}
