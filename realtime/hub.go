package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"food-delivery-app/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// sendBuffer is how many events may queue for one subscriber before it is dropped.
	sendBuffer = 32
)

var errSlowSubscriber = errors.New("subscriber send buffer full")

type hubClient struct {
	conn    *websocket.Conn
	channel string
	send    chan []byte
}

// writePump delivers queued events until send is closed or a write fails.
func (c *hubClient) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Failure("realtime", "hub-write", err).WithField("channel", c.channel).Warn("dropping subscriber")
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Hub is an in-process WebSocket fan-out keyed by channel name. Publish only
// queues; each subscriber has its own writer goroutine.
type Hub struct {
	mu       sync.Mutex
	channels map[string]map[*hubClient]struct{}
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[*hubClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and keeps the connection subscribed to channel
// until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, channel string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &hubClient{conn: conn, channel: channel, send: make(chan []byte, sendBuffer)}
	h.register(c)
	go c.writePump()
	defer h.unregister(c)

	// Subscribers never send anything meaningful; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

func (h *Hub) register(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.channels[c.channel]
	if !ok {
		set = make(map[*hubClient]struct{})
		h.channels[c.channel] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked detaches c and closes its queue, which ends its writer.
// h.mu must be held. Removing a client twice is a no-op.
func (h *Hub) removeLocked(c *hubClient) {
	set, ok := h.channels[c.channel]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.channels, c.channel)
	}
	close(c.send)
}

// Subscribers returns the number of live connections on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels[channel])
}

// Publish queues ev for every subscriber of its channel without waiting on
// the network. A subscriber whose queue is full is dropped.
func (h *Hub) Publish(_ context.Context, ev Event) error {
	data, err := json.Marshal(ev.Message())
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.channels[ev.Channel] {
		select {
		case c.send <- data:
		default:
			logger.Failure("realtime", "hub-send", errSlowSubscriber).WithField("channel", ev.Channel).Warn("dropping subscriber")
			h.removeLocked(c)
		}
	}
	return nil
}
