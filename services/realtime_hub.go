package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/sirupsen/logrus"
)

type WSClient struct {
	UserID string
	Conn   *websocket.Conn
	mu     sync.Mutex // one writer at a time per connection
}

// writeWait bounds each socket write so a stalled client cannot hold the hub.
var writeWait = 10 * time.Second

func (c *WSClient) write(msgType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.Conn.WriteMessage(msgType, data)
}

// Ping keeps the connection alive through proxies.
func (c *WSClient) Ping() error { return c.write(websocket.PingMessage, nil) }

// RealtimeHub fans events out to every open connection of a user.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
	log     *logrus.Logger
}

func NewRealtimeHub(log *logrus.Logger) *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{}), log: log}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	if c.Conn != nil {
		_ = c.Conn.Close()
	}
}

// Connections reports how many sockets a user has open.
func (h *RealtimeHub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *RealtimeHub) Publish(userID string, ev models.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).WithField("kind", ev.Kind).Error("encode realtime event")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			h.log.WithError(err).WithField("user_id", userID).Debug("realtime write failed")
		}
	}
}

var _ EventPublisher = (*RealtimeHub)(nil)
