package orderControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/garghot/food-client/logger"
	"github.com/garghot/food-client/middleware"
	"github.com/garghot/food-client/orders"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HistoryMessage is what the hub pushes to connected clients.
type HistoryMessage struct {
	Type   string         `json:"type"`
	Orders []orders.Entry `json:"orders"`
}

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub pushes order history to the websocket clients of each user.
type Hub struct {
	api orders.ClientOrders
	log *logger.Logger

	mu      sync.Mutex
	clients map[string]map[*wsClient]struct{}
	last    map[string][]byte
}

func NewHub(api orders.ClientOrders, log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Discard()
	}
	return &Hub{
		api:     api,
		log:     log,
		clients: make(map[string]map[*wsClient]struct{}),
		last:    make(map[string][]byte),
	}
}

// GET /user/orders/ws
func (h *Hub) OrderWebSocketHandler(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	client := &wsClient{conn: conn}
	h.register(uid, client)
	defer h.unregister(uid, client)

	if data, err := h.snapshot(c.Request.Context(), uid); err == nil {
		if err := client.write(data); err != nil {
			return
		}
	} else {
		h.log.Warn("orders_ws_snapshot", uid, err.Error())
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) register(uid string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[uid] == nil {
		h.clients[uid] = make(map[*wsClient]struct{})
	}
	h.clients[uid][client] = struct{}{}
}

func (h *Hub) unregister(uid string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[uid], client)
	if len(h.clients[uid]) == 0 {
		delete(h.clients, uid)
		delete(h.last, uid)
	}
}

// Connected returns the number of open connections of a user.
func (h *Hub) Connected(uid string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[uid])
}

func (h *Hub) snapshot(ctx context.Context, uid string) ([]byte, error) {
	entries, err := orders.History(ctx, h.api, uid)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(HistoryMessage{Type: "orders", Orders: entries})
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.last[uid] = data
	h.mu.Unlock()
	return data, nil
}

// Notify pushes the current history of uid to all of its connections.
func (h *Hub) Notify(ctx context.Context, uid string) {
	if h.Connected(uid) == 0 {
		return
	}
	data, err := h.snapshot(ctx, uid)
	if err != nil {
		h.log.Warn("orders_ws_notify", uid, err.Error())
		return
	}
	h.broadcast(uid, data)
}

func (h *Hub) broadcast(uid string, data []byte) {
	h.mu.Lock()
	targets := make([]*wsClient, 0, len(h.clients[uid]))
	for client := range h.clients[uid] {
		targets = append(targets, client)
	}
	h.mu.Unlock()

	for _, client := range targets {
		if err := client.write(data); err != nil {
			_ = client.conn.Close()
			h.unregister(uid, client)
		}
	}
}

// Poll refetches the history of every connected user and pushes it when it
// changed since the last push.
func (h *Hub) Poll(ctx context.Context) {
	h.mu.Lock()
	users := make([]string, 0, len(h.clients))
	previous := make(map[string][]byte, len(h.clients))
	for uid := range h.clients {
		users = append(users, uid)
		previous[uid] = h.last[uid]
	}
	h.mu.Unlock()

	for _, uid := range users {
		data, err := h.snapshot(ctx, uid)
		if err != nil {
			h.log.Warn("orders_ws_poll", uid, err.Error())
			continue
		}
		if bytes.Equal(previous[uid], data) {
			continue
		}
		h.log.Debug("orders_ws_push", uid, "order history changed", slog.Int("bytes", len(data)))
		h.broadcast(uid, data)
	}
}

// Run polls every interval until ctx is done.
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Poll(ctx)
		}
	}
}
