package events

import (
	"context"
	"net/http"
	"slot_machine/internal/converter"
	"slot_machine/internal/model"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	sendBuffer = 256
)

// Hub раздаёт события сессии подключённым websocket клиентам
type Hub struct {
	mtx      sync.RWMutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.Named("ws"),
	}
}

// Publish не блокируется: медленный клиент теряет сообщение
func (h *Hub) Publish(_ context.Context, e model.Event) {
	payload, err := jsoniter.Marshal(converter.ToEventMessage(e))
	if err != nil {
		h.logger.Error("failed to encode event", zap.String("kind", string(e.Kind)), zap.Error(err))
		return
	}

	h.mtx.RLock()
	defer h.mtx.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("client too slow, event dropped", zap.String("remote", c.conn.RemoteAddr().String()))
		}
	}
}

// ServeWS поднимает соединение и запускает его насосы
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) Clients() int {
	h.mtx.RLock()
	defer h.mtx.RUnlock()
	return len(h.clients)
}

// Close отключает всех клиентов
func (h *Hub) Close() {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) register(c *client) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	h.clients[c] = struct{}{}
	h.logger.Debug("client connected", zap.String("remote", c.conn.RemoteAddr().String()))
}

func (h *Hub) unregister(c *client) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Debug("client disconnected", zap.String("remote", c.conn.RemoteAddr().String()))
	}
}
