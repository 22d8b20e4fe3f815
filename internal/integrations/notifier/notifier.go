package notifier

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Logger is the logging interface of the hub.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// event is the wire envelope pushed to websocket clients.
type event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// client wraps one connection. The websocket package allows a single
// concurrent writer per connection, so every write goes through mu.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

// Hub fans out real-time events to websocket clients. Business
// dashboards register under their business id; customers register
// opportunistically under their customer id while a booking page is
// open. Delivery is best-effort: a dead connection is dropped, never
// retried, and a key with no connections loses the event.
type Hub struct {
	mu        sync.RWMutex
	business  map[string]map[*client]bool
	customers map[string]map[*client]bool
	upgrader  websocket.Upgrader
	logger    Logger
}

func NewHub(logger Logger) *Hub {
	return &Hub{
		business:  make(map[string]map[*client]bool),
		customers: make(map[string]map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeHTTP upgrades a connection. Dashboards identify themselves with
// the businessId query parameter, customers with customerId.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	businessID := r.URL.Query().Get("businessId")
	customerID := r.URL.Query().Get("customerId")
	if businessID == "" && customerID == "" {
		http.Error(w, "businessId or customerId is required", http.StatusBadRequest)
		return
	}

	registry, key := h.business, businessID
	if businessID == "" {
		registry, key = h.customers, customerID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("notifier: upgrade failed for key=%s: %v", key, err)
		return
	}

	c := &client{conn: conn}
	h.register(registry, key, c)
	h.logger.Info("notifier: key=%s connected", key)

	go h.pingLoop(registry, key, c)
	go h.readLoop(registry, key, c)
}

// NotifyBusiness pushes one event to every dashboard connection of the
// business.
func (h *Hub) NotifyBusiness(businessID string, eventType string, payload interface{}) {
	h.broadcast(h.business, businessID, eventType, payload)
}

// NotifyCustomer pushes one event to the customer's open connections,
// if any.
func (h *Hub) NotifyCustomer(customerID string, eventType string, payload interface{}) {
	h.broadcast(h.customers, customerID, eventType, payload)
}

func (h *Hub) broadcast(registry map[string]map[*client]bool, key, eventType string, payload interface{}) {
	message, err := json.Marshal(event{Type: eventType, Data: payload})
	if err != nil {
		h.logger.Error("notifier: marshal event %s: %v", eventType, err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(registry[key]))
	for c := range registry[key] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(websocket.TextMessage, message); err != nil {
			h.logger.Warn("notifier: write failed for key=%s: %v", key, err)
			h.unregister(registry, key, c)
		}
	}
}

// ConnectionCount reports the open dashboard connections of one business.
func (h *Hub) ConnectionCount(businessID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.business[businessID])
}

// CustomerConnectionCount reports the open connections of one customer.
func (h *Hub) CustomerConnectionCount(customerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.customers[customerID])
}

func (h *Hub) register(registry map[string]map[*client]bool, key string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if registry[key] == nil {
		registry[key] = make(map[*client]bool)
	}
	registry[key][c] = true
}

func (h *Hub) unregister(registry map[string]map[*client]bool, key string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := registry[key]; ok {
		if set[c] {
			delete(set, c)
			c.conn.Close()
		}
		if len(set) == 0 {
			delete(registry, key)
		}
	}
}

// readLoop drains incoming frames so control messages are processed,
// and tears the connection down on error.
func (h *Hub) readLoop(registry map[string]map[*client]bool, key string, c *client) {
	defer h.unregister(registry, key, c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.logger.Info("notifier: key=%s disconnected", key)
			return
		}
	}
}

func (h *Hub) pingLoop(registry map[string]map[*client]bool, key string, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		if err := c.write(websocket.PingMessage, nil); err != nil {
			h.unregister(registry, key, c)
			return
		}
	}
}
