package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/inventario/domain"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4 * 1024

	// Outbound messages buffered per client before it is dropped.
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Hub fans out inventory change events to every connected subscriber.
// It implements repositories.EventPublisher.
type Hub struct {
	// Registered clients.
	clients map[*Client]struct{}

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Serialised messages to send to every client.
	broadcast chan []byte

	// Replies addressed to a single client.
	direct chan outbound

	// Closed once Run returns.
	done chan struct{}

	// Guards count for readers outside the Run loop
	mu    sync.RWMutex
	count int

	validator *MessageValidator
	logger    *zap.Logger
}

// NewHub creates a new WebSocket hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		direct:     make(chan outbound),
		done:       make(chan struct{}),
		validator:  NewMessageValidator(),
		logger:     logger,
	}
}

// Run starts the hub's main loop and returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.setCount(0)
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.setCount(len(h.clients))
			h.logger.Info("Subscriber registered", zap.String("remoteAddr", client.remoteAddr))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.setCount(len(h.clients))
			h.logger.Info("Subscriber unregistered", zap.String("remoteAddr", client.remoteAddr))

		case out := <-h.direct:
			// Only the Run loop sends on client.send, so a dropped client is never written to
			if _, ok := h.clients[out.client]; ok {
				select {
				case out.client.send <- out.payload:
				default:
					h.logger.Warn("Reply dropped, send buffer full", zap.String("remoteAddr", out.client.remoteAddr))
				}
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow subscriber, drop it
					delete(h.clients, client)
					close(client.send)
					h.logger.Warn("Dropping slow subscriber", zap.String("remoteAddr", client.remoteAddr))
				}
			}
			h.setCount(len(h.clients))
		}
	}
}

// Publish implements repositories.EventPublisher. It never blocks the caller.
func (h *Hub) Publish(event domain.ChangeEvent) {
	payload, err := json.Marshal(CreateChangeMessage(event))
	if err != nil {
		h.logger.Error("Failed to encode change event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("Broadcast queue full, change event dropped",
			zap.String("kind", string(event.Kind)),
			zap.String("id", event.ID))
	}
}

// ClientCount returns the number of connected subscribers
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

type outbound struct {
	client  *Client
	payload []byte
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte

	remoteAddr string
	logger     *zap.Logger
}

// HandleWebSocket upgrades the request and subscribes the peer to change events
func HandleWebSocket(hub *Hub, c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		hub.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}

	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		remoteAddr: c.RealIP(),
		logger:     hub.logger,
	}

	select {
	case hub.register <- client:
	case <-hub.done:
		// Connection is hijacked, nothing more can be written
		conn.Close()
		return nil
	}

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()

	return nil
}

// readPump reads pings from the subscriber until the connection closes.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		if messageType != websocket.TextMessage {
			c.logger.Warn("Received unsupported message type", zap.Int("type", messageType))
			continue
		}
		c.processMessage(message)
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Error("Failed to write message", zap.Error(err))
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

// processMessage answers application-level pings
func (c *Client) processMessage(message []byte) {
	var reply interface{}

	msg, err := c.hub.validator.ValidateMessage(message)
	if err != nil {
		c.logger.Warn("Rejected subscriber message", zap.Error(err))
		reply = CreateErrorMessage("invalid_message", "Message rejected", err.Error())
	} else if ping, ok := msg.(*PingMessage); ok {
		reply = CreatePongMessage(ping.Data)
	}

	if reply == nil {
		return
	}

	payload, err := json.Marshal(reply)
	if err != nil {
		c.logger.Error("Failed to encode reply", zap.Error(err))
		return
	}

	select {
	case c.hub.direct <- outbound{client: c, payload: payload}:
	case <-c.hub.done:
	}
}
