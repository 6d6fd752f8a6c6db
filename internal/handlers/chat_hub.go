package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/PascalSeth/Edutrack-backend-sub005/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WireMessage is the websocket frame exchanged with clients.
type WireMessage struct {
	Type    string             `json:"type"`
	Payload models.ChatMessage `json:"payload"`
}

// Client is one connected websocket session.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// Hub routes chat messages between connected clients and persists them.
// One hub instance serves the whole process.
type Hub struct {
	db  *gorm.DB
	log *slog.Logger

	clients    map[uint]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub(db *gorm.DB, log *slog.Logger) *Hub {
	return &Hub{
		db:         db,
		log:        log,
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uint]*Client),
	}
}

// Run is the hub's event loop; call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = client
			h.mu.Unlock()
			h.log.Info("chat client registered", "user_id", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()
			h.log.Info("chat client unregistered", "user_id", client.userID)

		case messageData := <-h.broadcast:
			h.handleBroadcast(messageData)
		}
	}
}

// handleBroadcast persists an incoming message and delivers it to both chat
// members. A sender outside the chat is dropped.
func (h *Hub) handleBroadcast(messageData []byte) {
	var msg WireMessage
	if err := json.Unmarshal(messageData, &msg); err != nil {
		h.log.Error("failed to unmarshal broadcast message", "error", err)
		return
	}

	var chat models.Chat
	if err := h.db.First(&chat, msg.Payload.ChatID).Error; err != nil {
		h.log.Warn("message for unknown chat dropped", "chat_id", msg.Payload.ChatID)
		return
	}
	if msg.Payload.SenderID != chat.UserAID && msg.Payload.SenderID != chat.UserBID {
		h.log.Warn("message from non-member dropped", "chat_id", chat.ID, "sender_id", msg.Payload.SenderID)
		return
	}

	stored := msg.Payload
	if stored.MessageID == "" {
		stored.MessageID = uuid.NewString()
	}
	if err := h.db.Create(&stored).Error; err != nil {
		h.log.Error("failed to save chat message", "error", err)
		return
	}

	h.deliver(chat, stored)
}

// deliver pushes the stored message to whichever chat members are online.
func (h *Hub) deliver(chat models.Chat, message models.ChatMessage) {
	frame, err := json.Marshal(WireMessage{Type: "newMessage", Payload: message})
	if err != nil {
		h.log.Error("failed to marshal chat frame", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, userID := range []uint{chat.UserAID, chat.UserBID} {
		if client, ok := h.clients[userID]; ok {
			select {
			case client.send <- frame:
			default:
				close(client.send)
				delete(h.clients, userID)
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("unexpected websocket close", "error", err)
			}
			break
		}

		var msg WireMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			c.hub.log.Error("invalid frame from client", "error", err, "user_id", c.userID)
			continue
		}
		// Sender identity comes from the authenticated session, never from
		// the client payload.
		msg.Payload.SenderID = c.userID

		frame, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		c.hub.broadcast <- frame
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.hub.log.Error("failed to write websocket message", "error", err)
			return
		}
	}
}

// ServeWS upgrades the request and attaches the session to the hub.
func (h *Hub) ServeWS(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}
