package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/broadsidehq/broadside/game/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Per-client outbound buffer.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// LobbyRoom is the reserved room key for clients watching the room list
// before joining a game. Connect with /ws?room=lobby.
const LobbyRoom = "lobby"

// Message is the envelope delivered to connected clients
type Message struct {
	RoomID string      `json:"room_id"`
	Event  string      `json:"event"`
	Data   interface{} `json:"data,omitempty"`
}

// envelope pairs a message with optional per-player addressing
type envelope struct {
	msg      *Message
	playerID string
}

// Client represents a WebSocket client
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	roomID   string
	playerID string
}

// Hub maintains the set of active clients grouped by room and fans
// engine events out to them. Rejections addressed to one requester go
// through SendToPlayer; everything else is room-wide.
type Hub struct {
	// Registered clients by room ID
	rooms map[string]map[*Client]bool

	// Outbound messages
	broadcast chan *envelope

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan *envelope),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case env := <-h.broadcast:
			h.deliver(env)
		}
	}
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, roomID, playerID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		roomID:   roomID,
		playerID: playerID,
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastToRoom sends an event to every client in a room.
func (h *Hub) BroadcastToRoom(roomID, event string, data interface{}) {
	h.broadcast <- &envelope{msg: &Message{RoomID: roomID, Event: event, Data: data}}
}

// BroadcastToLobby notifies lobby watchers that the room list changed.
func (h *Hub) BroadcastToLobby(event string, data interface{}) {
	h.broadcast <- &envelope{msg: &Message{RoomID: LobbyRoom, Event: event, Data: data}}
}

// SendToPlayer sends an event to a single participant's connections.
// Used for rejections, which are never broadcast.
func (h *Hub) SendToPlayer(roomID, playerID, event string, data interface{}) {
	h.broadcast <- &envelope{
		msg:      &Message{RoomID: roomID, Event: event, Data: data},
		playerID: playerID,
	}
}

// WatchSession pumps a room's engine event channel into room broadcasts.
// The goroutine exits when the registry destroys the room and closes the
// channel, keeping the engine decoupled from connection lifetimes.
func (h *Hub) WatchSession(roomID string, events <-chan engine.Event) {
	go func() {
		for ev := range events {
			h.BroadcastToRoom(roomID, string(ev.Type), ev)
		}
	}()
}

// registerClient adds a client to a room group
func (h *Hub) registerClient(client *Client) {
	if h.rooms[client.roomID] == nil {
		h.rooms[client.roomID] = make(map[*Client]bool)
	}
	h.rooms[client.roomID][client] = true

	log.Printf("Client %s registered for room %s (total clients: %d)",
		client.playerID, client.roomID, len(h.rooms[client.roomID]))
}

// unregisterClient removes a client from its room group
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.rooms[client.roomID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty room groups
			if len(clients) == 0 {
				delete(h.rooms, client.roomID)
			}

			log.Printf("Client %s unregistered from room %s (remaining clients: %d)",
				client.playerID, client.roomID, len(clients))
		}
	}
}

// deliver marshals a message and hands it to the matching clients
func (h *Hub) deliver(env *envelope) {
	data, err := json.Marshal(env.msg)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	clients, ok := h.rooms[env.msg.RoomID]
	if !ok {
		return
	}
	for client := range clients {
		if env.playerID != "" && client.playerID != env.playerID {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Client's send channel is full, close it
			h.unregisterClient(client)
		}
	}
}

// readPump pumps messages from the WebSocket connection. Inbound traffic
// is only used for liveness; game actions arrive over the REST API.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
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
