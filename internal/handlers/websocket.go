package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"steprush-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler pushes round events (step results, cashouts, losses)
// to the connected player. It implements services.Broadcaster.
type WebSocketHandler struct {
	wallets *services.WalletService
	hub     *WebSocketHub
}

type WebSocketHub struct {
	clients    map[string]*websocket.Conn
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
}

type Client struct {
	PlayerID string
	Conn     *websocket.Conn
}

type Message struct {
	Type     string      `json:"type"`
	PlayerID string      `json:"player_id,omitempty"`
	Data     interface{} `json:"data"`
}

func NewWebSocketHandler(wallets *services.WalletService) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[string]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
	}

	go hub.run()

	return &WebSocketHandler{
		wallets: wallets,
		hub:     hub,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	playerID := c.GetString("player_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &Client{
		PlayerID: playerID,
		Conn:     conn,
	}

	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	h.sendBalance(client)

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		h.handleMessage(client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case "PING":
		h.sendPong(client)
	case "GET_BALANCE":
		h.sendBalance(client)
	}
}

func (h *WebSocketHandler) sendBalance(client *Client) {
	wallet := h.wallets.Get(client.PlayerID)

	msg := Message{
		Type: "BALANCE_UPDATE",
		Data: gin.H{
			"balance":       wallet.Balance,
			"total_wagered": wallet.TotalWagered,
			"total_won":     wallet.TotalWon,
		},
	}

	client.Conn.WriteJSON(msg)
}

func (h *WebSocketHandler) sendPong(client *Client) {
	msg := Message{
		Type: "PONG",
		Data: gin.H{
			"timestamp": time.Now().Unix(),
		},
	}

	client.Conn.WriteJSON(msg)
}

// SendToPlayer satisfies services.Broadcaster; the engine calls it after
// every step, loss and cashout.
func (h *WebSocketHandler) SendToPlayer(playerID string, eventType string, data interface{}) {
	h.hub.broadcast <- &Message{
		Type:     eventType,
		PlayerID: playerID,
		Data:     data,
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.PlayerID] = client.Conn
			log.Printf("Client registered: %s", client.PlayerID)

		case client := <-hub.unregister:
			if _, ok := hub.clients[client.PlayerID]; ok {
				delete(hub.clients, client.PlayerID)
				log.Printf("Client unregistered: %s", client.PlayerID)
			}

		case message := <-hub.broadcast:
			hub.deliver(message)
		}
	}
}

func (hub *WebSocketHub) deliver(message *Message) {
	if message.PlayerID != "" {
		if conn, ok := hub.clients[message.PlayerID]; ok {
			conn.WriteJSON(message)
		}
		return
	}
	for _, conn := range hub.clients {
		conn.WriteJSON(message)
	}
}
