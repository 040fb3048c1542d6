package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tosssim-backend/internal/models"
	"tosssim-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler pushes balance and game-result updates to connected
// clients. It implements services.Broadcaster.
type WebSocketHandler struct {
	ledger *services.Ledger
	hub    *webSocketHub
}

type webSocketHub struct {
	clients    map[string]*websocket.Conn
	register   chan *client
	unregister chan *client
	broadcast  chan *wsMessage
}

type client struct {
	Username string
	Conn     *websocket.Conn
}

type wsMessage struct {
	Type     string `json:"type"`
	Username string `json:"-"`
	Data     any    `json:"data"`
}

func NewWebSocketHandler(ledger *services.Ledger) *WebSocketHandler {
	hub := &webSocketHub{
		clients:    make(map[string]*websocket.Conn),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan *wsMessage, 100),
	}

	go hub.run()

	return &WebSocketHandler{
		ledger: ledger,
		hub:    hub,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	username := c.GetString("username")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("Failed to upgrade to WebSocket", zap.Error(err))
		return
	}

	cl := &client{
		Username: username,
		Conn:     conn,
	}

	h.hub.register <- cl

	defer func() {
		h.hub.unregister <- cl
		conn.Close()
	}()

	h.sendBalance(c, cl)

	for {
		var msg wsMessage
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("WebSocket error", zap.Error(err))
			}
			break
		}

		h.handleMessage(cl, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(cl *client, msg *wsMessage) {
	switch msg.Type {
	case "PING":
		h.sendPong(cl)
	}
}

func (h *WebSocketHandler) sendBalance(c *gin.Context, cl *client) {
	balance, err := h.ledger.Balance(c.Request.Context(), cl.Username)
	if err != nil {
		zap.L().Error("Failed to load balance for WS", zap.String("username", cl.Username), zap.Error(err))
		return
	}

	msg := wsMessage{
		Type: "BALANCE_UPDATE",
		Data: gin.H{
			"balance": balance,
		},
	}

	cl.Conn.WriteJSON(msg)
}

func (h *WebSocketHandler) sendPong(cl *client) {
	msg := wsMessage{
		Type: "PONG",
		Data: gin.H{
			"timestamp": time.Now().Unix(),
		},
	}

	cl.Conn.WriteJSON(msg)
}

func (hub *webSocketHub) run() {
	for {
		select {
		case cl := <-hub.register:
			hub.clients[cl.Username] = cl.Conn
			zap.L().Info("WebSocket client registered", zap.String("username", cl.Username))

		case cl := <-hub.unregister:
			if _, ok := hub.clients[cl.Username]; ok {
				delete(hub.clients, cl.Username)
				zap.L().Info("WebSocket client unregistered", zap.String("username", cl.Username))
			}

		case msg := <-hub.broadcast:
			hub.send(msg)
		}
	}
}

func (hub *webSocketHub) send(msg *wsMessage) {
	if msg.Username != "" {
		if conn, ok := hub.clients[msg.Username]; ok {
			conn.WriteJSON(msg)
		}
		return
	}
	for _, conn := range hub.clients {
		conn.WriteJSON(msg)
	}
}

// BroadcastBalance implements services.Broadcaster.
func (h *WebSocketHandler) BroadcastBalance(username string, balance float64) {
	h.hub.broadcast <- &wsMessage{
		Type:     "BALANCE_UPDATE",
		Username: username,
		Data: gin.H{
			"balance": balance,
		},
	}
}

// BroadcastGameResult implements services.Broadcaster.
func (h *WebSocketHandler) BroadcastGameResult(username string, game models.GameType, result any) {
	h.hub.broadcast <- &wsMessage{
		Type:     "GAME_RESULT",
		Username: username,
		Data: gin.H{
			"game":   game,
			"result": result,
		},
	}
}
