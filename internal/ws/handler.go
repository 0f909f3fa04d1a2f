package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub *Hub
}

func NewWebSocketHandler(hub *Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleConnection streams domain events to a dashboard
// @Summary Live event feed
// @Description Upgrades to a websocket that streams client.created, ip.added and ip.whitelisted events. Send {"action":"subscribe","type":"ip.added"} to narrow the feed.
// @Tags Events
// @Router /ws/events [get]
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	sub := h.hub.RegisterSubscriber(conn)

	go h.readPump(sub)
	go h.writePump(sub)
}

func (h *WebSocketHandler) readPump(sub *Subscriber) {
	defer func() {
		h.hub.UnregisterSubscriber(sub)
	}()

	sub.Conn.SetReadLimit(maxMessageSize)
	sub.Conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.Conn.SetPongHandler(func(string) error {
		sub.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := sub.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("Websocket read failed", "subscriber", sub.ID, "error", err)
			}
			break
		}

		var msg socketMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			h.reply(sub, errorResponse{Error: "Invalid message format"})
			continue
		}

		switch msg.Action {
		case "subscribe":
			sub.Subscribe(msg.Type)
			h.reply(sub, subscriptionResponse{
				Status:  "success",
				Message: "Subscribed to " + msg.Type,
				Types:   sub.Types(),
			})

		case "unsubscribe":
			sub.Unsubscribe(msg.Type)
			h.reply(sub, subscriptionResponse{
				Status:  "success",
				Message: "Unsubscribed from " + msg.Type,
				Types:   sub.Types(),
			})

		default:
			h.reply(sub, errorResponse{Error: "Unknown action"})
		}
	}
}

func (h *WebSocketHandler) reply(sub *Subscriber, v interface{}) {
	sub.writeMu.Lock()
	defer sub.writeMu.Unlock()
	sub.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	sub.Conn.WriteJSON(v)
}

func (h *WebSocketHandler) writePump(sub *Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-sub.Send:
			sub.writeMu.Lock()
			sub.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				sub.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				sub.writeMu.Unlock()
				return
			}
			err := sub.Conn.WriteJSON(event)
			sub.writeMu.Unlock()
			if err != nil {
				return
			}

		case <-ticker.C:
			sub.writeMu.Lock()
			sub.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := sub.Conn.WriteMessage(websocket.PingMessage, nil)
			sub.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
