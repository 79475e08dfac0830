package ws

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/windoze95/mixlist/internal/logger"
	"github.com/windoze95/mixlist/internal/notify"
	"github.com/windoze95/mixlist/internal/service"
	"github.com/windoze95/mixlist/internal/session"
	"github.com/windoze95/mixlist/internal/util"
	"go.uber.org/zap"
)

// WebSocket message types pushed to the page.
const (
	MsgTypeConnected    = "connected"    // Connection confirmed, carries the current notification
	MsgTypeNotification = "notification" // Notification shown or cleared
)

// WSMessage is the envelope for all messages sent over the socket.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ConnectedPayload confirms a successful connection.
type ConnectedPayload struct {
	SessionID    string              `json:"session_id"`
	Notification notify.Notification `json:"notification"`
}

// EncodeMessage wraps payload in a WSMessage envelope.
func EncodeMessage(msgType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{Type: msgType, Payload: raw})
}

// AttachSession forwards every notification change of sess to the sockets
// in its room. Install it as the store's create hook.
func (h *Hub) AttachSession(sess *session.Session) {
	roomID := sess.ID
	sess.Notifier.Subscribe(func(n notify.Notification) {
		msg, err := EncodeMessage(MsgTypeNotification, n)
		if err != nil {
			logger.Get().Error("failed to encode notification", zap.String("room_id", roomID), zap.Error(err))
			return
		}
		h.Publish(roomID, msg)
	})
}

// NotificationHandler upgrades page connections for notification pushes.
type NotificationHandler struct {
	Hub     *Hub
	Service *service.WidgetService

	upgrader websocket.Upgrader
}

// NewNotificationHandler returns a handler that accepts sockets from the
// given origins. Same-host and localhost origins are always accepted.
func NewNotificationHandler(hub *Hub, widgetService *service.WidgetService, allowedOrigins []string) *NotificationHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return &NotificationHandler{
		Hub:     hub,
		Service: widgetService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed[origin] {
					return true
				}
				if origin == "http://"+r.Host || origin == "https://"+r.Host {
					return true
				}
				// Allow localhost for development
				return strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost"
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleNotifications handles GET /v1/ws.
func (h *NotificationHandler) HandleNotifications(c *gin.Context) {
	sessionID, err := util.GetSessionIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session"})
		return
	}
	log := logger.WithSession(sessionID)

	snap, err := h.Service.Snapshot(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		Hub:    h.Hub,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		RoomID: sessionID,
	}
	if msg, err := EncodeMessage(MsgTypeConnected, ConnectedPayload{
		SessionID:    sessionID,
		Notification: snap.Notification,
	}); err == nil {
		client.Send <- msg
	}
	if !h.Hub.register(client) {
		conn.Close()
		return
	}

	log.Debug("notification socket opened")

	go client.WritePump()
	go client.ReadPump()
}
