package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/M1estere/To-Do-API/internal/adapter/http/mapper"
	"github.com/M1estere/To-Do-API/internal/adapter/http/middleware"
	"github.com/M1estere/To-Do-API/internal/adapter/ws"
	"github.com/M1estere/To-Do-API/internal/core/domain"
	"github.com/M1estere/To-Do-API/internal/core/ports"
	"github.com/M1estere/To-Do-API/pkg/apierrors"
)

// TaskEventsHandler streams task changes to websocket subscribers.
type TaskEventsHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

var _ ports.TaskEventPublisher = (*TaskEventsHandler)(nil)

func NewTaskEventsHandler(hub *ws.Hub) *TaskEventsHandler {
	return &TaskEventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			// The API is open; any origin may subscribe.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *TaskEventsHandler) Subscribe(c *gin.Context) {
	if !websocket.IsWebSocketUpgrade(c.Request) {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgWebsocketRequired, middleware.GetLang(c)),
		)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	if !h.hub.Register(conn) {
		_ = conn.Close()
		return
	}

	// Subscribers only listen; reading keeps control frames flowing and detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.hub.Unregister(conn)
			return
		}
	}
}

func (h *TaskEventsHandler) PublishTaskEvent(event domain.TaskEvent) {
	message, err := json.Marshal(mapper.ToTaskEventMessage(event))
	if err != nil {
		zap.L().Error("failed to marshal task event", zap.String("event", string(event.Type)), zap.Error(err))
		return
	}
	h.hub.Broadcast(message)
}
