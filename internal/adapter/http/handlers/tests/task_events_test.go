package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/M1estere/To-Do-API/internal/adapter/http/dto"
	"github.com/M1estere/To-Do-API/internal/adapter/http/handlers"
	"github.com/M1estere/To-Do-API/internal/adapter/http/middleware"
	"github.com/M1estere/To-Do-API/internal/adapter/ws"
	"github.com/M1estere/To-Do-API/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestTaskEventsHandler_StreamsPublishedEvents(t *testing.T) {
	hub := ws.NewHub()
	handler := handlers.NewTaskEventsHandler(hub)

	router := gin.New()
	router.GET("/api/tasks/events", middleware.LanguageMiddleware(), handler.Subscribe)
	server := httptest.NewServer(router)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/api/tasks/events", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	status := domain.TaskStatusPending
	handler.PublishTaskEvent(domain.TaskEvent{
		Type:       domain.TaskCreated,
		Task:       domain.Task{ID: 1, Title: "Buy milk", Status: &status, CreatedAt: createdAt, UpdatedAt: createdAt},
		OccurredAt: createdAt,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var got dto.TaskEventMessage
	require.NoError(t, json.Unmarshal(message, &got))
	require.Equal(t, "task.created", got.Event)
	require.Equal(t, uint64(1), got.Task.ID)
	require.Equal(t, "Buy milk", got.Task.Title)
	require.Equal(t, "pending", *got.Task.Status)
	require.Equal(t, "2026-10-19T10:20:30Z", got.OccurredAt)
}

func TestTaskEventsHandler_RejectsPlainRequests(t *testing.T) {
	handler := handlers.NewTaskEventsHandler(ws.NewHub())

	router := gin.New()
	router.GET("/api/tasks/events", middleware.LanguageMiddleware(), handler.Subscribe)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/events", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "A websocket upgrade is required", decodeError(t, rec).Message)
}
