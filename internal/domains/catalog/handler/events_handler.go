package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"library-catalog/internal/infrastructure/events"
	"library-catalog/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// EventMessage is the wire envelope for pushed events
type EventMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const eventTypeBookAdded = "BOOK_ADDED"

// EventsHandler pushes bookAdded events to websocket subscribers
type EventsHandler struct {
	hub *events.Hub
}

func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// ════════════════════════════════════════════════════════════════
// SUBSCRIPTION: GET /v1/events (websocket)
// ════════════════════════════════════════════════════════════════

// Subscribe upgrades the connection and forwards every bookAdded
// event published from now on. There is no replay: events emitted
// before the upgrade are gone for this subscriber.
func (h *EventsHandler) Subscribe(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("failed to upgrade websocket", err)
		return
	}
	defer ws.Close()

	ch, cancel := h.hub.Subscribe(8)
	defer cancel()

	// drain the read side so client close frames are observed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			msg := EventMessage{Type: eventTypeBookAdded, Data: event.Book}
			if err := ws.WriteJSON(msg); err != nil {
				logger.Error("failed to write websocket event", err)
				return
			}
		}
	}
}
