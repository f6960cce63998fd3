// Package network is the cross-window event bus: companion windows connect
// over WebSocket, receive topic-tagged state broadcasts, and push their own
// UI events back into the pipeline. A window connecting mid-match gets the
// latest message per topic replayed so it can render without waiting for
// the next change.
package network

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/events"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/logger"
	"github.com/Zero-to-Heroes/overwolf-collection-companion/internal/platform/metrics"
)

// Topics carried on the bus.
const (
	TopicGameState     = "game-state"
	TopicBattlegrounds = "battlegrounds-state"
	TopicMainWindow    = "main-window-state"
	TopicOverlays      = "overlay-visibility"
	TopicNotification  = "notification"
)

// Message is one bus frame.
type Message struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Companion windows connect from the local machine only.
		return true
	},
}

// Hub maintains the set of connected windows and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	eventLog   *events.Log
	log        *logger.Logger
	metrics    *metrics.Collector
	sendBuffer int

	mu          sync.Mutex
	lastByTopic map[string][]byte
}

func NewHub(eventLog *events.Log, log *logger.Logger, collector *metrics.Collector, sendBuffer int) *Hub {
	if sendBuffer < 1 {
		sendBuffer = 64
	}
	return &Hub{
		clients:     make(map[*Client]bool),
		broadcast:   make(chan []byte, 64),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		eventLog:    eventLog,
		log:         log.With("network"),
		metrics:     collector,
		sendBuffer:  sendBuffer,
		lastByTopic: make(map[string][]byte),
	}
}

// Run handles registration and broadcast until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.log.Info("hub shutting down")
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			replay := make([][]byte, 0, len(h.lastByTopic))
			for _, frame := range h.lastByTopic {
				replay = append(replay, frame)
			}
			h.mu.Unlock()
			h.metrics.RecordWSConnection(1)
			h.log.Info("window connected, replaying %d topics", len(replay))
			for _, frame := range replay {
				client.trySend(frame)
			}
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.metrics.RecordWSConnection(-1)
				h.log.Info("window disconnected")
			}
			h.mu.Unlock()
		case frame := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				client.trySend(frame)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// Publish broadcasts a payload on a topic and remembers it for replay to
// windows that connect later.
func (h *Hub) Publish(topic string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("could not marshal payload for topic %s: %v", topic, err)
		return
	}
	frame, err := json.Marshal(Message{Topic: topic, Payload: body})
	if err != nil {
		h.log.Error("could not marshal frame for topic %s: %v", topic, err)
		return
	}

	h.mu.Lock()
	h.lastByTopic[topic] = frame
	h.mu.Unlock()

	h.metrics.RecordWSMessage(false)
	select {
	case h.broadcast <- frame:
	default:
		h.log.Warn("broadcast queue full, dropping frame on %s", topic)
	}
}

// PublishOverlayState implements the overlay manager's publisher.
func (h *Hub) PublishOverlayState(visibility map[string]bool) {
	h.Publish(TopicOverlays, visibility)
}

// ServeWS upgrades an HTTP request into a bus connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed: %v", err)
		return
	}
	client := NewClient(h, conn, h.sendBuffer)
	h.register <- client
	go client.WritePump()
	go client.ReadPump()
}

// receiveWindowEvent appends an event pushed by a window (overlay closed,
// tab changed) onto the shared event log.
func (h *Hub) receiveWindowEvent(ev events.GameEvent) {
	h.metrics.RecordWSMessage(true)
	if ev.Type == "" {
		h.log.Warn("dropping window event with no type")
		return
	}
	h.eventLog.Append(ev)
}
