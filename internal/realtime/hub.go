package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/logging"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/metrics"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
)

const EventProjectUpdated = "projectUpdated"

// RoomName is the channel clients subscribe to for one project's updates.
func RoomName(projectID string) string { return "project_" + projectID }

// Envelope is the wire format for both directions.
type Envelope struct {
	Event     string          `json:"event"`
	ProjectID string          `json:"projectId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Hub relays the full updated project document to every subscriber of the
// project's room and then to every connected client. Room membership
// carries no ACL; the broadcast is best-effort only.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}

	upgrader websocket.Upgrader
}

func NewHub(allowedOrigin string) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// ServeWS upgrades the connection and starts the client's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger.Warnf("Event ID: WS_UPGRADE_FAILED, Description: Websocket upgrade failed: %v", err)
		return
	}

	client := newClient(h, conn)
	h.register(client)

	go client.writePump()
	go client.readPump()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for room := range c.rooms {
		h.removeFromRoom(room, c)
	}
	close(c.send)
}

func (h *Hub) join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (h *Hub) leave(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(room, c)
	delete(c.rooms, room)
}

// caller holds h.mu
func (h *Hub) removeFromRoom(room string, c *Client) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// ProjectUpdated implements events.Publisher. The event goes to the
// project's room and then, unscoped, to every connected client, so room
// members receive it twice. Slow clients are skipped rather than
// blocked on.
func (h *Hub) ProjectUpdated(ctx context.Context, project *models.OnboardingProject) {
	data, err := json.Marshal(project)
	if err != nil {
		logging.Logger.Warnf("Event ID: WS_MARSHAL_FAILED, Description: Failed to marshal project %s: %v", project.ID.Hex(), err)
		return
	}
	msg, err := json.Marshal(Envelope{Event: EventProjectUpdated, Data: data})
	if err != nil {
		return
	}

	room := RoomName(project.ID.Hex())

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		c.trySend(msg)
	}
	for c := range h.clients {
		c.trySend(msg)
	}

	metrics.IncrementRealtimeEvent(EventProjectUpdated)
}
