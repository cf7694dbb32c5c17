package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// envelope pairs a serialized payload with the group it targets.
type envelope struct {
	groupID string
	data    []byte
}

// Hub maintains the set of active chat clients and fans persisted
// messages out to everyone connected to the same study group.
type Hub struct {
	// Registered clients organized by group ID
	clients map[string]map[*Client]bool

	// Channel for outbound payloads
	broadcast chan envelope

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan envelope, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts.
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

// BroadcastToGroup serializes the payload and delivers it to every
// client connected to the group. Safe to call from any goroutine.
func (h *Hub) BroadcastToGroup(groupID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("groupID", groupID).
			Msg("Failed to marshal broadcast payload")
		return
	}

	h.broadcast <- envelope{groupID: groupID, data: data}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	groupID := client.groupID
	if _, ok := h.clients[groupID]; !ok {
		h.clients[groupID] = make(map[*Client]bool)
	}
	h.clients[groupID][client] = true

	h.logger.Info().
		Str("groupID", groupID).
		Str("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Chat client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	groupID := client.groupID
	if _, ok := h.clients[groupID]; ok {
		if _, ok := h.clients[groupID][client]; ok {
			delete(h.clients[groupID], client)
			close(client.send)

			// If no more clients in this group, clean up
			if len(h.clients[groupID]) == 0 {
				delete(h.clients, groupID)
			}

			h.logger.Info().
				Str("groupID", groupID).
				Str("userID", client.userID).
				Msg("Chat client unregistered")
		}
	}
}

// deliver fans an envelope out to the clients of one group. Slow
// clients whose send buffers are full are dropped.
func (h *Hub) deliver(env envelope) {
	h.mu.RLock()
	clients, ok := h.clients[env.groupID]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Str("groupID", env.groupID).
			Msg("No clients in group for broadcast")
		return
	}

	var stale []*Client
	for client := range clients {
		select {
		case client.send <- env.data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	// Drop stale clients inline. Sending them through h.unregister would
	// deadlock: deliver runs on the same goroutine that drains that channel.
	for _, client := range stale {
		h.unregisterClient(client)
	}
}

// GetClientsCount returns the number of connected clients for a group
func (h *Hub) GetClientsCount(groupID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[groupID]; ok {
		return len(clients)
	}
	return 0
}
