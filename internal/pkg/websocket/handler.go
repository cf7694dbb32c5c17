package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/retrieverhq/retriever-study/internal/app/services"
)

// Handler for WebSocket connections
type Handler struct {
	hub            *Hub
	groupStore     services.GroupStore
	messageService services.MessageService
	logger         zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(
	hub *Hub,
	groupStore services.GroupStore,
	messageService services.MessageService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		hub:            hub,
		groupStore:     groupStore,
		messageService: messageService,
		logger:         logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for real-time group chat
// @Description Upgrades HTTP connection to a WebSocket connection for real-time chat messaging
// @Tags chat, websocket
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} gin.H "Forbidden: User is not a member of the group"
// @Failure 404 {object} gin.H "Group not found"
// @Router /groups/{id}/chat/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	groupID := c.Param("id")

	// Get user ID from context (set by auth middleware)
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in context",
		})
		return
	}

	userID, ok := userIDInterface.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	group, err := h.groupStore.GetByID(c, groupID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("groupID", groupID).
			Str("userID", userID).
			Msg("Failed to load group for chat connection")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check group membership",
		})
		return
	}
	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Study group not found",
		})
		return
	}
	if !group.HasMember(userID) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Only group members can join the chat",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("groupID", groupID).
			Str("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  userID,
		groupID: groupID,
		inbound: h.handleInbound,
		logger:  h.logger,
	}
	client.hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("groupID", groupID).
		Str("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}

// handleInbound runs a socket message through the message service.
// Accepted messages are persisted and broadcast by the service; a
// returned error reaches only the sending client.
func (h *Handler) handleInbound(groupID, senderID, content string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.messageService.SendMessage(ctx, groupID, senderID, content)
	return err
}
