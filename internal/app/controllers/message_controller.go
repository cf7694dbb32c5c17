package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retrieverhq/retriever-study/internal/app/models/dto"
	"github.com/retrieverhq/retriever-study/internal/app/services"
	"github.com/retrieverhq/retriever-study/internal/pkg/helpers"
	"github.com/retrieverhq/retriever-study/internal/middleware"
)

// MessageController handles group chat message operations
type MessageController struct {
	messageService services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService) *MessageController {
	return &MessageController{
		messageService: messageService,
	}
}

// SendMessage handles posting a chat message to a group
// @Summary Send a chat message
// @Description Sends a message to a group's chat. The content is scored for toxicity and rejected above the configured threshold. Only group members can post.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param request body dto.CreateMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Empty or toxic content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 503 {object} dto.ErrorResponse "Toxicity provider unavailable"
// @Router /groups/{id}/messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	var req dto.CreateMessageRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	senderID := middleware.GetUserID(ctx)

	message, err := c.messageService.SendMessage(ctx, ctx.Param("id"), senderID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromMessage(message), "Message sent"))
}

// GetMessageHistory handles retrieving recent chat messages for a group
// @Summary Get chat history
// @Description Retrieves the most recent chat messages for a group in chronological order
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param limit query int false "Maximum number of messages (default: 50)" default(50) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse} "Messages retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id}/messages [get]
func (c *MessageController) GetMessageHistory(ctx *gin.Context) {
	limit := helpers.ParseLimitParam(ctx, services.DefaultHistoryLimit)

	messages, err := c.messageService.GetHistory(ctx, ctx.Param("id"), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromMessages(messages), "Messages retrieved successfully"))
}
