package dto

import (
	"time"

	"github.com/retrieverhq/retriever-study/internal/app/models"
)

// CreateMessageRequest represents message creation data. The group is
// taken from the URL path, never from the body.
type CreateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessageResponse represents a chat message in API responses
type MessageResponse struct {
	MessageID     string    `json:"messageId"`
	GroupID       string    `json:"groupId"`
	SenderID      string    `json:"senderId"`
	Content       string    `json:"content"`
	ToxicityScore float64   `json:"toxicityScore"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromMessage converts a models.Message to a MessageResponse
func FromMessage(message *models.Message) MessageResponse {
	if message == nil {
		return MessageResponse{}
	}

	return MessageResponse{
		MessageID:     message.ID,
		GroupID:       message.GroupID,
		SenderID:      message.SenderID,
		Content:       message.Content,
		ToxicityScore: message.ToxicityScore,
		CreatedAt:     message.CreatedAt,
	}
}

// FromMessages converts a slice of messages to responses
func FromMessages(messages []*models.Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, FromMessage(message))
	}
	return responses
}
