package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/retrieverhq/retriever-study/internal/app/models"
	"github.com/retrieverhq/retriever-study/internal/pkg/ai"
	"github.com/retrieverhq/retriever-study/internal/pkg/apperrors"
)

// DefaultHistoryLimit is how many recent messages a history request
// returns when the caller does not specify a limit.
const DefaultHistoryLimit = 50

// Broadcaster delivers a persisted message to connected group chat
// clients. The websocket hub implements it; a no-op stands in when
// chat transport is disabled.
type Broadcaster interface {
	BroadcastToGroup(groupID string, payload interface{})
}

// MessageService defines group chat operations
type MessageService interface {
	SendMessage(ctx context.Context, groupID, senderID, content string) (*models.Message, error)
	GetHistory(ctx context.Context, groupID string, limit int) ([]*models.Message, error)
}

// messageServiceImpl implements MessageService
type messageServiceImpl struct {
	messageStore MessageStore
	groupStore   GroupStore
	scorer       ai.ToxicityScorer
	broadcaster  Broadcaster
	threshold    float64
	logger       zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(messageStore MessageStore, groupStore GroupStore, scorer ai.ToxicityScorer, broadcaster Broadcaster, threshold float64, logger zerolog.Logger) MessageService {
	return &messageServiceImpl{
		messageStore: messageStore,
		groupStore:   groupStore,
		scorer:       scorer,
		broadcaster:  broadcaster,
		threshold:    threshold,
		logger:       logger,
	}
}

// SendMessage scores the content for toxicity, rejects it above the
// configured threshold and persists it otherwise. The sender must be a
// member of the group. Accepted messages are broadcast to connected
// chat clients.
func (s *messageServiceImpl) SendMessage(ctx context.Context, groupID, senderID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("Message content cannot be empty")
	}

	group, err := s.groupStore.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("error getting group: %w", err)
	}
	if group == nil {
		return nil, apperrors.NewGroupNotFoundError("Study group not found")
	}
	if !group.HasMember(senderID) {
		return nil, apperrors.NewValidationError("Only group members can send messages")
	}

	score, err := s.scorer.Score(ctx, content)
	if err != nil {
		s.logger.Error().Err(err).
			Str("groupID", groupID).
			Msg("Toxicity scoring failed")
		return nil, err
	}

	if score >= s.threshold {
		s.logger.Warn().
			Str("groupID", groupID).
			Str("senderID", senderID).
			Float64("score", score).
			Msg("Message rejected as toxic")
		return nil, apperrors.NewCustomError(apperrors.ErrToxicContent, "Message was flagged as toxic and not sent").
			WithDetails(map[string]interface{}{"toxicityScore": score})
	}

	message := &models.Message{
		ID:            uuid.New().String(),
		GroupID:       groupID,
		SenderID:      senderID,
		Content:       content,
		ToxicityScore: score,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.messageStore.Create(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("error creating message: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToGroup(groupID, created)
	}

	return created, nil
}

// GetHistory returns up to limit most recent messages for a group in
// chronological order.
func (s *messageServiceImpl) GetHistory(ctx context.Context, groupID string, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	group, err := s.groupStore.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("error getting group: %w", err)
	}
	if group == nil {
		return nil, apperrors.NewGroupNotFoundError("Study group not found")
	}

	messages, err := s.messageStore.GetByGroup(ctx, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting messages: %w", err)
	}

	return messages, nil
}
