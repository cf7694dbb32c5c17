package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retrieverhq/retriever-study/internal/app/models"
)

// MessageRepository handles database operations for chat messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message with its recorded toxicity score.
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) (*models.Message, error) {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now().UTC()

	query := squirrel.Insert("messages").
		Columns("message_id", "group_id", "sender_id", "content", "toxicity_score", "created_at").
		Values(message.ID, message.GroupID, message.SenderID, message.Content, message.ToxicityScore, message.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return message, nil
}

// GetByGroup retrieves the most recent messages for a group, oldest
// first so clients can render them in order.
func (r *MessageRepository) GetByGroup(ctx context.Context, groupID string, limit int) ([]*models.Message, error) {
	// Nested query keeps the limit on the newest messages while
	// returning them in chronological order.
	sql := `SELECT message_id, group_id, sender_id, content, toxicity_score, created_at
		FROM (
			SELECT * FROM messages WHERE group_id = $1 ORDER BY created_at DESC LIMIT $2
		) recent
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, sql, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var message models.Message
		err := rows.Scan(
			&message.ID,
			&message.GroupID,
			&message.SenderID,
			&message.Content,
			&message.ToxicityScore,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		messages = append(messages, &message)
	}

	return messages, rows.Err()
}
