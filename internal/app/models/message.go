package models

import "time"

// Message represents a chat message in a study group.
// ToxicityScore is recorded at creation time; messages scoring at or
// above the configured threshold are rejected before they reach storage.
type Message struct {
	ID            string    `json:"messageId" db:"message_id"`
	GroupID       string    `json:"groupId" db:"group_id"`
	SenderID      string    `json:"senderId" db:"sender_id"`
	Content       string    `json:"content" db:"content"`
	ToxicityScore float64   `json:"toxicityScore" db:"toxicity_score"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
