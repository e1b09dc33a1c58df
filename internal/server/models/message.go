package models

import "time"

// Message types.
const (
	MessageText   = "text"
	MessageImage  = "image"
	MessageSystem = "system"
)

// Message is an append-only chat entry. ReadAt is nil until the recipient
// opens the conversation.
type Message struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	SenderID       string     `json:"sender_id"`
	Content        string     `json:"content"`
	Type           string     `json:"message_type"`
	ReadAt         *time.Time `json:"read_at"`
	CreatedAt      time.Time  `json:"created_at"`
}
