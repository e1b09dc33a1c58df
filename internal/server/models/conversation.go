package models

import "time"

// ConversationStatus values.
const (
	ConversationActive = "active"
	ConversationClosed = "closed"
)

// Conversation is a private thread between an item's owner and a requester.
type Conversation struct {
	ID          string
	ItemID      string
	RequesterID string
	OwnerID     string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OtherParty returns the participant that is not userID.
func (c *Conversation) OtherParty(userID string) string {
	if c.RequesterID == userID {
		return c.OwnerID
	}
	return c.RequesterID
}

// HasParticipant reports whether userID takes part in the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.RequesterID == userID || c.OwnerID == userID
}

// ConversationSummary is the inbox view of a conversation for one user.
type ConversationSummary struct {
	ID              string
	ItemID          string
	ItemTitle       string
	OtherUserID     string
	OtherUserName   string
	LastMessage     string
	LastMessageTime time.Time
	UnreadCount     int
}

// ConversationRow is what the inbox query returns before display names
// and placeholders are filled in.
type ConversationRow struct {
	Conversation
	// ItemTitle is nil when the item no longer exists.
	ItemTitle       *string
	LastMessage     *string
	LastMessageTime *time.Time
	UnreadCount     int
}
