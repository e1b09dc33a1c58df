package services

import (
	"time"

	"github.com/dmitrijs2005/localswap/internal/server/models"
)

// MockConversations is the inbox shown when conversations cannot be loaded.
func MockConversations(now time.Time) []*models.ConversationSummary {
	return []*models.ConversationSummary{
		{
			ID:              "mock-1",
			ItemID:          "mock-item-1",
			ItemTitle:       "Trapano Bosch",
			OtherUserID:     "mario_92",
			OtherUserName:   "Mario Rossi",
			LastMessage:     "Ciao! È ancora disponibile?",
			LastMessageTime: now.Add(-30 * time.Minute),
			UnreadCount:     2,
		},
		{
			ID:              "mock-2",
			ItemID:          "mock-item-2",
			ItemTitle:       "iPhone 12 usato",
			OtherUserID:     "tech_guru",
			OtherUserName:   "Luca Tech",
			LastMessage:     "Perfetto, ci sentiamo domani!",
			LastMessageTime: now.Add(-time.Hour),
			UnreadCount:     0,
		},
		{
			ID:              "mock-3",
			ItemID:          "mock-item-3",
			ItemTitle:       "Ripetizioni Matematica",
			OtherUserID:     "prof_marco",
			OtherUserName:   "Prof. Marco",
			LastMessage:     "Grazie per l'interesse!",
			LastMessageTime: now.Add(-2 * time.Hour),
			UnreadCount:     1,
		},
	}
}

// MockMessages is the thread shown when a conversation cannot be loaded.
// userID plays the part of the item owner.
func MockMessages(conversationID, userID string, now time.Time) []*models.Message {
	read := now.Add(-40 * time.Minute)
	return []*models.Message{
		{
			ID:             "mock-msg-1",
			ConversationID: conversationID,
			SenderID:       "mario_92",
			Content:        "Ciao! È ancora disponibile questo oggetto?",
			Type:           models.MessageText,
			CreatedAt:      now.Add(-time.Hour),
		},
		{
			ID:             "mock-msg-2",
			ConversationID: conversationID,
			SenderID:       userID,
			Content:        "Ciao! Sì, è ancora disponibile. Ti interesserebbe vederlo?",
			Type:           models.MessageText,
			ReadAt:         &read,
			CreatedAt:      now.Add(-50 * time.Minute),
		},
		{
			ID:             "mock-msg-3",
			ConversationID: conversationID,
			SenderID:       "mario_92",
			Content:        "Perfetto! Quando possiamo incontrarci?",
			Type:           models.MessageText,
			CreatedAt:      now.Add(-30 * time.Minute),
		},
	}
}
