package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/client/client"
	"github.com/dmitrijs2005/localswap/internal/client/models"
	"github.com/dmitrijs2005/localswap/internal/common"
)

// MaxMessageLength mirrors the server-side limit so obviously invalid
// messages are rejected without a round trip.
const MaxMessageLength = 1000

// ChatService wraps conversations and turns incoming messages into
// notifications.
type ChatService interface {
	Conversations(ctx context.Context) ([]*api.Conversation, error)
	// Open returns the messages of a conversation and marks the ones
	// received by the caller as read.
	Open(ctx context.Context, conversationID string) ([]*api.Message, error)
	Contact(ctx context.Context, itemID string) (string, error)
	Send(ctx context.Context, conversationID, content string) (*api.Message, error)
	// Watch blocks until ctx is done, calling fn for every new message.
	// Messages from other users also raise a notification.
	Watch(ctx context.Context, conversationID, me string, fn func(*api.Message)) error
	DisplayName(ctx context.Context, userID string) string
	ForgetNames()
}

type chatService struct {
	client        client.Client
	notifications NotificationService

	mu    sync.Mutex
	names map[string]string
}

func NewChatService(c client.Client, notifications NotificationService) ChatService {
	return &chatService{client: c, notifications: notifications, names: make(map[string]string)}
}

func (s *chatService) Conversations(ctx context.Context) ([]*api.Conversation, error) {
	convs, err := s.client.ListConversations(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for _, c := range convs {
		if c.OtherUserName != "" {
			s.names[c.OtherUserID] = c.OtherUserName
		}
	}
	s.mu.Unlock()
	return convs, nil
}

func (s *chatService) Open(ctx context.Context, conversationID string) ([]*api.Message, error) {
	msgs, err := s.client.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	// unread counters are cosmetic, a failure here must not hide the messages
	_, _ = s.client.MarkRead(ctx, conversationID)
	return msgs, nil
}

func (s *chatService) Contact(ctx context.Context, itemID string) (string, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return "", common.NewValidationError("item_id", "item_id richiesto")
	}
	return s.client.GetOrCreateConversation(ctx, itemID)
}

func (s *chatService) Send(ctx context.Context, conversationID, content string) (*api.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.NewValidationError("content", "il messaggio non può essere vuoto")
	}
	if len([]rune(content)) > MaxMessageLength {
		return nil, common.NewValidationError("content", fmt.Sprintf("massimo %d caratteri", MaxMessageLength))
	}
	return s.client.SendMessage(ctx, conversationID, content)
}

func (s *chatService) Watch(ctx context.Context, conversationID, me string, fn func(*api.Message)) error {
	err := s.client.Watch(ctx, conversationID, func(m *api.Message) {
		if m.SenderID != me {
			action := &models.Action{Label: "Apri chat", URL: "open " + conversationID}
			title := "Nuovo messaggio da " + s.DisplayName(ctx, m.SenderID)
			// the message is still delivered to fn when it cannot be stored
			_, _ = s.notifications.Add(ctx, models.NotificationInfo, title, m.Content, action)
		}
		if fn != nil {
			fn(m)
		}
	})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// DisplayName resolves userID through the profile endpoint, caching the
// result. Unknown users fall back to a name derived from the id.
func (s *chatService) DisplayName(ctx context.Context, userID string) string {
	s.mu.Lock()
	name, ok := s.names[userID]
	s.mu.Unlock()
	if ok {
		return name
	}

	p, err := s.client.GetProfile(ctx, userID)
	if err != nil || p.DisplayName == "" {
		return common.DeriveDisplayName(userID)
	}

	s.mu.Lock()
	s.names[userID] = p.DisplayName
	s.mu.Unlock()
	return p.DisplayName
}

func (s *chatService) ForgetNames() {
	s.mu.Lock()
	s.names = make(map[string]string)
	s.mu.Unlock()
}
