package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/dbx"
	"github.com/dmitrijs2005/localswap/internal/logging"
	sc "github.com/dmitrijs2005/localswap/internal/server/config"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/dmitrijs2005/localswap/internal/server/realtime"
	"github.com/dmitrijs2005/localswap/internal/server/repositories/repomanager"
)

const (
	removedItemTitle     = "Oggetto rimosso"
	conversationStarted  = "Conversazione iniziata"
	mockConversationPrfx = "mock-"
)

// MessageInput is the body of a chat message.
type MessageInput struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// ChatService implements conversations and messages between a listing's
// owner and the users who contact them.
//
// With demo fallback enabled, storage failures are logged and answered with
// placeholder data so a half-provisioned deployment still shows a working
// inbox. Authorization, validation and self-conversation errors are always
// returned as they are.
type ChatService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	names       DisplayNamer
	hub         *realtime.Hub
	fallback    bool
	log         logging.Logger
	now         func() time.Time
}

func NewChatService(db *sql.DB, repomanager repomanager.RepositoryManager, names DisplayNamer,
	hub *realtime.Hub, config *sc.Config, log logging.Logger) *ChatService {
	return &ChatService{
		db:          db,
		repomanager: repomanager,
		names:       names,
		hub:         hub,
		fallback:    config.DemoFallback,
		log:         log.With("module", "chat"),
		now:         time.Now,
	}
}

// isStorageError reports whether err came from the database rather than
// from a rule the service enforces.
func isStorageError(err error) bool {
	return err != nil &&
		!errors.Is(err, common.ErrorNotFound) &&
		!errors.Is(err, common.ErrorForbidden) &&
		!errors.Is(err, common.ErrorValidation) &&
		!errors.Is(err, common.ErrSelfConversation) &&
		!errors.Is(err, context.Canceled)
}

func (s *ChatService) substitute(ctx context.Context, op string, err error) bool {
	if !s.fallback || !isStorageError(err) {
		return false
	}
	s.log.Warn(ctx, "chat storage unavailable, serving demo data", "op", op, "error", err)
	return true
}

func isMockConversation(id string) bool {
	return strings.HasPrefix(id, mockConversationPrfx)
}

// ListConversations returns the active conversations of userID, most
// recently updated first.
func (s *ChatService) ListConversations(ctx context.Context, userID string) ([]*models.ConversationSummary, error) {
	rows, err := s.repomanager.Conversations(s.db).ListForUser(ctx, userID)
	if err != nil {
		if s.substitute(ctx, "list_conversations", err) {
			return MockConversations(s.now()), nil
		}
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}

	result := make([]*models.ConversationSummary, 0, len(rows))
	for _, r := range rows {
		other := r.OtherParty(userID)
		summary := &models.ConversationSummary{
			ID:              r.ID,
			ItemID:          r.ItemID,
			ItemTitle:       removedItemTitle,
			OtherUserID:     other,
			OtherUserName:   s.names.DisplayName(ctx, other),
			LastMessage:     conversationStarted,
			LastMessageTime: r.CreatedAt,
			UnreadCount:     r.UnreadCount,
		}
		if r.ItemTitle != nil && *r.ItemTitle != "" {
			summary.ItemTitle = *r.ItemTitle
		}
		if r.LastMessage != nil && *r.LastMessage != "" {
			summary.LastMessage = *r.LastMessage
		}
		if r.LastMessageTime != nil {
			summary.LastMessageTime = *r.LastMessageTime
		}
		result = append(result, summary)
	}
	return result, nil
}

// participant loads a conversation and checks userID belongs to it.
func (s *ChatService) participant(ctx context.Context, conversationID, userID string) (*models.Conversation, error) {
	c, err := s.repomanager.Conversations(s.db).GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(userID) {
		return nil, common.ErrorForbidden
	}
	return c, nil
}

// GetMessages returns the messages of a conversation, oldest first.
func (s *ChatService) GetMessages(ctx context.Context, conversationID, userID string) ([]*models.Message, error) {
	if s.fallback && isMockConversation(conversationID) {
		return MockMessages(conversationID, userID, s.now()), nil
	}

	msgs, err := s.getMessages(ctx, conversationID, userID)
	if err != nil {
		if s.substitute(ctx, "get_messages", err) {
			return MockMessages(conversationID, userID, s.now()), nil
		}
		return nil, err
	}
	return msgs, nil
}

func (s *ChatService) getMessages(ctx context.Context, conversationID, userID string) ([]*models.Message, error) {
	if _, err := s.participant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	msgs, err := s.repomanager.Messages(s.db).ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	return msgs, nil
}

// SendMessage stores a text message from senderID. Content is trimmed and
// must be 1 to 1000 characters long.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error) {
	in := MessageInput{Content: strings.TrimSpace(content)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if s.fallback && isMockConversation(conversationID) {
		return s.echo(ctx, conversationID, senderID, in.Content), nil
	}

	m, err := s.sendMessage(ctx, conversationID, senderID, in.Content)
	if err != nil {
		if s.substitute(ctx, "send_message", err) {
			return s.echo(ctx, conversationID, senderID, in.Content), nil
		}
		return nil, err
	}
	return m, nil
}

func (s *ChatService) sendMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error) {
	if _, err := s.participant(ctx, conversationID, senderID); err != nil {
		return nil, err
	}
	m, err := s.repomanager.Messages(s.db).Create(ctx, &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Type:           models.MessageText,
	})
	if err != nil {
		return nil, fmt.Errorf("error sending message: %w", err)
	}
	return m, nil
}

// echo builds the optimistic stand-in for a message storage refused and
// shows it to live subscribers, which will never hear of it otherwise.
func (s *ChatService) echo(ctx context.Context, conversationID, senderID, content string) *models.Message {
	now := s.now()
	m := &models.Message{
		ID:             fmt.Sprintf("mock-%d", now.UnixMilli()),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Type:           models.MessageText,
		CreatedAt:      now,
	}
	if s.hub != nil {
		s.hub.Publish(ctx, m)
	}
	return m
}

// GetOrCreateConversation returns the conversation between requesterID and
// the owner of itemID about that item, creating it when needed. Owners
// cannot contact themselves.
func (s *ChatService) GetOrCreateConversation(ctx context.Context, itemID, requesterID string) (string, error) {
	id, err := s.getOrCreate(ctx, itemID, requesterID)
	if err != nil {
		if errors.Is(err, errItemLookup) && s.fallback {
			s.log.Warn(ctx, "item lookup failed, serving demo conversation", "item_id", itemID, "error", err)
			return mockConversationPrfx + "conv-" + itemID, nil
		}
		if s.substitute(ctx, "get_or_create_conversation", err) {
			return mockConversationPrfx + "conv-" + itemID, nil
		}
		return "", err
	}
	return id, nil
}

var errItemLookup = errors.New("item lookup failed")

func (s *ChatService) getOrCreate(ctx context.Context, itemID, requesterID string) (string, error) {
	item, err := s.repomanager.Items(s.db).GetByID(ctx, itemID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errItemLookup, err)
	}
	if item.UserID == requesterID {
		return "", common.ErrSelfConversation
	}

	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (string, error) {
		repo := s.repomanager.Conversations(tx)

		existing, err := repo.Find(ctx, itemID, requesterID, item.UserID)
		if err == nil {
			return existing.ID, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return "", err
		}

		created, err := repo.Create(ctx, &models.Conversation{
			ItemID:      itemID,
			RequesterID: requesterID,
			OwnerID:     item.UserID,
			Status:      models.ConversationActive,
		})
		if errors.Is(err, common.ErrorNotFound) {
			// Lost a race with a concurrent create; read the winner.
			existing, err = repo.Find(ctx, itemID, requesterID, item.UserID)
			if err != nil {
				return "", err
			}
			return existing.ID, nil
		}
		if err != nil {
			return "", err
		}

		s.log.Info(ctx, "conversation created", "conversation_id", created.ID, "item_id", itemID)
		return created.ID, nil
	})
}

// MarkRead marks the messages userID received in a conversation as read
// and returns how many changed. With demo fallback, storage errors are
// logged and reported as zero.
func (s *ChatService) MarkRead(ctx context.Context, conversationID, userID string) (int64, error) {
	if s.fallback && isMockConversation(conversationID) {
		return 0, nil
	}

	n, err := s.markRead(ctx, conversationID, userID)
	if err != nil {
		if s.substitute(ctx, "mark_read", err) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

func (s *ChatService) markRead(ctx context.Context, conversationID, userID string) (int64, error) {
	if _, err := s.participant(ctx, conversationID, userID); err != nil {
		return 0, err
	}
	n, err := s.repomanager.Messages(s.db).MarkRead(ctx, conversationID, userID, s.now())
	if err != nil {
		return 0, fmt.Errorf("error marking messages read: %w", err)
	}
	return n, nil
}

// Subscribe opens a live feed of new messages in a conversation. The caller
// must Close the subscription.
func (s *ChatService) Subscribe(ctx context.Context, conversationID, userID string) (*realtime.Subscription, error) {
	if !(s.fallback && isMockConversation(conversationID)) {
		if _, err := s.participant(ctx, conversationID, userID); err != nil {
			if !s.substitute(ctx, "subscribe", err) {
				return nil, err
			}
		}
	}
	return s.hub.Subscribe(conversationID), nil
}
