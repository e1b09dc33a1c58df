// Package realtime fans newly stored chat messages out to live subscribers.
//
// Messages reach the Hub from a Postgres LISTEN connection (see Listener);
// gRPC streams and SSE handlers consume them through Subscriptions.
package realtime

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/dmitrijs2005/localswap/internal/server/models"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 16

// Hub routes messages to the subscribers of their conversation.
// It is safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
	log    logging.Logger
}

// NewHub returns a Hub whose subscribers buffer up to buffer messages.
// Non-positive buffer means DefaultBuffer.
func NewHub(log logging.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
		log:    log,
	}
}

// Subscription receives the messages of one conversation on C until Close.
type Subscription struct {
	C <-chan *models.Message

	ch             chan *models.Message
	conversationID string
	hub            *Hub
	once           sync.Once
}

// Subscribe registers interest in conversationID.
func (h *Hub) Subscribe(conversationID string) *Subscription {
	ch := make(chan *models.Message, h.buffer)
	s := &Subscription{C: ch, ch: ch, conversationID: conversationID, hub: h}

	h.mu.Lock()
	set, ok := h.subs[conversationID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[conversationID] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	return s
}

// Close unregisters the subscription and closes C. It is idempotent.
func (s *Subscription) Close() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		if set, ok := h.subs[s.conversationID]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(h.subs, s.conversationID)
			}
		}
		close(s.ch)
		h.mu.Unlock()
	})
}

// Publish delivers m to every subscriber of its conversation and returns
// how many received it. A subscriber whose buffer is full misses the message.
func (h *Hub) Publish(ctx context.Context, m *models.Message) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for s := range h.subs[m.ConversationID] {
		select {
		case s.ch <- m:
			delivered++
		default:
			h.log.Warn(ctx, "dropping message for slow subscriber",
				"conversation_id", m.ConversationID, "message_id", m.ID)
		}
	}
	return delivered
}

// Subscribers reports how many subscriptions conversationID has.
func (h *Hub) Subscribers(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[conversationID])
}
