package realtime

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishRoutesByConversation(t *testing.T) {
	h := NewHub(logging.Discard(), 4)
	a := h.Subscribe("c1")
	b := h.Subscribe("c1")
	other := h.Subscribe("c2")
	defer a.Close()
	defer b.Close()
	defer other.Close()

	m := &models.Message{ID: "m1", ConversationID: "c1", Content: "Ciao"}
	assert.Equal(t, 2, h.Publish(context.Background(), m))

	assert.Same(t, m, <-a.C)
	assert.Same(t, m, <-b.C)
	select {
	case got := <-other.C:
		t.Fatalf("unexpected delivery to c2: %+v", got)
	default:
	}
}

func TestHub_SlowSubscriberDrops(t *testing.T) {
	h := NewHub(logging.Discard(), 1)
	s := h.Subscribe("c1")
	defer s.Close()

	ctx := context.Background()
	assert.Equal(t, 1, h.Publish(ctx, &models.Message{ID: "m1", ConversationID: "c1"}))
	assert.Equal(t, 0, h.Publish(ctx, &models.Message{ID: "m2", ConversationID: "c1"}))

	assert.Equal(t, "m1", (<-s.C).ID)
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	h := NewHub(logging.Discard(), 0)
	s := h.Subscribe("c1")
	require.Equal(t, 1, h.Subscribers("c1"))

	s.Close()
	s.Close()

	assert.Equal(t, 0, h.Subscribers("c1"))
	_, ok := <-s.C
	assert.False(t, ok, "channel is closed")
	assert.Equal(t, 0, h.Publish(context.Background(), &models.Message{ID: "m", ConversationID: "c1"}))
}

func TestHub_ConcurrentPublishAndClose(t *testing.T) {
	h := NewHub(logging.Discard(), 2)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		s := h.Subscribe("c1")
		go func() {
			defer wg.Done()
			h.Publish(context.Background(), &models.Message{ID: "m", ConversationID: "c1"})
		}()
		go func() {
			defer wg.Done()
			s.Close()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, h.Subscribers("c1"))
}
