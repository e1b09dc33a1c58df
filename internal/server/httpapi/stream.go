package httpapi

import (
	"io"
	"time"

	"github.com/dmitrijs2005/localswap/internal/server/transport"
	"github.com/gin-gonic/gin"
)

// streamMessages pushes new messages of a conversation as server-sent
// events named "message", with a "ping" event every keepAlive interval.
func (s *HTTPServer) streamMessages(c *gin.Context) {
	ctx := c.Request.Context()
	conversationID := c.Param("id")

	sub, err := s.services.Chat.Subscribe(ctx, conversationID, currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	defer sub.Close()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(s.keepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case m, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("message", transport.ToMessage(m))
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
