package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/geo"
)

func (a *App) Chats(ctx context.Context, _ []string) error {
	if !a.requireLogin() {
		return nil
	}
	convs, err := a.chat.Conversations(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(convs) == 0 {
		a.println("No conversations yet (type 'contact <item>')")
		return nil
	}
	for _, c := range convs {
		line := fmt.Sprintf("%s  %s  with %s", c.ID, c.ItemTitle, c.OtherUserName)
		if c.LastMessage != "" {
			line += fmt.Sprintf("  %q %s", c.LastMessage, geo.FormatTimeAgo(c.LastMessageTime, now()))
		}
		if c.UnreadCount > 0 {
			line += fmt.Sprintf("  [%d unread]", c.UnreadCount)
		}
		a.println(line)
	}
	return nil
}

func (a *App) formatMessage(ctx context.Context, m *api.Message) string {
	who := "you"
	if s := a.sessionState(); s == nil || m.SenderID != s.UserID {
		who = a.chat.DisplayName(ctx, m.SenderID)
	}
	return fmt.Sprintf("[%s] %s: %s", geo.FormatTimeAgo(m.CreatedAt, now()), who, m.Content)
}

// Open prints the conversation and marks it read.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: open <conversation>")
		return nil
	}
	if !a.requireLogin() {
		return nil
	}
	msgs, err := a.chat.Open(ctx, args[0])
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(msgs) == 0 {
		a.println("No messages yet")
	}
	for _, m := range msgs {
		a.println(a.formatMessage(ctx, m))
	}
	return nil
}

// Contact opens (or reuses) the conversation about an item with its owner.
func (a *App) Contact(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: contact <item>")
		return nil
	}
	if !a.requireLogin() {
		return nil
	}
	id, err := a.chat.Contact(ctx, args[0])
	if err != nil {
		return a.fail(ctx, err)
	}
	a.printf("Conversation %s (type 'send %s <text>')\n", id, id)
	return nil
}

func (a *App) Send(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.println("Usage: send <conversation> <text>")
		return nil
	}
	if !a.requireLogin() {
		return nil
	}
	m, err := a.chat.Send(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println(a.formatMessage(ctx, m))
	return nil
}

// Watch streams new messages of a conversation until the user presses Enter.
func (a *App) Watch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: watch <conversation>")
		return nil
	}
	if !a.requireLogin() {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	me := a.sessionState().UserID
	done := make(chan error, 1)
	go func() {
		done <- a.chat.Watch(ctx, args[0], me, func(m *api.Message) {
			a.println(a.formatMessage(ctx, m))
		})
	}()

	a.println("Watching, press Enter to stop")
	stop := make(chan struct{})
	go func() {
		_, _ = a.reader.ReadString('\n')
		close(stop)
	}()

	select {
	case <-stop:
		cancel()
		if err := <-done; err != nil {
			return a.fail(ctx, err)
		}
	case err := <-done:
		a.println("Stream closed, press Enter")
		<-stop
		if err != nil {
			return a.fail(context.Background(), err)
		}
	}
	return nil
}
