package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/localswap/internal/geo"
)

func (a *App) Notifications(ctx context.Context, _ []string) error {
	list, err := a.notifications.List(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(list) == 0 {
		a.println("No notifications")
		return nil
	}
	unread, err := a.notifications.UnreadCount(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.printf("%d notifications, %d unread\n", len(list), unread)
	for _, n := range list {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		line := fmt.Sprintf("%s %s [%s] %s", mark, n.ID, n.Type, n.Title)
		if n.Message != "" {
			line += ": " + n.Message
		}
		line += "  " + geo.FormatTimeAgo(n.CreatedAt, now())
		if n.Action != nil {
			line += fmt.Sprintf("  -> %s", n.Action.URL)
		}
		a.println(line)
	}
	return nil
}

// Read marks one notification, or all of them, as read.
func (a *App) Read(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: read <id>|all")
		return nil
	}
	if args[0] == "all" {
		n, err := a.notifications.MarkAllRead(ctx)
		if err != nil {
			return a.fail(ctx, err)
		}
		a.printf("Marked %d as read\n", n)
		return nil
	}
	if err := a.notifications.MarkRead(ctx, args[0]); err != nil {
		return a.fail(ctx, err)
	}
	return nil
}

func (a *App) Dismiss(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: dismiss <id>")
		return nil
	}
	if err := a.notifications.Remove(ctx, args[0]); err != nil {
		return a.fail(ctx, err)
	}
	return nil
}

func (a *App) Clear(ctx context.Context, _ []string) error {
	if err := a.notifications.ClearAll(ctx); err != nil {
		return a.fail(ctx, err)
	}
	a.println("Notifications cleared")
	return nil
}
