// Package notifications persists the CLI's in-app notifications in the
// local database, newest first.
package notifications

import (
	"context"

	"github.com/dmitrijs2005/localswap/internal/client/models"
)

type Repository interface {
	Insert(ctx context.Context, n *models.Notification) error
	// List returns at most limit notifications, newest first. A
	// non-positive limit means all of them.
	List(ctx context.Context, limit int) ([]*models.Notification, error)
	// Trim keeps the newest keep notifications and deletes the rest.
	Trim(ctx context.Context, keep int) (int64, error)
	// MarkRead returns common.ErrorNotFound for an unknown id.
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
	// Delete returns common.ErrorNotFound for an unknown id.
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	UnreadCount(ctx context.Context) (int, error)
}
