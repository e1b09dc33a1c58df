// Package services contains the application services behind the CLI
// commands.
package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/localswap/internal/client/models"
	"github.com/dmitrijs2005/localswap/internal/client/repositories/notifications"
	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/dbx"
	"github.com/oklog/ulid/v2"
)

// NotificationService is the in-app notification center. It keeps the
// newest common.MaxNotifications entries and nothing is synced with the
// server.
type NotificationService interface {
	Add(ctx context.Context, typ models.NotificationType, title, message string, action *models.Action) (string, error)
	ShowSuccess(ctx context.Context, title, message string, action ...*models.Action) (string, error)
	ShowError(ctx context.Context, title, message string, action ...*models.Action) (string, error)
	ShowInfo(ctx context.Context, title, message string, action ...*models.Action) (string, error)
	ShowWarning(ctx context.Context, title, message string, action ...*models.Action) (string, error)
	List(ctx context.Context) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
	Remove(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
	UnreadCount(ctx context.Context) (int, error)
}

type notificationService struct {
	db     *sql.DB
	mirror io.Writer
	now    func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewNotificationService stores notifications in db. When mirror is not
// nil every new notification is also written to it.
func NewNotificationService(db *sql.DB, mirror io.Writer) NotificationService {
	return &notificationService{
		db:      db,
		mirror:  mirror,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (s *notificationService) getRepo(db dbx.DBTX) notifications.Repository {
	return notifications.NewSQLiteRepository(db)
}

// newID returns ids that sort in creation order, even within a millisecond.
func (s *notificationService) newID(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *notificationService) Add(ctx context.Context, typ models.NotificationType, title, message string, action *models.Action) (string, error) {
	now := s.now()
	n := &models.Notification{
		ID:        s.newID(now),
		Type:      typ,
		Title:     title,
		Message:   message,
		Action:    action,
		CreatedAt: now,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getRepo(tx)
		if err := repo.Insert(ctx, n); err != nil {
			return err
		}
		_, err := repo.Trim(ctx, common.MaxNotifications)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("error saving notification: %w", err)
	}

	if s.mirror != nil {
		fmt.Fprintf(s.mirror, "\n[%s] %s", n.Type, n.Title)
		if n.Message != "" {
			fmt.Fprintf(s.mirror, ": %s", n.Message)
		}
		if n.Action != nil {
			fmt.Fprintf(s.mirror, " (%s: %s)", n.Action.Label, n.Action.URL)
		}
		fmt.Fprintln(s.mirror)
	}
	return n.ID, nil
}

// firstAction returns the first non-nil action, if any.
func firstAction(actions []*models.Action) *models.Action {
	for _, a := range actions {
		if a != nil {
			return a
		}
	}
	return nil
}

func (s *notificationService) ShowSuccess(ctx context.Context, title, message string, action ...*models.Action) (string, error) {
	return s.Add(ctx, models.NotificationSuccess, title, message, firstAction(action))
}

func (s *notificationService) ShowError(ctx context.Context, title, message string, action ...*models.Action) (string, error) {
	return s.Add(ctx, models.NotificationError, title, message, firstAction(action))
}

func (s *notificationService) ShowInfo(ctx context.Context, title, message string, action ...*models.Action) (string, error) {
	return s.Add(ctx, models.NotificationInfo, title, message, firstAction(action))
}

func (s *notificationService) ShowWarning(ctx context.Context, title, message string, action ...*models.Action) (string, error) {
	return s.Add(ctx, models.NotificationWarning, title, message, firstAction(action))
}

func (s *notificationService) List(ctx context.Context) ([]*models.Notification, error) {
	return s.getRepo(s.db).List(ctx, common.MaxNotifications)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	return s.getRepo(s.db).MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.getRepo(s.db).MarkAllRead(ctx)
}

func (s *notificationService) Remove(ctx context.Context, id string) error {
	return s.getRepo(s.db).Delete(ctx, id)
}

func (s *notificationService) ClearAll(ctx context.Context) error {
	return s.getRepo(s.db).Clear(ctx)
}

func (s *notificationService) UnreadCount(ctx context.Context) (int, error) {
	return s.getRepo(s.db).UnreadCount(ctx)
}
