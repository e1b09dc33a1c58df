package notifications

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/localswap/internal/client/models"
	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, n *models.Notification) error {
	var label, url string
	if n.Action != nil {
		label, url = n.Action.Label, n.Action.URL
	}

	query := `INSERT INTO notifications (id, type, title, message, action_label, action_url, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, string(n.Type), n.Title, n.Message, label, url, n.Read, n.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]*models.Notification, error) {
	query := `SELECT id, type, title, message, action_label, action_url, read, created_at
		FROM notifications ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notifications: %w", err)
	}
	defer rows.Close()

	var result []*models.Notification
	for rows.Next() {
		var (
			n           models.Notification
			typ         string
			label, url  string
			createdAtMs int64
		)
		if err := rows.Scan(&n.ID, &typ, &n.Title, &n.Message, &label, &url, &n.Read, &createdAtMs); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = models.NotificationType(typ)
		n.CreatedAt = time.UnixMilli(createdAtMs)
		if label != "" || url != "" {
			n.Action = &models.Action{Label: label, URL: url}
		}
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Trim(ctx context.Context, keep int) (int64, error) {
	query := `DELETE FROM notifications WHERE id NOT IN (
		SELECT id FROM notifications ORDER BY created_at DESC, id DESC LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to trim notifications: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ?`, id)
	return expectOne(res, err, "mark notification read")
}

func (r *SQLiteRepository) MarkAllRead(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE read = 0`)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	return expectOne(res, err, "delete notification")
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UnreadCount(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE read = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}

func expectOne(res sql.Result, err error, op string) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}
