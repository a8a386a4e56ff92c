package repository

import (
	"context"
	"database/sql"

	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
)

func (r *Repository) InsertNotification(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, shift_id, notification_type, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{n.UserID, n.ShiftID, n.Type, n.Message, n.CreatedAt}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.IsRead)
}

// GetNotifications 按时间倒序返回用户最近的 limit 条通知
func (r *Repository) GetNotifications(ctx context.Context, userID int64, limit int) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, shift_id, notification_type, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.ShiftID, &n.Type, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *Repository) MarkNotificationRead(ctx context.Context, userID, notificationID int64) error {
	query := `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, notificationID, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
