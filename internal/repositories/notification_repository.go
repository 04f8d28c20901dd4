package repositories

import (
	"context"
	"database/sql"

	"jelantahgo/internal/db"
	"jelantahgo/internal/domain"
	"jelantahgo/internal/domain/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO notifications (user_id, title, message, type, related_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, 0, NOW())`,
		n.UserID, n.Title, n.Message, n.Type, db.NullInt64(n.RelatedID),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

func (r NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, title, message, type, related_id, is_read, created_at
		FROM notifications WHERE user_id=? ORDER BY created_at DESC LIMIT 100`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		var relatedID sql.NullInt64
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &relatedID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		if relatedID.Valid {
			n.RelatedID = &relatedID.Int64
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead only touches the owner's row; others get not found.
func (r NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE notifications SET is_read=1 WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "notification"}
	}
	return nil
}
