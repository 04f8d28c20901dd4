package repositories

import (
	"context"
	"database/sql"
	"errors"

	"jelantahgo/internal/domain"
	"jelantahgo/internal/domain/models"
)

type MessageRepository struct {
	DB *sql.DB
}

const messageColumns = `m.id, m.pickup_id,
	m.sender_id, s.name, s.role,
	m.receiver_id, r.name, r.role,
	m.content, m.is_read, m.created_at`

const messageJoins = ` FROM messages m
	JOIN users s ON s.id = m.sender_id
	JOIN users r ON r.id = m.receiver_id`

func scanMessage(row interface{ Scan(...any) error }) (models.Message, error) {
	var m models.Message
	err := row.Scan(
		&m.ID, &m.PickupID,
		&m.SenderID, &m.SenderName, &m.SenderRole,
		&m.ReceiverID, &m.ReceiverName, &m.ReceiverRole,
		&m.Content, &m.IsRead, &m.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return m, domain.NotFoundError{Resource: "message"}
	}
	return m, err
}

func (r MessageRepository) Create(ctx context.Context, m *models.Message) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO messages (pickup_id, sender_id, receiver_id, content, is_read, created_at)
		VALUES (?, ?, ?, ?, 0, NOW())`,
		m.PickupID, m.SenderID, m.ReceiverID, m.Content,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (r MessageRepository) GetByID(ctx context.Context, id int64) (models.Message, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+messageColumns+messageJoins+` WHERE m.id=?`, id)
	return scanMessage(row)
}

// ListByPickup returns the thread in chronological order.
func (r MessageRepository) ListByPickup(ctx context.Context, pickupID int64) ([]models.Message, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+messageColumns+messageJoins+`
		WHERE m.pickup_id=? ORDER BY m.created_at ASC`,
		pickupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkReadForReceiver flips the reader's unread messages in one thread.
func (r MessageRepository) MarkReadForReceiver(ctx context.Context, pickupID, receiverID int64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE messages SET is_read=1
		WHERE pickup_id=? AND receiver_id=? AND is_read=0`,
		pickupID, receiverID,
	)
	return err
}
