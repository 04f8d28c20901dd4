package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"jelantahgo/internal/db"
	"jelantahgo/internal/domain"
	"jelantahgo/internal/domain/models"
)

type CommissionRepository struct {
	DB *sql.DB
}

const commissionColumns = `id, pickup_id, user_id, type, amount, status,
	paid_date, payment_proof, created_at, updated_at`

func scanCommission(row interface{ Scan(...any) error }) (models.Commission, error) {
	var c models.Commission
	var paidDate sql.NullTime
	var proof sql.NullString
	err := row.Scan(
		&c.ID, &c.PickupID, &c.UserID, &c.Type, &c.Amount, &c.Status,
		&paidDate, &proof, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return c, domain.NotFoundError{Resource: "commission"}
	}
	if err != nil {
		return c, err
	}
	if paidDate.Valid {
		c.PaidDate = &paidDate.Time
	}
	if proof.Valid {
		c.PaymentProof = &proof.String
	}
	return c, nil
}

// Create runs on the caller's Queryer; completion inserts commissions in
// the same transaction as the pickup status flip.
func (r CommissionRepository) Create(ctx context.Context, q db.Queryer, c *models.Commission) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO commissions (pickup_id, user_id, type, amount, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		c.PickupID, c.UserID, string(c.Type), c.Amount, string(c.Status),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r CommissionRepository) GetByID(ctx context.Context, id int64) (models.Commission, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+commissionColumns+` FROM commissions WHERE id=?`, id)
	return scanCommission(row)
}

func (r CommissionRepository) List(ctx context.Context, userID int64, status models.CommissionStatus) ([]models.Commission, error) {
	where := []string{}
	args := []any{}
	if userID > 0 {
		where = append(where, `user_id=?`)
		args = append(args, userID)
	}
	if status != "" {
		where = append(where, `status=?`)
		args = append(args, string(status))
	}

	query := `SELECT ` + commissionColumns + ` FROM commissions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Commission{}
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CommissionRepository) MarkPaid(ctx context.Context, id int64, proof string, paidDate time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE commissions SET status='PAID', paid_date=?, payment_proof=?, updated_at=NOW()
		WHERE id=? AND status='PENDING'`,
		paidDate, proof, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r CommissionRepository) MarkCancelled(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE commissions SET status='CANCELLED', updated_at=NOW()
		WHERE id=? AND status='PENDING'`,
		id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
