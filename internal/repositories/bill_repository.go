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

type BillRepository struct {
	DB *sql.DB
}

const billColumns = `id, pickup_id, user_id, amount, status, due_date,
	paid_date, invoice_number, payment_proof, created_at, updated_at`

func scanBill(row interface{ Scan(...any) error }) (models.Bill, error) {
	var b models.Bill
	var paidDate sql.NullTime
	var proof sql.NullString
	err := row.Scan(
		&b.ID, &b.PickupID, &b.UserID, &b.Amount, &b.Status, &b.DueDate,
		&paidDate, &b.InvoiceNumber, &proof, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return b, domain.NotFoundError{Resource: "bill"}
	}
	if err != nil {
		return b, err
	}
	if paidDate.Valid {
		b.PaidDate = &paidDate.Time
	}
	if proof.Valid {
		b.PaymentProof = &proof.String
	}
	return b, nil
}

// Create runs on the caller's Queryer so completion can insert the bill
// inside the same transaction as the pickup status flip.
func (r BillRepository) Create(ctx context.Context, q db.Queryer, b *models.Bill) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO bills (pickup_id, user_id, amount, status, due_date, invoice_number, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		b.PickupID, b.UserID, b.Amount, string(b.Status), b.DueDate, b.InvoiceNumber,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r BillRepository) GetByID(ctx context.Context, id int64) (models.Bill, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE id=?`, id)
	return scanBill(row)
}

func (r BillRepository) List(ctx context.Context, userID int64, status models.BillStatus) ([]models.Bill, error) {
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

	query := `SELECT ` + billColumns + ` FROM bills`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MarkPaid requires the bill to still be payable; paying a CANCELLED or
// already PAID bill matches zero rows.
func (r BillRepository) MarkPaid(ctx context.Context, id int64, proof string, paidDate time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bills SET status='PAID', paid_date=?, payment_proof=?, updated_at=NOW()
		WHERE id=? AND status IN ('UNPAID','OVERDUE')`,
		paidDate, proof, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r BillRepository) MarkCancelled(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bills SET status='CANCELLED', updated_at=NOW()
		WHERE id=? AND status IN ('UNPAID','OVERDUE')`,
		id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// SweepOverdue flips unpaid bills past their due date. Called lazily
// from the admin list; there is no scheduler in this service.
func (r BillRepository) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bills SET status='OVERDUE', updated_at=NOW()
		WHERE status='UNPAID' AND due_date < ?`,
		now,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
