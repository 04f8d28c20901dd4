package repositories

import (
	"context"
	"database/sql"
	"errors"

	"jelantahgo/internal/db"
	"jelantahgo/internal/domain"
	"jelantahgo/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, email, password_hash, name, phone, address, kota,
	latitude, longitude, role, is_active, referral_code, referred_by_id,
	created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	var lat, lng sql.NullFloat64
	var refBy sql.NullInt64
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Address, &u.Kota,
		&lat, &lng, &u.Role, &u.IsActive, &u.ReferralCode, &refBy,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return u, err
	}
	if lat.Valid {
		u.Latitude = &lat.Float64
	}
	if lng.Valid {
		u.Longitude = &lng.Float64
	}
	if refBy.Valid {
		u.ReferredByID = &refBy.Int64
	}
	return u, nil
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=?`, id)
	return scanUser(row)
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email=?`, email)
	return scanUser(row)
}

func (r UserRepository) GetByReferralCode(ctx context.Context, code string) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code=?`, code)
	return scanUser(row)
}

func (r UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email=?`, email).Scan(&n)
	return n > 0, err
}

func (r UserRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE phone=?`, phone).Scan(&n)
	return n > 0, err
}

func (r UserRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE referral_code=?`, code).Scan(&n)
	return n > 0, err
}

func (r UserRepository) Create(ctx context.Context, u *models.User) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, name, phone, address, kota,
			latitude, longitude, role, is_active, referral_code, referred_by_id,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		u.Email, u.PasswordHash, u.Name, u.Phone, u.Address, u.Kota,
		db.NullFloat64(u.Latitude), db.NullFloat64(u.Longitude),
		u.Role, u.IsActive, u.ReferralCode, db.NullInt64(u.ReferredByID),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r UserRepository) List(ctx context.Context, role string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if role != "" {
		query += ` WHERE role=?`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) Update(ctx context.Context, u models.User) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET name=?, phone=?, address=?, kota=?, latitude=?, longitude=?,
			role=?, is_active=?, updated_at=NOW()
		WHERE id=?`,
		u.Name, u.Phone, u.Address, u.Kota,
		db.NullFloat64(u.Latitude), db.NullFloat64(u.Longitude),
		u.Role, u.IsActive, u.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET password_hash=?, updated_at=NOW() WHERE id=?`, hash, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

// Deactivate is the delete path; user rows are never removed.
func (r UserRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET is_active=0, updated_at=NOW() WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
