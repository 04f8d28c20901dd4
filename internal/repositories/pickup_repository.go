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

type PickupRepository struct {
	DB *sql.DB
}

const pickupColumns = `id, customer_id, courier_id, warehouse_id, status,
	scheduled_date, actual_date, volume, actual_volume,
	price_per_liter, total_price, courier_fee, affiliate_fee,
	photo_proof, bank_name, account_name, account_number, notes,
	created_at, updated_at`

func scanPickup(row interface{ Scan(...any) error }) (models.Pickup, error) {
	var p models.Pickup
	var courierID, warehouseID sql.NullInt64
	var actualDate sql.NullTime
	var actualVolume sql.NullFloat64
	var photoProof, bankName, accountName, accountNumber, notes sql.NullString

	err := row.Scan(
		&p.ID, &p.CustomerID, &courierID, &warehouseID, &p.Status,
		&p.ScheduledDate, &actualDate, &p.Volume, &actualVolume,
		&p.PricePerLiter, &p.TotalPrice, &p.CourierFee, &p.AffiliateFee,
		&photoProof, &bankName, &accountName, &accountNumber, &notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.NotFoundError{Resource: "pickup"}
	}
	if err != nil {
		return p, err
	}
	if courierID.Valid {
		p.CourierID = &courierID.Int64
	}
	if warehouseID.Valid {
		p.WarehouseID = &warehouseID.Int64
	}
	if actualDate.Valid {
		p.ActualDate = &actualDate.Time
	}
	if actualVolume.Valid {
		p.ActualVolume = &actualVolume.Float64
	}
	if photoProof.Valid {
		p.PhotoProof = &photoProof.String
	}
	if bankName.Valid {
		p.BankName = &bankName.String
	}
	if accountName.Valid {
		p.AccountName = &accountName.String
	}
	if accountNumber.Valid {
		p.AccountNumber = &accountNumber.String
	}
	if notes.Valid {
		p.Notes = notes.String
	}
	return p, nil
}

func (r PickupRepository) Create(ctx context.Context, p *models.Pickup) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO pickups (customer_id, status, scheduled_date, volume,
			price_per_liter, total_price, courier_fee, affiliate_fee, notes,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		p.CustomerID, string(p.Status), p.ScheduledDate, p.Volume,
		p.PricePerLiter, p.TotalPrice, p.CourierFee, p.AffiliateFee,
		db.NullIfEmpty(p.Notes),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r PickupRepository) GetByID(ctx context.Context, id int64) (models.Pickup, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+pickupColumns+` FROM pickups WHERE id=?`, id)
	return scanPickup(row)
}

// PickupFilter narrows List per role; zero values mean "no filter".
type PickupFilter struct {
	CustomerID int64
	// CourierVisible limits to the courier's own pickups plus unassigned
	// PENDING ones (the courier marketplace view).
	CourierVisible int64
	// WarehouseView limits to IN_PROGRESS and COMPLETED.
	WarehouseView bool
	Status        models.PickupStatus
}

func (r PickupRepository) List(ctx context.Context, f PickupFilter) ([]models.Pickup, error) {
	where := []string{}
	args := []any{}

	if f.CustomerID > 0 {
		where = append(where, `customer_id=?`)
		args = append(args, f.CustomerID)
	}
	if f.CourierVisible > 0 {
		where = append(where, `(courier_id=? OR (courier_id IS NULL AND status='PENDING'))`)
		args = append(args, f.CourierVisible)
	}
	if f.WarehouseView {
		where = append(where, `status IN ('IN_PROGRESS','COMPLETED')`)
	}
	if f.Status != "" {
		where = append(where, `status=?`)
		args = append(args, string(f.Status))
	}

	query := `SELECT ` + pickupColumns + ` FROM pickups`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Pickup{}
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Assign claims a PENDING, unassigned pickup for a courier. The status
// check lives in the WHERE clause so two concurrent couriers cannot
// both win; zero rows affected means the caller lost the race.
func (r PickupRepository) Assign(ctx context.Context, id, courierID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE pickups SET status='ASSIGNED', courier_id=?, updated_at=NOW()
		WHERE id=? AND status='PENDING' AND courier_id IS NULL`,
		courierID, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r PickupRepository) Start(ctx context.Context, id, courierID int64, actualDate time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE pickups SET status='IN_PROGRESS', actual_date=?, updated_at=NOW()
		WHERE id=? AND status='ASSIGNED' AND courier_id=?`,
		actualDate, id, courierID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// ProofUpdate carries the courier-entered fields; nil pointers are left
// untouched (key-presence PATCH semantics).
type ProofUpdate struct {
	PhotoProof    *string  `json:"photoProof"`
	ActualVolume  *float64 `json:"actualVolume"`
	BankName      *string  `json:"bankName"`
	AccountName   *string  `json:"accountName"`
	AccountNumber *string  `json:"accountNumber"`
}

func (u ProofUpdate) Empty() bool {
	return u.PhotoProof == nil && u.ActualVolume == nil &&
		u.BankName == nil && u.AccountName == nil && u.AccountNumber == nil
}

func (r PickupRepository) UpdateProof(ctx context.Context, id, courierID int64, u ProofUpdate) (bool, error) {
	sets := []string{}
	args := []any{}
	add := func(col string, val any) {
		sets = append(sets, col+"=?")
		args = append(args, val)
	}

	if u.PhotoProof != nil {
		add("photo_proof", *u.PhotoProof)
	}
	if u.ActualVolume != nil {
		add("actual_volume", *u.ActualVolume)
	}
	if u.BankName != nil {
		add("bank_name", *u.BankName)
	}
	if u.AccountName != nil {
		add("account_name", *u.AccountName)
	}
	if u.AccountNumber != nil {
		add("account_number", *u.AccountNumber)
	}
	if len(sets) == 0 {
		return true, nil
	}
	sets = append(sets, "updated_at=NOW()")

	args = append(args, id, courierID)
	res, err := r.DB.ExecContext(ctx, `
		UPDATE pickups SET `+strings.Join(sets, ", ")+`
		WHERE id=? AND status='IN_PROGRESS' AND courier_id=?`,
		args...,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n >= 1, err
}

// CompletionUpdate holds the settlement recomputed from actual volume.
type CompletionUpdate struct {
	PricePerLiter int64
	TotalPrice    int64
	CourierFee    int64
	AffiliateFee  int64
}

// Complete finalizes the courier path inside the caller's transaction so
// the status flip and the ledger rows commit together.
func (r PickupRepository) Complete(ctx context.Context, q db.Queryer, id, courierID int64, u CompletionUpdate) (bool, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE pickups SET status='COMPLETED',
			price_per_liter=?, total_price=?, courier_fee=?, affiliate_fee=?,
			updated_at=NOW()
		WHERE id=? AND status='IN_PROGRESS' AND courier_id=?`,
		u.PricePerLiter, u.TotalPrice, u.CourierFee, u.AffiliateFee,
		id, courierID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// CompleteByWarehouse is the legacy receipt confirmation. It marks the
// pickup COMPLETED without touching money fields; no bill or commission
// is created on this path.
//
// Deprecated: kept for the warehouse flow until it moves to the courier
// completion path.
func (r PickupRepository) CompleteByWarehouse(ctx context.Context, id, warehouseID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE pickups SET status='COMPLETED', warehouse_id=?, updated_at=NOW()
		WHERE id=? AND status NOT IN ('COMPLETED','CANCELLED')`,
		warehouseID, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r PickupRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE pickups SET status='CANCELLED', updated_at=NOW()
		WHERE id=? AND status='PENDING'`,
		id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
