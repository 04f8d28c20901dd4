package repositories

import (
	"context"
	"database/sql"
)

// StatsRepository serves the dashboard aggregates with plain SQL; the
// numbers are approximate views, not ledger truth.
type StatsRepository struct {
	DB *sql.DB
}

type DashboardStats struct {
	TotalCustomers     int64   `json:"totalCustomers"`
	TotalCouriers      int64   `json:"totalCouriers"`
	PendingPickups     int64   `json:"pendingPickups"`
	ActivePickups      int64   `json:"activePickups"`
	CompletedPickups   int64   `json:"completedPickups"`
	TotalVolume        float64 `json:"totalVolume"`
	TotalBilled        int64   `json:"totalBilled"`
	UnpaidBills        int64   `json:"unpaidBills"`
	PendingCommissions int64   `json:"pendingCommissions"`
}

func (r StatsRepository) Dashboard(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats

	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role='CUSTOMER' AND is_active=1),
			(SELECT COUNT(*) FROM users WHERE role='COURIER' AND is_active=1),
			(SELECT COUNT(*) FROM pickups WHERE status='PENDING'),
			(SELECT COUNT(*) FROM pickups WHERE status IN ('ASSIGNED','IN_PROGRESS')),
			(SELECT COUNT(*) FROM pickups WHERE status='COMPLETED'),
			(SELECT COALESCE(SUM(actual_volume), 0) FROM pickups WHERE status='COMPLETED'),
			(SELECT COALESCE(SUM(amount), 0) FROM bills WHERE status <> 'CANCELLED'),
			(SELECT COUNT(*) FROM bills WHERE status IN ('UNPAID','OVERDUE')),
			(SELECT COUNT(*) FROM commissions WHERE status='PENDING')`,
	).Scan(
		&s.TotalCustomers, &s.TotalCouriers,
		&s.PendingPickups, &s.ActivePickups, &s.CompletedPickups,
		&s.TotalVolume, &s.TotalBilled, &s.UnpaidBills, &s.PendingCommissions,
	)
	return s, err
}

type CustomerStats struct {
	TotalPickups     int64   `json:"totalPickups"`
	ActivePickups    int64   `json:"activePickups"`
	CompletedPickups int64   `json:"completedPickups"`
	TotalVolume      float64 `json:"totalVolume"`
	UnpaidBills      int64   `json:"unpaidBills"`
	UnpaidAmount     int64   `json:"unpaidAmount"`
}

func (r StatsRepository) Customer(ctx context.Context, userID int64) (CustomerStats, error) {
	var s CustomerStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM pickups WHERE customer_id=?),
			(SELECT COUNT(*) FROM pickups WHERE customer_id=? AND status IN ('PENDING','ASSIGNED','IN_PROGRESS')),
			(SELECT COUNT(*) FROM pickups WHERE customer_id=? AND status='COMPLETED'),
			(SELECT COALESCE(SUM(actual_volume), 0) FROM pickups WHERE customer_id=? AND status='COMPLETED'),
			(SELECT COUNT(*) FROM bills WHERE user_id=? AND status IN ('UNPAID','OVERDUE')),
			(SELECT COALESCE(SUM(amount), 0) FROM bills WHERE user_id=? AND status IN ('UNPAID','OVERDUE'))`,
		userID, userID, userID, userID, userID, userID,
	).Scan(
		&s.TotalPickups, &s.ActivePickups, &s.CompletedPickups,
		&s.TotalVolume, &s.UnpaidBills, &s.UnpaidAmount,
	)
	return s, err
}

type CourierStats struct {
	AvailablePickups  int64 `json:"availablePickups"`
	ActivePickups     int64 `json:"activePickups"`
	CompletedPickups  int64 `json:"completedPickups"`
	PendingCommission int64 `json:"pendingCommission"`
	PaidCommission    int64 `json:"paidCommission"`
}

func (r StatsRepository) Courier(ctx context.Context, userID int64) (CourierStats, error) {
	var s CourierStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM pickups WHERE status='PENDING' AND courier_id IS NULL),
			(SELECT COUNT(*) FROM pickups WHERE courier_id=? AND status IN ('ASSIGNED','IN_PROGRESS')),
			(SELECT COUNT(*) FROM pickups WHERE courier_id=? AND status='COMPLETED'),
			(SELECT COALESCE(SUM(amount), 0) FROM commissions WHERE user_id=? AND status='PENDING'),
			(SELECT COALESCE(SUM(amount), 0) FROM commissions WHERE user_id=? AND status='PAID')`,
		userID, userID, userID, userID,
	).Scan(
		&s.AvailablePickups, &s.ActivePickups, &s.CompletedPickups,
		&s.PendingCommission, &s.PaidCommission,
	)
	return s, err
}

// PickupReportRow is one line of the admin recap export.
type PickupReportRow struct {
	PickupID      int64
	CustomerName  string
	CourierName   string
	Status        string
	ScheduledDate string
	Volume        float64
	ActualVolume  sql.NullFloat64
	PricePerLiter int64
	TotalPrice    int64
	CourierFee    int64
	AffiliateFee  int64
}

// PickupReport joins pickups with user names for the recap. Date bounds
// are inclusive strings in YYYY-MM-DD; empty means unbounded.
func (r StatsRepository) PickupReport(ctx context.Context, from, to string) ([]PickupReportRow, error) {
	query := `
		SELECT p.id, c.name, COALESCE(k.name, ''), p.status,
			DATE_FORMAT(p.scheduled_date, '%Y-%m-%d'),
			p.volume, p.actual_volume,
			p.price_per_liter, p.total_price, p.courier_fee, p.affiliate_fee
		FROM pickups p
		JOIN users c ON c.id = p.customer_id
		LEFT JOIN users k ON k.id = p.courier_id`
	args := []any{}
	if from != "" {
		query += ` WHERE p.scheduled_date >= ?`
		args = append(args, from)
		if to != "" {
			query += ` AND p.scheduled_date <= ?`
			args = append(args, to)
		}
	} else if to != "" {
		query += ` WHERE p.scheduled_date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY p.scheduled_date, p.id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PickupReportRow{}
	for rows.Next() {
		var row PickupReportRow
		if err := rows.Scan(
			&row.PickupID, &row.CustomerName, &row.CourierName, &row.Status,
			&row.ScheduledDate, &row.Volume, &row.ActualVolume,
			&row.PricePerLiter, &row.TotalPrice, &row.CourierFee, &row.AffiliateFee,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
