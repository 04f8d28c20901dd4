package repositories

import (
	"context"
	"database/sql"
	"errors"

	"jelantahgo/internal/domain/models"
)

type SettingsRepository struct {
	DB *sql.DB
}

const settingsColumns = `id,
	price_tier1_min, price_tier1_max, price_tier1_rate,
	price_tier2_min, price_tier2_max, price_tier2_rate,
	price_tier3_min, price_tier3_rate,
	courier_commission_per_liter, courier_daily_salary, affiliate_commission_per_liter,
	created_at, updated_at`

func scanSettings(row *sql.Row) (models.Settings, error) {
	var s models.Settings
	err := row.Scan(
		&s.ID,
		&s.PriceTier1Min, &s.PriceTier1Max, &s.PriceTier1Rate,
		&s.PriceTier2Min, &s.PriceTier2Max, &s.PriceTier2Rate,
		&s.PriceTier3Min, &s.PriceTier3Rate,
		&s.CourierCommissionPerLiter, &s.CourierDailySalary, &s.AffiliateCommissionPerLiter,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// GetOrCreate returns the singleton row, inserting defaults lazily on
// first read.
func (r SettingsRepository) GetOrCreate(ctx context.Context) (models.Settings, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+settingsColumns+` FROM settings ORDER BY id LIMIT 1`)
	s, err := scanSettings(row)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return s, err
	}

	def := models.DefaultSettings()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO settings (
			price_tier1_min, price_tier1_max, price_tier1_rate,
			price_tier2_min, price_tier2_max, price_tier2_rate,
			price_tier3_min, price_tier3_rate,
			courier_commission_per_liter, courier_daily_salary, affiliate_commission_per_liter,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		def.PriceTier1Min, def.PriceTier1Max, def.PriceTier1Rate,
		def.PriceTier2Min, def.PriceTier2Max, def.PriceTier2Rate,
		def.PriceTier3Min, def.PriceTier3Rate,
		def.CourierCommissionPerLiter, def.CourierDailySalary, def.AffiliateCommissionPerLiter,
	)
	if err != nil {
		return def, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return def, err
	}
	def.ID = id
	return def, nil
}

func (r SettingsRepository) Update(ctx context.Context, s models.Settings) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE settings SET
			price_tier1_min=?, price_tier1_max=?, price_tier1_rate=?,
			price_tier2_min=?, price_tier2_max=?, price_tier2_rate=?,
			price_tier3_min=?, price_tier3_rate=?,
			courier_commission_per_liter=?, courier_daily_salary=?, affiliate_commission_per_liter=?,
			updated_at=NOW()
		WHERE id=?`,
		s.PriceTier1Min, s.PriceTier1Max, s.PriceTier1Rate,
		s.PriceTier2Min, s.PriceTier2Max, s.PriceTier2Rate,
		s.PriceTier3Min, s.PriceTier3Rate,
		s.CourierCommissionPerLiter, s.CourierDailySalary, s.AffiliateCommissionPerLiter,
		s.ID,
	)
	return err
}
